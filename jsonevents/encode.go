// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package jsonevents

import (
	"io"

	"go.yamlcore.dev/engine"
)

// Encode writes stream out as strict JSON text. It does no JSON-specific
// rendering of its own; JsonStyle already implements the full strict-subset
// contract (§4.5.8) in the presenter, so Encode just selects that style and
// forces no version directive, since a JSON document has no YAML header.
func Encode(w io.Writer, stream engine.EventStream) error {
	return engine.Present(stream, w,
		engine.WithStyle(engine.JsonStyle),
		engine.WithOutputVersion(engine.NoVersionDirective))
}
