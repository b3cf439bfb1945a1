// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import "runtime"

// osNewline is the line-ending OSDefaultNewlines resolves to. There is no
// library concern here worth a dependency; runtime.GOOS is the standard
// idiom for this one-line check.
var osNewline = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()
