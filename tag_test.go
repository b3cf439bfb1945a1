// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine_test

import (
	"testing"

	"go.yamlcore.dev/engine"
	"go.yamlcore.dev/engine/internal/assert"
)

func TestRegistryDefaults(t *testing.T) {
	r := engine.NewRegistry()
	handle, prefixLen := r.SearchHandle("tag:yaml.org,2002:str")
	assert.Equal(t, "!!", handle)
	assert.Equal(t, len("tag:yaml.org,2002:"), prefixLen)
}

func TestRegistrySearchHandleNoMatch(t *testing.T) {
	r := engine.NewRegistry()
	handle, prefixLen := r.SearchHandle("tag:example.com,2000:custom")
	assert.Equal(t, "", handle)
	assert.Equal(t, 0, prefixLen)
}

func TestRegistryBeginDocumentResetsAndRegisters(t *testing.T) {
	r := engine.NewRegistry()
	r.Register("!!", "tag:example.com,2000:")
	r.BeginDocument([]engine.TagHandleDecl{{Handle: "!e!", Prefix: "tag:example.com,2000:"}})

	handle, _ := r.SearchHandle("tag:example.com,2000:thing")
	assert.Equal(t, "!e!", handle)

	// BeginDocument resets the override from before, so "!!" is back to
	// the built-in core-schema prefix.
	handle, _ = r.SearchHandle("tag:yaml.org,2002:str")
	assert.Equal(t, "!!", handle)
}

func TestRegistryNonDefaultDirectives(t *testing.T) {
	r := engine.NewRegistry()
	assert.Equal(t, 0, len(r.NonDefaultDirectives()))

	r.Register("!e!", "tag:example.com,2000:")
	dirs := r.NonDefaultDirectives()
	assert.Equal(t, 1, len(dirs))
	assert.Equal(t, engine.TagHandleDecl{Handle: "!e!", Prefix: "tag:example.com,2000:"}, dirs[0])
}

func TestRegistryOverridingDefaultHandleCountsAsNonDefault(t *testing.T) {
	r := engine.NewRegistry()
	r.Register("!!", "tag:example.com,2000:")
	dirs := r.NonDefaultDirectives()
	assert.Equal(t, 1, len(dirs))
	assert.Equal(t, "!!", dirs[0].Handle)
}
