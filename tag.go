// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import "strings"

// Well-known YAML core schema tag URIs. These are process-wide immutable
// constants per §9 ("the well-known tag URIs should be immutable
// process-wide constants; everything else is per-context"), grounded on the
// yaml_*_TAG constants in the teacher's yamlh.go.
const (
	StrTag       Tag = "tag:yaml.org,2002:str"
	SeqTag       Tag = "tag:yaml.org,2002:seq"
	MapTag       Tag = "tag:yaml.org,2002:map"
	NullTag      Tag = "tag:yaml.org,2002:null"
	BoolTag      Tag = "tag:yaml.org,2002:bool"
	IntTag       Tag = "tag:yaml.org,2002:int"
	FloatTag     Tag = "tag:yaml.org,2002:float"
	BinaryTag    Tag = "tag:yaml.org,2002:binary"
	TimestampTag Tag = "tag:yaml.org,2002:timestamp"
	MergeTag     Tag = "tag:yaml.org,2002:merge"
	ValueTag     Tag = "tag:yaml.org,2002:value"
	YamlTag      Tag = "tag:yaml.org,2002:yaml"
	OmapTag      Tag = "tag:yaml.org,2002:omap"
	PairsTag     Tag = "tag:yaml.org,2002:pairs"
	SetTag       Tag = "tag:yaml.org,2002:set"

	DefaultScalarTag   = StrTag
	DefaultSequenceTag = SeqTag
	DefaultMappingTag  = MapTag
)

const (
	defaultBangHandle       = "!"
	defaultBangPrefix       = "!"
	defaultDoubleBangHandle = "!!"
	defaultDoubleBangPrefix = "tag:yaml.org,2002:"
)

// Registry manages the per-document tag-handle table: the mapping from a
// short handle (like "!!" or a custom "!e!") to its URI prefix. Handles
// reset at each StartDoc and are re-registered from that document's
// declared Handles list, per §4.2.
type Registry struct {
	handles []TagHandleDecl
}

// NewRegistry returns a Registry seeded with the two default handles.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reset restores the two default handles ("!" and "!!") and discards any
// document-specific registrations, as happens on every StartDoc.
func (r *Registry) Reset() {
	r.handles = []TagHandleDecl{
		{Handle: defaultBangHandle, Prefix: defaultBangPrefix},
		{Handle: defaultDoubleBangHandle, Prefix: defaultDoubleBangPrefix},
	}
}

// Register overrides or adds a handle. Registering "!" or "!!" again
// replaces their default prefix, matching §4.2's "may be overridden per
// document".
func (r *Registry) Register(handle, prefix string) {
	for i := range r.handles {
		if r.handles[i].Handle == handle {
			r.handles[i].Prefix = prefix
			return
		}
	}
	r.handles = append(r.handles, TagHandleDecl{Handle: handle, Prefix: prefix})
}

// BeginDocument resets the table then registers every handle declared by
// the document's StartDoc event, in order.
func (r *Registry) BeginDocument(decls []TagHandleDecl) {
	r.Reset()
	for _, d := range decls {
		r.Register(d.Handle, d.Prefix)
	}
}

// Handles returns a snapshot of the currently registered (handle, prefix)
// pairs, in registration order.
func (r *Registry) Handles() []TagHandleDecl {
	out := make([]TagHandleDecl, len(r.handles))
	copy(out, r.handles)
	return out
}

// SearchHandle returns the registered handle whose prefix is the longest
// match of uri, and the length of that prefix. It returns ("", 0) if no
// handle's prefix matches uri at all.
func (r *Registry) SearchHandle(uri string) (handle string, prefixLen int) {
	best := -1
	for i, d := range r.handles {
		if len(d.Prefix) > 0 && strings.HasPrefix(uri, d.Prefix) {
			if best < 0 || len(d.Prefix) > len(r.handles[best].Prefix) {
				best = i
			}
		}
	}
	if best < 0 {
		return "", 0
	}
	return r.handles[best].Handle, len(r.handles[best].Prefix)
}

// NonDefaultDirectives returns the %TAG directives that must be emitted
// because they differ from the two built-in defaults, in registration
// order. Used by the presenter's document-framing step (§4.5.1).
func (r *Registry) NonDefaultDirectives() []TagHandleDecl {
	var out []TagHandleDecl
	for _, d := range r.handles {
		switch d.Handle {
		case defaultBangHandle:
			if d.Prefix == defaultBangPrefix {
				continue
			}
		case defaultDoubleBangHandle:
			if d.Prefix == defaultDoubleBangPrefix {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}
