// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import "strconv"

// AnchorStyle selects how the anchor graph manager assigns anchors and
// aliases during serialization, per §4.4.
type AnchorStyle int8

const (
	// AnchorStyleNone never emits anchors/aliases; cyclic graphs fail.
	AnchorStyleNone AnchorStyle = iota
	// AnchorStyleTidy emits an anchor only for nodes referenced more than
	// once, via a two-pass representation/rewrite.
	AnchorStyleTidy
	// AnchorStyleAlways anchors every referenced node on first emission.
	AnchorStyleAlways
)

// ObjectID is a stable per-node identity key: for DOM nodes, the node's
// address/handle; any comparable value works so long as it is unique and
// stable for the lifetime of one serialization pass.
type ObjectID any

// provisionalPrefix marks an Anchor produced during AnchorStyleTidy's first
// pass as tentative; pass two (Rewrite) replaces or clears it. It can never
// collide with a real anchor name because real anchor names only ever
// contain base-26 letters.
const provisionalPrefix = "\x00tidy:"

type anchorRecord struct {
	anchor     string
	referenced bool
}

// AliasingRestrictionFunction reports whether further alias expansion
// should be refused, given the current recursion depth and the number of
// aliases already expanded. Grounded on the teacher's
// Constructor.AliasingExceededFunc / DefaultAliasingRestrictions, a
// supplemental safety feature beyond spec.md's scope. Nothing in this
// module calls it: dom.Load resolves aliases without consulting one.
type AliasingRestrictionFunction func(depth, aliasCount int) bool

// DefaultAliasingRestrictions refuses expansion past 10000 total aliases or
// 10000 levels of nested aliasing, matching common YAML-bomb guards.
func DefaultAliasingRestrictions(depth, aliasCount int) bool {
	return depth > 10000 || aliasCount > 10000
}

// AnchorGraph assigns anchors, detects reuse, and (in AnchorStyleNone)
// detects cyclic graphs, per §4.4. One AnchorGraph is used per
// serialization pass; its state is rebuilt each time (§3's lifecycle
// note).
type AnchorGraph struct {
	style AnchorStyle

	records map[ObjectID]*anchorRecord
	active  map[ObjectID]bool // "currently serializing" set, AnchorStyleNone only
	nextID  int
}

// AnchorOption configures a new AnchorGraph, following the teacher's
// functional-option pattern (option/option.go).
type AnchorOption func(*AnchorGraph)

// NewAnchorGraph returns an AnchorGraph for one serialization pass using
// style.
func NewAnchorGraph(style AnchorStyle, opts ...AnchorOption) *AnchorGraph {
	g := &AnchorGraph{
		style:   style,
		records: make(map[ObjectID]*anchorRecord),
		active:  make(map[ObjectID]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// anchorName renders n (0-based) as a base-26 letter sequence with
// rollover: 0 -> "a", 25 -> "z", 26 -> "aa", per §4.4.
func anchorName(n int) string {
	var buf []byte
	for {
		buf = append([]byte{byte('a' + n%26)}, buf...)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return string(buf)
}

// Enter is called when the caller is about to represent/serialize the node
// identified by id. It reports the anchor to attach to the node's
// properties (NoAnchor if none), whether the caller should emit an Alias
// instead of recursing into the node's children, and an error (only
// possible under AnchorStyleNone, for a cyclic graph).
func (g *AnchorGraph) Enter(id ObjectID) (anchor Anchor, emitAlias bool, err error) {
	switch g.style {
	case AnchorStyleNone:
		if g.active[id] {
			return NoAnchor, false, &SerializationError{
				Message: "tried to serialize cyclic graph with asNone",
			}
		}
		g.active[id] = true
		return NoAnchor, false, nil

	case AnchorStyleAlways:
		if rec, ok := g.records[id]; ok {
			return Anchor(rec.anchor), true, nil
		}
		rec := &anchorRecord{anchor: anchorName(g.nextID)}
		g.nextID++
		g.records[id] = rec
		return Anchor(rec.anchor), false, nil

	case AnchorStyleTidy:
		if rec, ok := g.records[id]; ok {
			rec.referenced = true
			return Anchor(provisionalPrefix + rec.anchor), true, nil
		}
		rec := &anchorRecord{anchor: strconv.Itoa(g.nextID)}
		g.nextID++
		g.records[id] = rec
		return Anchor(provisionalPrefix + rec.anchor), false, nil

	default:
		return NoAnchor, false, nil
	}
}

// Leave pops id from the "currently serializing" set. Only meaningful
// under AnchorStyleNone; a no-op otherwise.
func (g *AnchorGraph) Leave(id ObjectID) {
	if g.style == AnchorStyleNone {
		delete(g.active, id)
	}
}

// IsProvisional reports whether anchor is a first-pass Tidy placeholder,
// and if so, its recordID.
func IsProvisional(anchor Anchor) (recordID string, ok bool) {
	s := string(anchor)
	if len(s) <= len(provisionalPrefix) || s[:len(provisionalPrefix)] != provisionalPrefix {
		return "", false
	}
	return s[len(provisionalPrefix):], true
}

// Rewrite performs AnchorStyleTidy's second pass (§4.4): it walks buf and,
// for every event carrying a provisional anchor, replaces it with a
// compact real anchor if that record was ever referenced, or clears it
// otherwise. Alias targets carrying a provisional form are remapped to the
// same compact identifier. It is a no-op for the other two styles.
func (g *AnchorGraph) Rewrite(buf *BufferStream) {
	if g.style != AnchorStyleTidy {
		return
	}
	compact := make(map[string]string) // provisional recordID -> compact anchor
	nextCompact := 0
	compactFor := func(recordID string) string {
		if c, ok := compact[recordID]; ok {
			return c
		}
		c := anchorName(nextCompact)
		nextCompact++
		compact[recordID] = c
		return c
	}
	referencedByID := make(map[string]bool)
	for _, rec := range g.records {
		referencedByID[rec.anchor] = rec.referenced
	}

	for i := 0; i < buf.Len(); i++ {
		e := buf.At(i)
		switch e.Kind {
		case StartMap, StartSeq, ScalarEvent:
			if recordID, ok := IsProvisional(e.Properties.Anchor); ok {
				if referencedByID[recordID] {
					e.Properties.Anchor = Anchor(compactFor(recordID))
				} else {
					e.Properties.Anchor = NoAnchor
				}
				buf.Set(i, e)
			}
		case AliasEvent:
			if recordID, ok := IsProvisional(e.Target); ok {
				e.Target = Anchor(compactFor(recordID))
				buf.Set(i, e)
			}
		}
	}
}
