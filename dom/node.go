// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package dom is a reference DOM adapter built on the engine's
// construction/representation framing (C7): it loads an event stream
// into a cyclic-safe node graph and dumps that graph back through a
// Presenter. It is one of the "external collaborators" spec.md names as
// out of scope for the engine itself (§1); this package is the worked
// example SPEC_FULL.md's ambient-stack expansion (A4) asks for.
//
// Grounded on the teacher's root node.go (the Kind/Style constant names
// it re-exports from internal/libyaml) and on §9's design note: "Ownership
// in the DOM is a shared directed graph that may contain cycles. Implement
// as arena-allocated nodes referenced by index, with equality using a
// visited-set of index pairs."
package dom

import "go.yamlcore.dev/engine"

// Kind discriminates a Node's payload, mirroring the teacher's
// DocumentNode/SequenceNode/MappingNode/ScalarNode constants minus the
// document wrapper (a Document holds the root Node directly here).
type Kind int8

const (
	ScalarNode Kind = iota
	SequenceNode
	MappingNode
)

func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	default:
		return "unknown node kind"
	}
}

// Pair is one key/value entry of a MappingNode, in document order.
type Pair struct {
	Key   *Node
	Value *Node
}

// Node is one vertex of a Document's representation graph. Its id is the
// node's arena index: the stable identity §3/§9 require for cycle-safe
// equality. Dump uses the *Node pointer itself as the engine.ObjectID.
type Node struct {
	id int

	Kind Kind
	Tag  engine.Tag

	// ScalarNode payload.
	Content     string
	ScalarStyle engine.ScalarStyle

	// SequenceNode / MappingNode payload.
	CollectionStyle engine.CollectionStyle
	Items           []*Node // SequenceNode children
	Pairs           []Pair  // MappingNode children
}

// Equal reports whether n and o are structurally equal per §3: scalars
// compare by content and tag, collections compare their children
// structurally, and a visited set of (n.id, o.id) pairs guards against
// infinite recursion on cyclic graphs.
func (n *Node) Equal(o *Node) bool {
	return n.equal(o, make(map[[2]int]bool))
}

func (n *Node) equal(o *Node, visited map[[2]int]bool) bool {
	if n == nil || o == nil {
		return n == o
	}
	key := [2]int{n.id, o.id}
	if visited[key] {
		return true
	}
	visited[key] = true

	if n.Kind != o.Kind || n.Tag != o.Tag {
		return false
	}
	switch n.Kind {
	case ScalarNode:
		return n.Content == o.Content
	case SequenceNode:
		if len(n.Items) != len(o.Items) {
			return false
		}
		for i := range n.Items {
			if !n.Items[i].equal(o.Items[i], visited) {
				return false
			}
		}
		return true
	case MappingNode:
		if len(n.Pairs) != len(o.Pairs) {
			return false
		}
		for i := range n.Pairs {
			if !n.Pairs[i].Key.equal(o.Pairs[i].Key, visited) ||
				!n.Pairs[i].Value.equal(o.Pairs[i].Value, visited) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Document is one loaded or to-be-dumped YAML document: a root Node plus
// the tag handles it was read with (or should be written with).
type Document struct {
	Root    *Node
	Handles []engine.TagHandleDecl

	arena []*Node
}

// NewDocument returns an empty Document ready to have nodes built onto
// it via its New* constructors.
func NewDocument() *Document {
	return &Document{}
}

func (d *Document) alloc(kind Kind) *Node {
	n := &Node{id: len(d.arena), Kind: kind}
	d.arena = append(d.arena, n)
	return n
}

// NewScalar allocates a scalar node owned by d.
func (d *Document) NewScalar(tag engine.Tag, content string, style engine.ScalarStyle) *Node {
	n := d.alloc(ScalarNode)
	n.Tag = tag
	n.Content = content
	n.ScalarStyle = style
	return n
}

// NewSequence allocates an empty sequence node owned by d.
func (d *Document) NewSequence(tag engine.Tag, style engine.CollectionStyle) *Node {
	n := d.alloc(SequenceNode)
	n.Tag = tag
	n.CollectionStyle = style
	return n
}

// NewMapping allocates an empty mapping node owned by d.
func (d *Document) NewMapping(tag engine.Tag, style engine.CollectionStyle) *Node {
	n := d.alloc(MappingNode)
	n.Tag = tag
	n.CollectionStyle = style
	return n
}
