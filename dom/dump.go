// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package dom

import (
	"io"

	"go.yamlcore.dev/engine"
)

// Dump presents docs as a single event stream through a Presenter,
// assigning anchors per anchorStyle (§4.4). Each document gets its own
// AnchorGraph — anchor bindings are scoped per document, per §3 invariant
// 6 — and, under engine.AnchorStyleTidy, its own Rewrite pass once that
// document's events are fully buffered.
func Dump(docs []*Document, w io.Writer, anchorStyle engine.AnchorStyle, opts ...engine.PresentOption) error {
	buf := engine.NewBufferStream(nil)
	buf.Append(engine.NewStartStreamEvent())

	for _, doc := range docs {
		anchors := engine.NewAnchorGraph(anchorStyle)
		sctx := engine.NewSerializationContext(anchors, buf.Append)

		buf.Append(engine.NewStartDocEvent(false, "", doc.Handles))
		if err := representNode(sctx, doc.Root); err != nil {
			return err
		}
		anchors.Rewrite(buf)
		buf.Append(engine.NewEndDocEvent(false))
	}

	buf.Append(engine.NewEndStreamEvent())
	return engine.Present(buf, w, opts...)
}

// representNode emits n's events through sctx, recursing into children.
// sctx.Represent's emit callback can't return an error (§4.6's contract
// is a bare closure), so a child error is captured in childErr and
// surfaced after Represent returns.
//
// A node's tag is forwarded as an explicit Properties.Tag only when it
// would not already be implied by the schema's own guess from the
// rendered content (scalars) or by the collection defaults (map/seq):
// an explicit tag on the event means "show this tag even though the
// reader would guess something else", matching §4.2's non-specific-tag
// sentinels. Forwarding every resolved tag unconditionally would litter
// ordinary output with redundant "!!str"/"!!int" markers.
func representNode(sctx *engine.SerializationContext, n *Node) error {
	var childErr error
	err := sctx.Represent(n, func() {
		switch n.Kind {
		case ScalarNode:
			sctx.Put(engine.NewScalarEvent(engine.Properties{Tag: explicitScalarTag(n)}, n.ScalarStyle, n.Content))

		case SequenceNode:
			sctx.Put(engine.NewStartSeqEvent(engine.Properties{Tag: explicitTag(n.Tag, engine.SeqTag)}, n.CollectionStyle))
			for _, item := range n.Items {
				if childErr != nil {
					return
				}
				childErr = representNode(sctx, item)
			}
			sctx.Put(engine.NewEndSeqEvent())

		case MappingNode:
			sctx.Put(engine.NewStartMapEvent(engine.Properties{Tag: explicitTag(n.Tag, engine.MapTag)}, n.CollectionStyle))
			for _, pr := range n.Pairs {
				if childErr != nil {
					return
				}
				if childErr = representNode(sctx, pr.Key); childErr != nil {
					return
				}
				childErr = representNode(sctx, pr.Value)
			}
			sctx.Put(engine.NewEndMapEvent())
		}
	})
	if err != nil {
		return err
	}
	return childErr
}

// explicitTag returns tag unless it is already the collection default, in
// which case it returns "" so the presenter leaves it implicit.
func explicitTag(tag, defaultTag engine.Tag) engine.Tag {
	if tag == defaultTag {
		return ""
	}
	return tag
}

// explicitScalarTag decides the Properties.Tag to forward for a scalar
// node. Quoted/literal/folded strings are always str-implicit to a
// reader regardless of their content, so a str tag never needs to be
// explicit there; for plain-rendered content (or an undecided style, left
// to the presenter's own inspector) the tag is explicit only if it
// differs from what core-schema guessing would assign the content.
func explicitScalarTag(n *Node) engine.Tag {
	if n.ScalarStyle != engine.PlainScalarStyle && n.ScalarStyle != engine.AnyScalarStyle {
		if n.Tag == engine.StrTag {
			return ""
		}
		return n.Tag
	}
	if n.Tag == naturalScalarTag(n.Content) {
		return ""
	}
	return n.Tag
}

// naturalScalarTag mirrors scalarTag's implicit-resolution mapping (the
// tag a reader would assign this content with no explicit tag given),
// used to decide whether n.Tag needs to be shown explicitly.
func naturalScalarTag(content string) engine.Tag {
	switch engine.GuessScalarTag(content) {
	case engine.GuessNull:
		return engine.NullTag
	case engine.GuessBoolTrue, engine.GuessBoolFalse:
		return engine.BoolTag
	case engine.GuessInt:
		return engine.IntTag
	case engine.GuessFloat, engine.GuessFloatInf, engine.GuessFloatNaN:
		return engine.FloatTag
	case engine.GuessTimestamp:
		return engine.TimestampTag
	default:
		return engine.StrTag
	}
}
