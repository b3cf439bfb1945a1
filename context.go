// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Construction/representation framing (C7): the contracts DOM and
// native-value adapters use to read from and write to an event stream.

package engine

// ChildConstructor is implemented by a custom type mapping's per-type
// builder: it reads events from ctx.Input, advancing past the value's
// closing event, per §4.6.
type ChildConstructor interface {
	ConstructChild(ctx *ConstructionContext) error
}

// ChildRepresenter is implemented by a custom type mapping's per-type
// emitter: it emits the events for a value through ctx.Put, per §4.6.
type ChildRepresenter interface {
	RepresentChild(ctx *SerializationContext) error
}

type binding struct {
	Tag   Tag
	Value any
}

// ConstructionContext carries the event stream plus the anchor table
// DOM/native builders use to resolve aliases, per §4.6.
type ConstructionContext struct {
	Input EventStream

	bindings map[Anchor]binding
}

// NewConstructionContext returns a ConstructionContext reading from input.
func NewConstructionContext(input EventStream) *ConstructionContext {
	return &ConstructionContext{Input: input, bindings: make(map[Anchor]binding)}
}

// ResetDocument clears the anchor table; callers invoke this on every
// StartDoc, since anchor bindings are scoped to one document (§3 invariant
// 6: "documents are independent scopes").
func (ctx *ConstructionContext) ResetDocument() {
	ctx.bindings = make(map[Anchor]binding)
}

// BindAnchor registers anchor -> (tag, value) for later alias resolution.
// Per §9's Open Question resolution, callers must invoke this *before*
// recursing into the node's children, so self-referential structures
// resolve correctly during construction.
func (ctx *ConstructionContext) BindAnchor(anchor Anchor, tag Tag, value any) {
	if anchor == NoAnchor {
		return
	}
	ctx.bindings[anchor] = binding{Tag: tag, Value: value}
}

// ResolveAlias looks up a previously bound anchor.
func (ctx *ConstructionContext) ResolveAlias(target Anchor) (tag Tag, value any, ok bool) {
	b, ok := ctx.bindings[target]
	return b.Tag, b.Value, ok
}

// PutFunc is the serialization sink an emitted event is written through.
type PutFunc func(Event)

// SerializationContext carries the anchor table, a monotonic anchor
// generator (via AnchorGraph), the put sink, and style-override hints that
// apply only to the next emitted event, per §4.6.
type SerializationContext struct {
	Anchors *AnchorGraph
	sink    PutFunc

	pendingScalarStyle     ScalarStyle
	hasScalarStyleOverride bool
	pendingCollStyle       CollectionStyle
	hasCollStyleOverride   bool
}

// NewSerializationContext returns a SerializationContext that writes
// through put, using anchors to assign/detect anchors and aliases.
func NewSerializationContext(anchors *AnchorGraph, put PutFunc) *SerializationContext {
	return &SerializationContext{Anchors: anchors, sink: put}
}

// Put emits e through the current sink, applying and clearing any pending
// style override for the relevant event kind.
func (ctx *SerializationContext) Put(e Event) {
	if e.Kind == ScalarEvent && ctx.hasScalarStyleOverride {
		e.ScalarStyle = ctx.pendingScalarStyle
		ctx.hasScalarStyleOverride = false
	}
	if (e.Kind == StartMap || e.Kind == StartSeq) && ctx.hasCollStyleOverride {
		e.CollectionStyle = ctx.pendingCollStyle
		ctx.hasCollStyleOverride = false
	}
	ctx.sink(e)
}

// OverrideScalarStyle requests that the next Scalar event put through this
// context use style, regardless of what the caller passed.
func (ctx *SerializationContext) OverrideScalarStyle(style ScalarStyle) {
	ctx.pendingScalarStyle = style
	ctx.hasScalarStyleOverride = true
}

// OverrideCollectionStyle requests that the next StartMap/StartSeq event
// put through this context use style.
func (ctx *SerializationContext) OverrideCollectionStyle(style CollectionStyle) {
	ctx.pendingCollStyle = style
	ctx.hasCollStyleOverride = true
}

// Represent runs emit to produce the events for the node identified by id.
// It consults the anchor graph first: if id has already been represented
// and should be referenced again, it emits an Alias and returns without
// calling emit. Otherwise it calls emit, installing a one-shot interceptor
// on the put sink that attaches the assigned anchor (if any) to the very
// first event emit produces — per §9's "context closures for anchor
// rewriting" design note, this is the cycle-safe way to attach an anchor
// without a mutate-after-the-fact pass over already-emitted events.
func (ctx *SerializationContext) Represent(id ObjectID, emit func()) error {
	anchor, isAlias, err := ctx.Anchors.Enter(id)
	if err != nil {
		return err
	}
	if isAlias {
		ctx.Put(NewAliasEvent(anchor))
		return nil
	}

	if anchor != NoAnchor {
		original := ctx.sink
		attached := false
		ctx.sink = func(e Event) {
			if !attached {
				switch e.Kind {
				case StartMap, StartSeq, ScalarEvent:
					e.Properties.Anchor = anchor
				}
				attached = true
				ctx.sink = original
			}
			original(e)
		}
	}
	emit()
	ctx.Anchors.Leave(id)
	return nil
}
