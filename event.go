// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package engine implements the core YAML 1.2 event-stream engine: the
// event model every higher-level API produces and consumes, the presenter
// that renders an event stream as YAML (or strict JSON) text, the
// anchor/alias graph manager, and the construction/representation framing
// consumed by DOM and native-value adapters.
//
// The tokenizer/parser that produces events from bytes, the DOM tree that
// consumes them, and native-value (un)marshaling are external collaborators;
// this package defines the interfaces they use. Reference implementations
// of a DOM adapter and a JSON adapter live in the dom and jsonevents
// sub-packages.
package engine

// Anchor is an opaque node label. The empty string is the "no anchor"
// sentinel.
type Anchor string

// NoAnchor is the sentinel for "this node has no anchor".
const NoAnchor Anchor = ""

// Tag is a URI string describing a node's type. TagNonSpecificQuestion and
// TagNonSpecificBang are the two sentinel non-specific tags from the YAML
// spec: "?" (resolve by content) and "!" (force !!str-like opacity).
type Tag string

const (
	TagNonSpecificQuestion Tag = "?"
	TagNonSpecificBang     Tag = "!"
)

// Properties bundles the optional anchor and tag carried by every non-alias,
// non-framing event.
type Properties struct {
	Anchor Anchor
	Tag    Tag
}

// IsEmpty reports whether neither an anchor nor a tag is set.
func (p Properties) IsEmpty() bool {
	return p.Anchor == NoAnchor && p.Tag == ""
}

// TagHandleDecl is one (handle, uriPrefix) pair declared by a %TAG
// directive, carried in order on a StartDoc event.
type TagHandleDecl struct {
	Handle string
	Prefix string
}

// Kind discriminates the tagged-variant Event payload.
type Kind int8

const (
	StartStream Kind = iota
	EndStream
	StartDoc
	EndDoc
	StartMap
	EndMap
	StartSeq
	EndSeq
	ScalarEvent
	AliasEvent
)

func (k Kind) String() string {
	switch k {
	case StartStream:
		return "StartStream"
	case EndStream:
		return "EndStream"
	case StartDoc:
		return "StartDoc"
	case EndDoc:
		return "EndDoc"
	case StartMap:
		return "StartMap"
	case EndMap:
		return "EndMap"
	case StartSeq:
		return "StartSeq"
	case EndSeq:
		return "EndSeq"
	case ScalarEvent:
		return "Scalar"
	case AliasEvent:
		return "Alias"
	default:
		return "unknown event kind"
	}
}

// Event is the single tagged-variant type produced and consumed throughout
// the engine. Only the fields relevant to Kind are meaningful; this mirrors
// the teacher's flat yamlEvent struct rather than a subclass hierarchy, per
// §9's "implement as a sum type... avoid subclass hierarchies".
type Event struct {
	Kind Kind

	StartPos Mark
	EndPos   Mark

	// StartDoc payload.
	ExplicitDirectivesEnd bool
	Version               string // "" means unset.
	Handles               []TagHandleDecl

	// EndDoc payload.
	ExplicitDocumentEnd bool

	// StartMap / StartSeq / Scalar payload.
	Properties      Properties
	CollectionStyle CollectionStyle
	ScalarStyle     ScalarStyle
	Content         string

	// Alias payload.
	Target Anchor
}

func NewStartStreamEvent() Event { return Event{Kind: StartStream} }
func NewEndStreamEvent() Event   { return Event{Kind: EndStream} }

func NewStartDocEvent(explicitDirectivesEnd bool, version string, handles []TagHandleDecl) Event {
	return Event{
		Kind:                  StartDoc,
		ExplicitDirectivesEnd: explicitDirectivesEnd,
		Version:               version,
		Handles:               handles,
	}
}

func NewEndDocEvent(explicit bool) Event {
	return Event{Kind: EndDoc, ExplicitDocumentEnd: explicit}
}

func NewStartMapEvent(props Properties, style CollectionStyle) Event {
	return Event{Kind: StartMap, Properties: props, CollectionStyle: style}
}

func NewStartSeqEvent(props Properties, style CollectionStyle) Event {
	return Event{Kind: StartSeq, Properties: props, CollectionStyle: style}
}

func NewEndMapEvent() Event { return Event{Kind: EndMap} }
func NewEndSeqEvent() Event { return Event{Kind: EndSeq} }

func NewScalarEvent(props Properties, style ScalarStyle, content string) Event {
	return Event{Kind: ScalarEvent, Properties: props, ScalarStyle: style, Content: content}
}

func NewAliasEvent(target Anchor) Event {
	return Event{Kind: AliasEvent, Target: target}
}

// IsCollectionStart reports whether the event opens a map or sequence.
func (e Event) IsCollectionStart() bool {
	return e.Kind == StartMap || e.Kind == StartSeq
}

// IsCollectionEnd reports whether the event closes a map or sequence.
func (e Event) IsCollectionEnd() bool {
	return e.Kind == EndMap || e.Kind == EndSeq
}

// Equal reports whether two events carry the same payload, ignoring source
// positions (Mark values are diagnostic-only per §3).
func (e Event) Equal(o Event) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case StartDoc:
		if e.ExplicitDirectivesEnd != o.ExplicitDirectivesEnd || e.Version != o.Version {
			return false
		}
		if len(e.Handles) != len(o.Handles) {
			return false
		}
		for i := range e.Handles {
			if e.Handles[i] != o.Handles[i] {
				return false
			}
		}
		return true
	case EndDoc:
		return e.ExplicitDocumentEnd == o.ExplicitDocumentEnd
	case StartMap, StartSeq:
		return e.Properties == o.Properties && e.CollectionStyle == o.CollectionStyle
	case ScalarEvent:
		return e.Properties == o.Properties && e.ScalarStyle == o.ScalarStyle && e.Content == o.Content
	case AliasEvent:
		return e.Target == o.Target
	default:
		return true
	}
}
