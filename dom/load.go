// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package dom

import (
	"fmt"

	"go.yamlcore.dev/engine"
)

// Load reads every document from stream and builds a Document per
// StartDoc/EndDoc pair, resolving aliases through a ConstructionContext
// per §4.6. Duplicate mapping keys fail with *engine.ConstructionError, an
// alias to an unbound anchor fails the same way, matching §7/§8's
// boundary behaviors.
func Load(stream engine.EventStream) ([]*Document, error) {
	start, err := stream.Next()
	if err != nil {
		return nil, err
	}
	if start.Kind != engine.StartStream {
		return nil, unexpectedKind(start, "StartStream")
	}

	var docs []*Document
	for {
		ev, err := stream.Next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case engine.EndStream:
			return docs, nil
		case engine.StartDoc:
			doc := NewDocument()
			doc.Handles = ev.Handles
			ctx := engine.NewConstructionContext(stream)
			root, err := buildNode(doc, ctx)
			if err != nil {
				return nil, err
			}
			doc.Root = root
			end, err := stream.Next()
			if err != nil {
				return nil, err
			}
			if end.Kind != engine.EndDoc {
				return nil, unexpectedKind(end, "EndDoc")
			}
			docs = append(docs, doc)
		default:
			return nil, unexpectedKind(ev, "StartDoc or EndStream")
		}
	}
}

func unexpectedKind(ev engine.Event, want string) error {
	return &engine.StreamError{Err: fmt.Errorf("dom: expected %s, got %v", want, ev.Kind)}
}

func buildNode(doc *Document, ctx *engine.ConstructionContext) (*Node, error) {
	ev, err := ctx.Input.Next()
	if err != nil {
		return nil, err
	}
	switch ev.Kind {
	case engine.ScalarEvent:
		n := doc.NewScalar(scalarTag(ev.Properties.Tag, ev.Content), ev.Content, ev.ScalarStyle)
		ctx.BindAnchor(ev.Properties.Anchor, n.Tag, n)
		return n, nil

	case engine.AliasEvent:
		_, value, ok := ctx.ResolveAlias(ev.Target)
		if !ok {
			return nil, engine.NewConstructionError(ev.StartPos, "",
				fmt.Sprintf("alias *%s references an unknown anchor", ev.Target))
		}
		n, ok := value.(*Node)
		if !ok {
			return nil, engine.NewConstructionError(ev.StartPos, "", "alias target is not a dom node")
		}
		return n, nil

	case engine.StartSeq:
		n := doc.NewSequence(collectionTag(ev.Properties.Tag, engine.DefaultSequenceTag), ev.CollectionStyle)
		ctx.BindAnchor(ev.Properties.Anchor, n.Tag, n)
		for {
			peek, err := ctx.Input.Peek()
			if err != nil {
				return nil, err
			}
			if peek.Kind == engine.EndSeq {
				if _, err := ctx.Input.Next(); err != nil {
					return nil, err
				}
				break
			}
			item, err := buildNode(doc, ctx)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, item)
		}
		return n, nil

	case engine.StartMap:
		n := doc.NewMapping(collectionTag(ev.Properties.Tag, engine.DefaultMappingTag), ev.CollectionStyle)
		ctx.BindAnchor(ev.Properties.Anchor, n.Tag, n)
		for {
			peek, err := ctx.Input.Peek()
			if err != nil {
				return nil, err
			}
			if peek.Kind == engine.EndMap {
				if _, err := ctx.Input.Next(); err != nil {
					return nil, err
				}
				break
			}
			key, err := buildNode(doc, ctx)
			if err != nil {
				return nil, err
			}
			for _, existing := range n.Pairs {
				if existing.Key.Equal(key) {
					return nil, engine.NewConstructionError(peek.StartPos, "", "duplicate mapping key")
				}
			}
			value, err := buildNode(doc, ctx)
			if err != nil {
				return nil, err
			}
			n.Pairs = append(n.Pairs, Pair{Key: key, Value: value})
		}
		return n, nil

	default:
		return nil, unexpectedKind(ev, "a scalar, alias, or collection start")
	}
}

// scalarTag resolves a scalar event's effective tag, applying the core
// schema's tag-guessing contract (§4.6) when the event left its tag
// non-specific.
func scalarTag(explicit engine.Tag, content string) engine.Tag {
	switch explicit {
	case "", engine.TagNonSpecificQuestion:
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
	case engine.TagNonSpecificBang:
		return engine.StrTag
	default:
		return explicit
	}
}

func collectionTag(explicit, defaultTag engine.Tag) engine.Tag {
	if explicit == "" || explicit == engine.TagNonSpecificQuestion {
		return defaultTag
	}
	return explicit
}
