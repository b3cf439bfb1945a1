// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package jsonevents is a reference JSON-to-event adapter: it turns a
// JSON document into an event stream the presenter can re-render under
// JsonStyle (or any other style), and turns an event stream back into
// JSON text. It demonstrates that the engine's event model is sufficient
// for the "JSON-to-event adapter" spec.md names as an external
// collaborator, without pulling any JSON concern into the presenter
// itself. Grounded on cmd/go-yaml/json.go's encoding/json usage, adapted
// from whole-value Marshal/Unmarshal to the token-streaming API so it
// produces/consumes events incrementally.
package jsonevents

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yamlcore.dev/engine"
)

// Decode reads one JSON value from r and returns it as a single-document
// event stream, ready to present or load into a dom.Document.
func Decode(r io.Reader) (engine.EventStream, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	buf := engine.NewBufferStream(nil)
	buf.Append(engine.NewStartStreamEvent())
	buf.Append(engine.NewStartDocEvent(false, "", nil))
	if err := decodeValue(dec, buf); err != nil {
		return nil, err
	}
	buf.Append(engine.NewEndDocEvent(false))
	buf.Append(engine.NewEndStreamEvent())
	return buf, nil
}

func decodeValue(dec *json.Decoder, buf *engine.BufferStream) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	return appendToken(dec, buf, tok)
}

func appendToken(dec *json.Decoder, buf *engine.BufferStream, tok json.Token) error {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			buf.Append(engine.NewStartMapEvent(engine.Properties{}, engine.FlowCollectionStyle))
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return err
				}
				key, ok := keyTok.(string)
				if !ok {
					return fmt.Errorf("jsonevents: expected string object key, got %T", keyTok)
				}
				buf.Append(engine.NewScalarEvent(
					engine.Properties{Tag: engine.StrTag}, engine.DoubleQuotedScalarStyle, key))
				if err := decodeValue(dec, buf); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil { // consumes '}'
				return err
			}
			buf.Append(engine.NewEndMapEvent())

		case '[':
			buf.Append(engine.NewStartSeqEvent(engine.Properties{}, engine.FlowCollectionStyle))
			for dec.More() {
				if err := decodeValue(dec, buf); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil { // consumes ']'
				return err
			}
			buf.Append(engine.NewEndSeqEvent())

		default:
			return fmt.Errorf("jsonevents: unexpected delimiter %q", t)
		}

	case string:
		buf.Append(engine.NewScalarEvent(engine.Properties{Tag: engine.StrTag}, engine.DoubleQuotedScalarStyle, t))

	case bool:
		content := "false"
		if t {
			content = "true"
		}
		buf.Append(engine.NewScalarEvent(engine.Properties{Tag: engine.BoolTag}, engine.PlainScalarStyle, content))

	case json.Number:
		tag := engine.IntTag
		if strings.ContainsAny(string(t), ".eE") {
			tag = engine.FloatTag
		}
		buf.Append(engine.NewScalarEvent(engine.Properties{Tag: tag}, engine.PlainScalarStyle, string(t)))

	case nil:
		buf.Append(engine.NewScalarEvent(engine.Properties{Tag: engine.NullTag}, engine.PlainScalarStyle, "null"))

	default:
		return fmt.Errorf("jsonevents: unexpected token type %T", tok)
	}
	return nil
}
