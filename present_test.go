// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine_test

import (
	"bytes"
	"strings"
	"testing"

	"go.yamlcore.dev/engine"
	"go.yamlcore.dev/engine/internal/assert"
)

// presentDoc wraps root's events in a single-document stream and renders
// it, returning the written text. The explicit WithOutputVersion always
// wins (last option applied), so callers that need a version directive
// build the event stream directly instead of using this helper.
func presentDoc(t *testing.T, root []engine.Event, opts ...engine.PresentOption) string {
	t.Helper()
	events := []engine.Event{engine.NewStartStreamEvent(), engine.NewStartDocEvent(false, "", nil)}
	events = append(events, root...)
	events = append(events, engine.NewEndDocEvent(false), engine.NewEndStreamEvent())

	var out bytes.Buffer
	opts = append(opts, engine.WithOutputVersion(engine.NoVersionDirective))
	err := engine.Present(engine.NewBufferStream(events), &out, opts...)
	assert.NoError(t, err)
	return out.String()
}

func plainScalar(content string) engine.Event {
	return engine.NewScalarEvent(engine.Properties{}, engine.PlainScalarStyle, content)
}

func TestPresentBlockMappingOfScalars(t *testing.T) {
	root := []engine.Event{
		engine.NewStartMapEvent(engine.Properties{}, engine.BlockCollectionStyle),
		plainScalar("name"), plainScalar("alice"),
		plainScalar("age"), plainScalar("30"),
		engine.NewEndMapEvent(),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \nname: alice\nage: 30\n", got)
}

func TestPresentFlowSequenceWhenCompact(t *testing.T) {
	root := []engine.Event{
		engine.NewStartSeqEvent(engine.Properties{}, engine.AnyCollectionStyle),
		plainScalar("a"), plainScalar("b"), plainScalar("c"),
		engine.NewEndSeqEvent(),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \n[a, b, c]\n", got)
}

func TestPresentBlockSequenceWhenNotCompact(t *testing.T) {
	long := strings.Repeat("x", 70)
	root := []engine.Event{
		engine.NewStartSeqEvent(engine.Properties{}, engine.AnyCollectionStyle),
		plainScalar(long), plainScalar(long),
		engine.NewEndSeqEvent(),
	}
	got := presentDoc(t, root)
	want := "--- \n- " + long + "\n- " + long + "\n"
	assert.Equal(t, want, got)
}

func TestPresentExplicitCollectionStyleOverridesCompactness(t *testing.T) {
	root := []engine.Event{
		engine.NewStartSeqEvent(engine.Properties{}, engine.BlockCollectionStyle),
		plainScalar("a"),
		engine.NewEndSeqEvent(),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \n- a\n", got)

	root = []engine.Event{
		engine.NewStartMapEvent(engine.Properties{}, engine.FlowCollectionStyle),
		plainScalar("a"), plainScalar("1"),
		engine.NewEndMapEvent(),
	}
	got = presentDoc(t, root)
	assert.Equal(t, "--- \n{a: 1}\n", got)
}

func TestPresentNestedCollectionIndentsOneStep(t *testing.T) {
	root := []engine.Event{
		engine.NewStartMapEvent(engine.Properties{}, engine.BlockCollectionStyle),
		plainScalar("items"),
		engine.NewStartSeqEvent(engine.Properties{}, engine.BlockCollectionStyle),
		plainScalar("x"), plainScalar("y"),
		engine.NewEndSeqEvent(),
		engine.NewEndMapEvent(),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \nitems: \n  - x\n  - y\n", got)
}

func TestPresentSequenceOfMappingsInline(t *testing.T) {
	root := []engine.Event{
		engine.NewStartSeqEvent(engine.Properties{}, engine.BlockCollectionStyle),
		engine.NewStartMapEvent(engine.Properties{}, engine.BlockCollectionStyle),
		plainScalar("name"), plainScalar("alice"),
		plainScalar("age"), plainScalar("30"),
		engine.NewEndMapEvent(),
		engine.NewEndSeqEvent(),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \n- name: alice\n  age: 30\n", got)
}

func TestPresentNestedSequenceOfSequencesInlinesFirstItem(t *testing.T) {
	root := []engine.Event{
		engine.NewStartSeqEvent(engine.Properties{}, engine.BlockCollectionStyle),
		engine.NewStartSeqEvent(engine.Properties{}, engine.BlockCollectionStyle),
		plainScalar("a"), plainScalar("b"),
		engine.NewEndSeqEvent(),
		engine.NewEndSeqEvent(),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \n- - a\n  - b\n", got)
}

func TestPresentExplicitMapKeyForCollectionKey(t *testing.T) {
	root := []engine.Event{
		engine.NewStartMapEvent(engine.Properties{}, engine.BlockCollectionStyle),
		engine.NewStartSeqEvent(engine.Properties{}, engine.FlowCollectionStyle),
		plainScalar("a"), plainScalar("b"),
		engine.NewEndSeqEvent(),
		plainScalar("value"),
		engine.NewEndMapEvent(),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \n? [a, b]\n: value\n", got)
}

func TestPresentAnchorAndTag(t *testing.T) {
	root := []engine.Event{
		engine.NewScalarEvent(engine.Properties{Anchor: "x", Tag: engine.StrTag}, engine.PlainScalarStyle, "hi"),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \n!!str &x hi\n", got)
}

func TestPresentAlias(t *testing.T) {
	events := []engine.Event{
		engine.NewStartStreamEvent(), engine.NewStartDocEvent(false, "", nil),
		engine.NewStartSeqEvent(engine.Properties{}, engine.FlowCollectionStyle),
		engine.NewScalarEvent(engine.Properties{Anchor: "x"}, engine.PlainScalarStyle, "1"),
		engine.NewAliasEvent("x"),
		engine.NewEndSeqEvent(),
		engine.NewEndDocEvent(false), engine.NewEndStreamEvent(),
	}
	var out bytes.Buffer
	assert.NoError(t, engine.Present(engine.NewBufferStream(events), &out, engine.WithOutputVersion(engine.NoVersionDirective)))
	assert.Equal(t, "--- \n[&x 1, *x]\n", out.String())
}

func TestPresentNonDefaultTagHandle(t *testing.T) {
	events := []engine.Event{
		engine.NewStartStreamEvent(),
		engine.NewStartDocEvent(false, "", []engine.TagHandleDecl{{Handle: "!e!", Prefix: "tag:example.com,2000:"}}),
		engine.NewScalarEvent(engine.Properties{Tag: "tag:example.com,2000:widget"}, engine.PlainScalarStyle, "thing"),
		engine.NewEndDocEvent(false), engine.NewEndStreamEvent(),
	}
	var out bytes.Buffer
	assert.NoError(t, engine.Present(engine.NewBufferStream(events), &out, engine.WithOutputVersion(engine.NoVersionDirective)))
	assert.Equal(t, "%TAG !e! tag:example.com,2000:\n--- \n!e!widget thing\n", out.String())
}

func TestPresentUnregisteredTagUsesVerbatimForm(t *testing.T) {
	root := []engine.Event{
		engine.NewScalarEvent(engine.Properties{Tag: "tag:example.com,2000:widget"}, engine.PlainScalarStyle, "thing"),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \n!<tag:example.com,2000:widget> thing\n", got)
}

func TestPresentCanonicalStyleForcesFlowAndQuoting(t *testing.T) {
	root := []engine.Event{
		engine.NewStartMapEvent(engine.Properties{Tag: engine.MapTag}, engine.BlockCollectionStyle),
		engine.NewScalarEvent(engine.Properties{Tag: engine.StrTag}, engine.PlainScalarStyle, "a"),
		engine.NewScalarEvent(engine.Properties{Tag: engine.StrTag}, engine.PlainScalarStyle, "1"),
		engine.NewEndMapEvent(),
	}
	got := presentDoc(t, root, engine.WithStyle(engine.CanonicalStyle))
	assert.Equal(t, `--- `+"\n"+`!!map {!!str "a": !!str "1"}`+"\n", got)
}

func TestPresentMinimalStyleForcesFlow(t *testing.T) {
	root := []engine.Event{
		engine.NewStartMapEvent(engine.Properties{}, engine.BlockCollectionStyle),
		plainScalar("a"), plainScalar("1"),
		engine.NewEndMapEvent(),
	}
	got := presentDoc(t, root, engine.WithStyle(engine.MinimalStyle))
	assert.Equal(t, "--- \n{a: 1}\n", got)
}

func TestPresentBlockOnlyStyleForcesBlock(t *testing.T) {
	root := []engine.Event{
		engine.NewStartSeqEvent(engine.Properties{}, engine.FlowCollectionStyle),
		plainScalar("a"),
		engine.NewEndSeqEvent(),
	}
	got := presentDoc(t, root, engine.WithStyle(engine.BlockOnlyStyle))
	assert.Equal(t, "--- \n- a\n", got)
}

func TestPresentIndentationStepOption(t *testing.T) {
	root := []engine.Event{
		engine.NewStartMapEvent(engine.Properties{}, engine.BlockCollectionStyle),
		plainScalar("items"),
		engine.NewStartSeqEvent(engine.Properties{}, engine.BlockCollectionStyle),
		plainScalar("x"),
		engine.NewEndSeqEvent(),
		engine.NewEndMapEvent(),
	}
	got := presentDoc(t, root, engine.WithIndentationStep(4))
	assert.Equal(t, "--- \nitems: \n    - x\n", got)
}

func TestPresentJSONObjectAndArray(t *testing.T) {
	root := []engine.Event{
		engine.NewStartMapEvent(engine.Properties{}, engine.FlowCollectionStyle),
		engine.NewScalarEvent(engine.Properties{Tag: engine.StrTag}, engine.DoubleQuotedScalarStyle, "items"),
		engine.NewStartSeqEvent(engine.Properties{}, engine.FlowCollectionStyle),
		plainScalar("1"), plainScalar("true"), plainScalar("null"),
		engine.NewEndSeqEvent(),
		engine.NewEndMapEvent(),
	}
	got := presentDoc(t, root, engine.WithStyle(engine.JsonStyle))
	assert.Equal(t, `{"items": [1, true, null]}`, got)
}

func TestPresentJSONRejectsNonScalarKey(t *testing.T) {
	root := []engine.Event{
		engine.NewStartMapEvent(engine.Properties{}, engine.FlowCollectionStyle),
		engine.NewStartSeqEvent(engine.Properties{}, engine.FlowCollectionStyle),
		plainScalar("a"),
		engine.NewEndSeqEvent(),
		plainScalar("value"),
		engine.NewEndMapEvent(),
	}
	events := []engine.Event{engine.NewStartStreamEvent(), engine.NewStartDocEvent(false, "", nil)}
	events = append(events, root...)
	events = append(events, engine.NewEndDocEvent(false), engine.NewEndStreamEvent())

	var out bytes.Buffer
	err := engine.Present(engine.NewBufferStream(events), &out, engine.WithStyle(engine.JsonStyle))
	var jsonErr *engine.PresenterJsonError
	assert.ErrorAs(t, err, &jsonErr)
}

func TestPresentJSONRejectsAlias(t *testing.T) {
	events := []engine.Event{
		engine.NewStartStreamEvent(), engine.NewStartDocEvent(false, "", nil),
		engine.NewAliasEvent("x"),
		engine.NewEndDocEvent(false), engine.NewEndStreamEvent(),
	}
	var out bytes.Buffer
	err := engine.Present(engine.NewBufferStream(events), &out, engine.WithStyle(engine.JsonStyle))
	var jsonErr *engine.PresenterJsonError
	assert.ErrorAs(t, err, &jsonErr)
}

func TestPresentJSONRejectsInfAndNaN(t *testing.T) {
	for _, content := range []string{".inf", "-.inf", ".nan"} {
		t.Run(content, func(t *testing.T) {
			events := []engine.Event{
				engine.NewStartStreamEvent(), engine.NewStartDocEvent(false, "", nil),
				plainScalar(content),
				engine.NewEndDocEvent(false), engine.NewEndStreamEvent(),
			}
			var out bytes.Buffer
			err := engine.Present(engine.NewBufferStream(events), &out, engine.WithStyle(engine.JsonStyle))
			var jsonErr *engine.PresenterJsonError
			assert.ErrorAs(t, err, &jsonErr)
		})
	}
}

func TestPresentJSONRejectsSecondDocument(t *testing.T) {
	events := []engine.Event{
		engine.NewStartStreamEvent(),
		engine.NewStartDocEvent(false, "", nil), plainScalar("a"), engine.NewEndDocEvent(false),
		engine.NewStartDocEvent(false, "", nil), plainScalar("b"), engine.NewEndDocEvent(false),
		engine.NewEndStreamEvent(),
	}
	var out bytes.Buffer
	err := engine.Present(engine.NewBufferStream(events), &out, engine.WithStyle(engine.JsonStyle))
	var jsonErr *engine.PresenterJsonError
	assert.ErrorAs(t, err, &jsonErr)
}

func TestPresentLiteralScalar(t *testing.T) {
	root := []engine.Event{
		engine.NewScalarEvent(engine.Properties{}, engine.LiteralScalarStyle, "line one\nline two\n"),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \n|\n  line one\n  line two\n", got)
}

func TestPresentLiteralScalarChompingIndicator(t *testing.T) {
	root := []engine.Event{
		engine.NewScalarEvent(engine.Properties{}, engine.LiteralScalarStyle, "no trailing newline"),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \n|-\n  no trailing newline\n", got)
}

func TestPresentFoldedScalarWrapsLongLine(t *testing.T) {
	long := strings.Repeat("word ", 40)
	long = strings.TrimRight(long, " ")
	root := []engine.Event{
		engine.NewScalarEvent(engine.Properties{}, engine.FoldedScalarStyle, long+"\n"),
	}
	got := presentDoc(t, root)
	if !strings.HasPrefix(got, "--- \n>\n  ") {
		t.Fatalf("expected a folded header, got %q", got)
	}
	for _, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n")[2:] {
		trimmed := strings.TrimPrefix(line, "  ")
		if len(trimmed) > 80 {
			t.Fatalf("wrapped line exceeds width budget: %q", trimmed)
		}
	}
}

func TestPresentSingleQuotedEscapesQuote(t *testing.T) {
	root := []engine.Event{
		engine.NewScalarEvent(engine.Properties{}, engine.SingleQuotedScalarStyle, "it's ok"),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \n'it''s ok'\n", got)
}

func TestPresentDoubleQuotedEscapesControlChars(t *testing.T) {
	root := []engine.Event{
		engine.NewScalarEvent(engine.Properties{}, engine.DoubleQuotedScalarStyle, "a\nb"),
	}
	got := presentDoc(t, root)
	assert.Equal(t, "--- \n"+`"a\nb"`+"\n", got)
}

func TestPresentMultipleDocumentsAreSeparated(t *testing.T) {
	events := []engine.Event{
		engine.NewStartStreamEvent(),
		engine.NewStartDocEvent(false, "", nil), plainScalar("a"), engine.NewEndDocEvent(false),
		engine.NewStartDocEvent(false, "", nil), plainScalar("b"), engine.NewEndDocEvent(false),
		engine.NewEndStreamEvent(),
	}
	var out bytes.Buffer
	err := engine.Present(engine.NewBufferStream(events), &out, engine.WithOutputVersion(engine.NoVersionDirective))
	assert.NoError(t, err)
	assert.Equal(t, "--- \na\n...\n--- \nb\n", out.String())
}

func TestPresentVersionDirective(t *testing.T) {
	events := []engine.Event{
		engine.NewStartStreamEvent(), engine.NewStartDocEvent(false, "", nil), plainScalar("x"),
		engine.NewEndDocEvent(false), engine.NewEndStreamEvent(),
	}
	var out bytes.Buffer
	assert.NoError(t, engine.Present(engine.NewBufferStream(events), &out, engine.WithOutputVersion(engine.Version1_1)))
	assert.Equal(t, "%YAML 1.1\n--- \nx\n", out.String())
}
