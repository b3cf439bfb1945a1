// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine_test

import (
	"testing"

	"go.yamlcore.dev/engine"
	"go.yamlcore.dev/engine/internal/assert"
)

func TestAnchorGraphAlwaysReusesAnchorOnRepeat(t *testing.T) {
	g := engine.NewAnchorGraph(engine.AnchorStyleAlways)

	anchor, isAlias, err := g.Enter("a")
	assert.NoError(t, err)
	assert.Equal(t, false, isAlias)
	assert.Equal(t, engine.Anchor("a"), anchor)

	anchor2, isAlias, err := g.Enter("b")
	assert.NoError(t, err)
	assert.Equal(t, false, isAlias)
	assert.Equal(t, engine.Anchor("b"), anchor2)

	anchor3, isAlias, err := g.Enter("a")
	assert.NoError(t, err)
	assert.Equal(t, true, isAlias)
	assert.Equal(t, engine.Anchor("a"), anchor3)
}

func TestAnchorGraphNoneDetectsCycle(t *testing.T) {
	g := engine.NewAnchorGraph(engine.AnchorStyleNone)
	_, _, err := g.Enter("x")
	assert.NoError(t, err)
	_, _, err = g.Enter("x")
	var serErr *engine.SerializationError
	assert.ErrorAs(t, err, &serErr)
	g.Leave("x")
	_, _, err = g.Enter("x")
	assert.NoError(t, err)
}

func TestAnchorGraphTidyRewriteDropsUnreferenced(t *testing.T) {
	g := engine.NewAnchorGraph(engine.AnchorStyleTidy)

	buf := engine.NewBufferStream(nil)
	emit := func(id engine.ObjectID, content string) {
		anchor, isAlias, err := g.Enter(id)
		if err != nil {
			t.Fatalf("Enter(%v): %v", id, err)
		}
		if isAlias {
			buf.Append(engine.NewAliasEvent(anchor))
			return
		}
		buf.Append(engine.NewScalarEvent(engine.Properties{Anchor: anchor, Tag: engine.StrTag}, engine.PlainScalarStyle, content))
		g.Leave(id)
	}

	emit("shared", "x")
	emit("shared", "x") // referenced a second time -> should keep an anchor
	emit("lonely", "y") // referenced once -> should end up with no anchor

	g.Rewrite(buf)

	first := buf.At(0)
	alias := buf.At(1)
	lonely := buf.At(2)

	if first.Properties.Anchor == engine.NoAnchor {
		t.Fatalf("expected the twice-referenced node to keep a compact anchor")
	}
	if alias.Kind != engine.AliasEvent || alias.Target != first.Properties.Anchor {
		t.Fatalf("expected an alias targeting the first node's compact anchor, got %+v", alias)
	}
	if lonely.Properties.Anchor != engine.NoAnchor {
		t.Fatalf("expected the never-reused node to end up with no anchor, got %q", lonely.Properties.Anchor)
	}
}

func TestAnchorNameRollover(t *testing.T) {
	g := engine.NewAnchorGraph(engine.AnchorStyleAlways)
	var names []engine.Anchor
	for i := 0; i < 27; i++ {
		anchor, _, err := g.Enter(i)
		assert.NoError(t, err)
		names = append(names, anchor)
	}
	assert.Equal(t, engine.Anchor("a"), names[0])
	assert.Equal(t, engine.Anchor("z"), names[25])
	assert.Equal(t, engine.Anchor("aa"), names[26])
}

func TestIsProvisional(t *testing.T) {
	g := engine.NewAnchorGraph(engine.AnchorStyleTidy)
	anchor, _, err := g.Enter("x")
	assert.NoError(t, err)

	recordID, ok := engine.IsProvisional(anchor)
	if !ok {
		t.Fatalf("expected a Tidy first-pass anchor to be provisional")
	}
	assert.Equal(t, "0", recordID)

	_, ok = engine.IsProvisional("a")
	assert.Equal(t, false, ok)
}
