// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"strings"
)

// TestText renders e in the one-line textual form used by the YAML test
// suite (and by this engine's own conformance tests), per §6.1:
//
//	+STR  -STR
//	+DOC [---]  -DOC [...]
//	+MAP[ &anc][ <tag>]  -MAP
//	+SEQ[ &anc][ <tag>]  -SEQ
//	=VAL[ &anc][ <tag>] <style>CONTENT
//	=ALI *target
//
// A collection's CollectionStyle is not rendered: flow collections get no
// " {}" or " []" marker.
func (e Event) TestText() string {
	switch e.Kind {
	case StartStream:
		return "+STR"
	case EndStream:
		return "-STR"
	case StartDoc:
		if e.ExplicitDirectivesEnd {
			return "+DOC ---"
		}
		return "+DOC"
	case EndDoc:
		if e.ExplicitDocumentEnd {
			return "-DOC ..."
		}
		return "-DOC"
	case StartMap:
		return "+MAP" + propsSuffix(e.Properties, e.ScalarStyle)
	case EndMap:
		return "-MAP"
	case StartSeq:
		return "+SEQ" + propsSuffix(e.Properties, e.ScalarStyle)
	case EndSeq:
		return "-SEQ"
	case ScalarEvent:
		return "=VAL" + propsSuffix(e.Properties, e.ScalarStyle) + " " + scalarStyleChar(e.ScalarStyle) + escapeTestContent(e.Content)
	case AliasEvent:
		return "=ALI *" + string(e.Target)
	default:
		return fmt.Sprintf("?EVT(%d)", e.Kind)
	}
}

// propsSuffix renders the optional " &anchor" and " <tag>" suffix shared by
// +MAP/+SEQ/=VAL lines. style is the event's scalar style (ignored for
// collections, where it is always the zero value): tag "!" is shown as
// "<!>" for plain scalars and omitted for quoted ones; tag "?" is never
// shown.
func propsSuffix(p Properties, style ScalarStyle) string {
	var b strings.Builder
	if p.Anchor != NoAnchor {
		b.WriteString(" &")
		b.WriteString(string(p.Anchor))
	}
	switch p.Tag {
	case "", TagNonSpecificQuestion:
		// never shown
	case TagNonSpecificBang:
		if style == AnyScalarStyle || style == PlainScalarStyle {
			b.WriteString(" <!>")
		}
	default:
		b.WriteString(" <")
		b.WriteString(string(p.Tag))
		b.WriteString(">")
	}
	return b.String()
}

func scalarStyleChar(s ScalarStyle) string {
	switch s {
	case SingleQuotedScalarStyle:
		return "'"
	case DoubleQuotedScalarStyle:
		return "\""
	case LiteralScalarStyle:
		return "|"
	case FoldedScalarStyle:
		return ">"
	default:
		return ":"
	}
}

// escapeTestContent escapes scalar content per §6.1: backslash, line feed,
// tab, carriage return and backspace get C-style escapes.
func escapeTestContent(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func unescapeTestContent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'b':
				b.WriteByte('\b')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// ParseTestText parses a single line produced by TestText back into an
// Event. It is the inverse used by the round-trip conformance tests in §8.
func ParseTestText(line string) (Event, error) {
	line = strings.TrimRight(line, "\n")
	if line == "" {
		return Event{}, fmt.Errorf("engine: empty test-suite line")
	}
	fields := strings.SplitN(line, " ", 2)
	tag0 := fields[0]
	rest := ""
	if len(fields) == 2 {
		rest = fields[1]
	}
	switch tag0 {
	case "+STR":
		return NewStartStreamEvent(), nil
	case "-STR":
		return NewEndStreamEvent(), nil
	case "+DOC":
		return NewStartDocEvent(rest == "---", "", nil), nil
	case "-DOC":
		return NewEndDocEvent(rest == "..."), nil
	case "+MAP":
		props, _ := parseProps(rest)
		return NewStartMapEvent(props, AnyCollectionStyle), nil
	case "-MAP":
		return NewEndMapEvent(), nil
	case "+SEQ":
		props, _ := parseProps(rest)
		return NewStartSeqEvent(props, AnyCollectionStyle), nil
	case "-SEQ":
		return NewEndSeqEvent(), nil
	case "=VAL":
		return parseScalarTestText(rest)
	case "=ALI":
		target := strings.TrimPrefix(rest, "*")
		return NewAliasEvent(Anchor(target)), nil
	default:
		return Event{}, fmt.Errorf("engine: unrecognized test-suite event %q", tag0)
	}
}

func parseProps(rest string) (Properties, string) {
	var p Properties
	for {
		rest = strings.TrimLeft(rest, " ")
		switch {
		case strings.HasPrefix(rest, "&"):
			end := strings.IndexByte(rest, ' ')
			if end < 0 {
				p.Anchor = Anchor(rest[1:])
				return p, ""
			}
			p.Anchor = Anchor(rest[1:end])
			rest = rest[end:]
		case strings.HasPrefix(rest, "<!>"):
			p.Tag = TagNonSpecificBang
			rest = rest[3:]
		case strings.HasPrefix(rest, "<"):
			end := strings.IndexByte(rest, '>')
			if end < 0 {
				return p, rest
			}
			p.Tag = Tag(rest[1:end])
			rest = rest[end+1:]
		default:
			return p, rest
		}
	}
}

func parseScalarTestText(rest string) (Event, error) {
	props, rem := parseProps(rest)
	rem = strings.TrimLeft(rem, " ")
	if rem == "" {
		return Event{}, fmt.Errorf("engine: =VAL missing style/content")
	}
	var style ScalarStyle
	switch rem[0] {
	case ':':
		style = PlainScalarStyle
	case '\'':
		style = SingleQuotedScalarStyle
	case '"':
		style = DoubleQuotedScalarStyle
	case '|':
		style = LiteralScalarStyle
	case '>':
		style = FoldedScalarStyle
	default:
		return Event{}, fmt.Errorf("engine: unknown scalar style byte %q", rem[0])
	}
	content := unescapeTestContent(rem[1:])
	return NewScalarEvent(props, style, content), nil
}
