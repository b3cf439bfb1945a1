// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Presenter core (C6): turns an event stream into a conforming YAML (or
// strict JSON) character stream. Grounded on the teacher's
// internal/libyaml/emitter.go state machine (its EMIT_* state constants
// and the separator logic in emitState/emitNode's block/flow branches),
// rewritten as Go recursive descent over the event kinds instead of a
// ported-from-C explicit state array: the call stack plays the role of
// the teacher's emitter.states slice, and the named dumper states below
// are documented for traceability even though no literal stack of them is
// kept at runtime.

package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// dumperState names the state-machine positions from §4.5's table. Used
// only in comments and a few branch conditions; see the file comment for
// why this isn't a literal runtime stack.
type dumperState int8

const (
	dBlockExplicitMapKey dumperState = iota
	dBlockImplicitMapKey
	dBlockMapValue
	dBlockInlineMap
	dBlockSequenceItem
	dFlowImplicitMapKey
	dFlowMapValue
	dFlowExplicitMapKey
	dFlowSequenceItem
	dFlowMapStart
	dFlowSequenceStart
)

// flowCompactnessLimit is the §4.5.3 threshold: a sequence's buffered
// children are rendered in flow only if their compactness score does not
// exceed this many characters.
const flowCompactnessLimit = 60

// Presenter renders one event stream as text, per §4.5. A Presenter is
// used for exactly one Present call; its tag registry and framing state
// are document-scoped and reset on every StartDoc.
type Presenter struct {
	opts Options
	out  *bufio.Writer
	tags *Registry

	indentation int
	docIndex    int
}

// Present drains stream, writing conforming YAML (or, under JsonStyle,
// strict JSON) to w. It returns the first error encountered; partial
// output already written to w is not rewound (§7).
func Present(stream EventStream, w io.Writer, opts ...PresentOption) error {
	p := &Presenter{
		opts: resolveOptions(opts),
		out:  bufio.NewWriter(w),
		tags: NewRegistry(),
	}
	err := p.run(stream)
	if ferr := p.out.Flush(); err == nil && ferr != nil {
		err = &PresenterOutputError{Err: ferr}
	}
	return err
}

func (p *Presenter) run(stream EventStream) error {
	for {
		ev, err := stream.Next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case StartStream:
			continue
		case EndStream:
			return nil
		case StartDoc:
			if err := p.startDocument(ev); err != nil {
				return err
			}
			if p.opts.Style != JsonStyle {
				if err := p.writeNewline(); err != nil {
					return err
				}
			}
			if err := p.node(stream); err != nil {
				return err
			}
			if p.opts.Style != JsonStyle {
				if err := p.writeNewline(); err != nil {
					return err
				}
			}
			end, err := stream.Next()
			if err != nil {
				return err
			}
			if end.Kind != EndDoc {
				return &StreamError{Err: fmt.Errorf("expected EndDoc, got %v", end.Kind)}
			}
			p.docIndex++
		default:
			return &StreamError{Err: fmt.Errorf("unexpected %v at stream top level", ev.Kind)}
		}
	}
}

// startDocument implements §4.5.1: tag-handle reset, the "..." separator
// between successive documents, and the %YAML/%TAG/--- header.
func (p *Presenter) startDocument(ev Event) error {
	p.tags.BeginDocument(ev.Handles)

	if p.opts.Style == JsonStyle {
		if p.docIndex > 0 {
			return &PresenterJsonError{Message: "json style supports a single document"}
		}
		return nil
	}

	if p.docIndex > 0 {
		if err := p.write("..."); err != nil {
			return err
		}
		if err := p.writeNewline(); err != nil {
			return err
		}
	}
	if p.opts.OutputVersion != NoVersionDirective {
		version := "1.2"
		if p.opts.OutputVersion == Version1_1 {
			version = "1.1"
		}
		if err := p.write("%YAML " + version); err != nil {
			return err
		}
		if err := p.writeNewline(); err != nil {
			return err
		}
	}
	for _, d := range p.tags.NonDefaultDirectives() {
		if err := p.write(fmt.Sprintf("%%TAG %s %s", d.Handle, d.Prefix)); err != nil {
			return err
		}
		if err := p.writeNewline(); err != nil {
			return err
		}
	}
	return p.write("--- ")
}

// node reads one value (scalar, alias, or collection) from stream and
// renders it, per §4.5.2-4.5.6.
func (p *Presenter) node(stream EventStream) error {
	ev, err := stream.Next()
	if err != nil {
		return err
	}
	switch ev.Kind {
	case ScalarEvent:
		return p.scalar(ev)
	case AliasEvent:
		if p.opts.Style == JsonStyle {
			return &PresenterJsonError{Message: "json style cannot represent an alias"}
		}
		return p.write("*" + string(ev.Target))
	case StartMap:
		children, err := bufferChildren(stream)
		if err != nil {
			return err
		}
		return p.mapping(ev, children)
	case StartSeq:
		children, err := bufferChildren(stream)
		if err != nil {
			return err
		}
		return p.sequence(ev, children)
	default:
		return &StreamError{Err: fmt.Errorf("unexpected %v where a value was expected", ev.Kind)}
	}
}

// bufferChildren reads events up to (not including) the End event that
// matches the Start event stream.Next already consumed, per §4.5.3 /
// §5's "buffer a bounded run of events" rule.
func bufferChildren(stream EventStream) ([]Event, error) {
	depth := 1
	var children []Event
	for {
		ev, err := stream.Next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case StartMap, StartSeq:
			depth++
		case EndMap, EndSeq:
			depth--
			if depth == 0 {
				return children, nil
			}
		}
		children = append(children, ev)
	}
}

// directChild classifies one immediate child of a buffered collection.
type directChild struct {
	isCollection bool
	isAlias      bool
	scalarLen    int
	events       []Event // this child's own full event span
}

// splitDirectChildren walks a flat, fully-buffered subtree and groups it
// into immediate children, looking past (but not into) nested
// collections, per §4.5.3's "any non-scalar/alias child forces block
// style" rule.
func splitDirectChildren(events []Event) []directChild {
	var out []directChild
	i := 0
	for i < len(events) {
		switch events[i].Kind {
		case ScalarEvent:
			out = append(out, directChild{scalarLen: len(events[i].Content), events: events[i : i+1]})
			i++
		case AliasEvent:
			out = append(out, directChild{isAlias: true, events: events[i : i+1]})
			i++
		case StartMap, StartSeq:
			depth := 1
			j := i + 1
			for depth > 0 {
				switch events[j].Kind {
				case StartMap, StartSeq:
					depth++
				case EndMap, EndSeq:
					depth--
				}
				j++
			}
			out = append(out, directChild{isCollection: true, events: events[i:j]})
			i = j
		}
	}
	return out
}

// sequence presents a buffered StartSeq's children, choosing flow or
// block per §4.5.3, then draining them through the §4.5.2 item-boundary
// logic. Called only for the document root: the newline already written
// by run() before the root node means the first block item needs none
// of its own, so this always renders inline (see sequenceWithInitialState
// for the nested case, which doesn't have that head start).
func (p *Presenter) sequence(start Event, children []Event) error {
	return p.sequenceWithInitialState(start, children, true)
}

func (p *Presenter) sequenceWithInitialState(start Event, children []Event, inline bool) error {
	if err := p.emitProps(start.Properties, DefaultSequenceTag); err != nil {
		return err
	}

	direct := splitDirectChildren(children)
	flow := p.seqUsesFlow(start, direct)

	if flow {
		return p.presentFlowSequence(direct)
	}
	return p.presentBlockSequence(direct, inline)
}

// seqUsesFlow applies §4.5.3's compactness score, forced by CollectionStyle
// and the overall presentation style where applicable.
func (p *Presenter) seqUsesFlow(start Event, direct []directChild) bool {
	switch p.opts.Style {
	case MinimalStyle, CanonicalStyle, JsonStyle:
		return true
	case BlockOnlyStyle:
		return false
	}
	if start.CollectionStyle == FlowCollectionStyle {
		return true
	}
	if start.CollectionStyle == BlockCollectionStyle {
		return false
	}
	total := 0
	for _, c := range direct {
		switch {
		case c.isCollection:
			return false
		case c.isAlias:
			total += 6
		default:
			total += 2 + c.scalarLen
		}
		if total > flowCompactnessLimit {
			return false
		}
	}
	return total <= flowCompactnessLimit
}

// mapping presents a buffered StartMap's children, choosing flow vs.
// block per §4.5.3, then draining them as alternating key/value pairs
// per §4.5.2. Called only for the document root: like sequence, it
// always renders its first pair inline since run() already put the
// cursor on a fresh line before the root node.
func (p *Presenter) mapping(start Event, children []Event) error {
	if p.opts.Style == JsonStyle {
		if err := p.checkJSONKeys(children); err != nil {
			return err
		}
	}
	if err := p.emitProps(start.Properties, DefaultMappingTag); err != nil {
		return err
	}

	direct := splitDirectChildren(children)

	if p.mapUsesFlow(start) {
		return p.presentFlowMapping(direct)
	}
	return p.presentBlockMappingInline(direct, true)
}

func (p *Presenter) mapUsesFlow(start Event) bool {
	switch p.opts.Style {
	case MinimalStyle, CanonicalStyle, JsonStyle:
		return true
	case BlockOnlyStyle:
		return false
	}
	return start.CollectionStyle == FlowCollectionStyle
}

// checkJSONKeys fails eagerly (§7) if any direct key (every other event
// at nesting depth 0) is not a scalar.
func (p *Presenter) checkJSONKeys(children []Event) error {
	direct := splitDirectChildren(children)
	for i, c := range direct {
		if i%2 != 0 {
			continue
		}
		if c.isCollection || c.isAlias {
			return &PresenterJsonError{Message: "json style requires scalar mapping keys"}
		}
	}
	return nil
}

// --- block rendering -------------------------------------------------

// presentBlockSequence drains direct as dashed items. When inline is
// true, the very first item omits its leading newline+indent because
// the caller already put the cursor on a fresh line (the document
// header, or a sequence item whose own dash already starts this line).
func (p *Presenter) presentBlockSequence(direct []directChild, inline bool) error {
	for i, c := range direct {
		if !(inline && i == 0) {
			if err := p.writeNLIndent(); err != nil {
				return err
			}
		}
		if err := p.write("- "); err != nil {
			return err
		}
		if err := p.presentDirectChild(c, dBlockInlineMap); err != nil {
			return err
		}
	}
	return nil
}

// presentDirectChild renders one already-classified child, recursing
// through the ordinary node path by replaying its buffered event span.
// inlineMapState is the initial state a nested mapping should use if this
// child turns out to be one (dBlockInlineMap when the child continues the
// current line, as after a block sequence item's "- "; any other state
// starts a nested block collection on a fresh line).
func (p *Presenter) presentDirectChild(c directChild, inlineMapState dumperState) error {
	buf := NewBufferStream(c.events)
	if !c.isCollection {
		return p.node(buf)
	}

	// §4.5.7: a nested collection's own items sit one indentationStep
	// deeper than its parent's; the parent's own items (handled by the
	// caller around this call) stay at the current column.
	p.indentation += p.opts.IndentationStep
	defer func() { p.indentation -= p.opts.IndentationStep }()

	ev, err := buf.Next()
	if err != nil {
		return err
	}
	rest, err := bufferChildren(buf)
	if err != nil {
		return err
	}
	if c.events[0].Kind == StartMap {
		return p.mappingWithInitialState(ev, rest, inlineMapState)
	}
	return p.sequenceWithInitialState(ev, rest, inlineMapState == dBlockInlineMap)
}

// mappingWithInitialState is the entry point for every nested mapping.
// For a block mapping, inlineMapState decides where its first key goes:
// dBlockInlineMap (after a sequence item's "- ") keeps it on the current
// line, any other state starts it on a fresh line.
func (p *Presenter) mappingWithInitialState(start Event, children []Event, inlineMapState dumperState) error {
	if p.opts.Style == JsonStyle {
		if err := p.checkJSONKeys(children); err != nil {
			return err
		}
	}
	if err := p.emitProps(start.Properties, DefaultMappingTag); err != nil {
		return err
	}
	direct := splitDirectChildren(children)
	if p.mapUsesFlow(start) {
		return p.presentFlowMapping(direct)
	}
	return p.presentBlockMappingInline(direct, inlineMapState == dBlockInlineMap)
}

func (p *Presenter) presentBlockMappingInline(direct []directChild, inline bool) error {
	state := dBlockMapValue
	if inline {
		state = dBlockInlineMap
	}
	first := true
	for i := 0; i+1 < len(direct); i += 2 {
		key, value := direct[i], direct[i+1]
		explicit := key.isCollection || p.opts.Style == CanonicalStyle

		if first && state == dBlockInlineMap {
			if explicit {
				if err := p.write("? "); err != nil {
					return err
				}
			}
		} else {
			if err := p.writeNLIndent(); err != nil {
				return err
			}
			if explicit {
				if err := p.write("? "); err != nil {
					return err
				}
			}
		}
		first = false

		if err := p.presentDirectChild(key, dBlockMapValue); err != nil {
			return err
		}
		if explicit {
			if err := p.writeNLIndent(); err != nil {
				return err
			}
			if err := p.write(": "); err != nil {
				return err
			}
		} else {
			if err := p.write(": "); err != nil {
				return err
			}
		}
		// A block-style value never continues the "key: " line — only a
		// sequence item's dash can open its child inline (see
		// presentBlockSequence) — so this always passes the non-inline state.
		if err := p.presentDirectChild(value, dBlockMapValue); err != nil {
			return err
		}
	}
	return nil
}

// --- flow rendering ----------------------------------------------------

func (p *Presenter) presentFlowSequence(direct []directChild) error {
	if err := p.write("["); err != nil {
		return err
	}
	for i, c := range direct {
		if i > 0 {
			if err := p.write(", "); err != nil {
				return err
			}
		}
		if err := p.presentDirectChild(c, dFlowSequenceStart); err != nil {
			return err
		}
	}
	return p.write("]")
}

func (p *Presenter) presentFlowMapping(direct []directChild) error {
	if err := p.write("{"); err != nil {
		return err
	}
	for i := 0; i+1 < len(direct); i += 2 {
		if i > 0 {
			if err := p.write(", "); err != nil {
				return err
			}
		}
		key, value := direct[i], direct[i+1]
		if key.isCollection {
			if err := p.write("? "); err != nil {
				return err
			}
		}
		if p.opts.Style == JsonStyle {
			// JSON object keys are always strings; checkJSONKeys has
			// already rejected collection and alias keys.
			if err := p.writeDoubleQuoted(key.events[0].Content); err != nil {
				return err
			}
		} else if err := p.presentDirectChild(key, dFlowMapStart); err != nil {
			return err
		}
		if err := p.write(": "); err != nil {
			return err
		}
		if err := p.presentDirectChild(value, dFlowMapStart); err != nil {
			return err
		}
	}
	return p.write("}")
}

// --- scalars, tags, anchors ---------------------------------------------

// scalar renders a standalone scalar value, per §4.5.4-4.5.5.
func (p *Presenter) scalar(ev Event) error {
	if p.opts.Style == JsonStyle {
		return p.scalarJSON(ev)
	}
	if err := p.emitProps(ev.Properties, DefaultScalarTag); err != nil {
		return err
	}
	if p.opts.Style == CanonicalStyle {
		return p.writeDoubleQuoted(ev.Content)
	}
	return p.writeStyled(ev.Content, ev.ScalarStyle)
}

func (p *Presenter) writeStyled(content string, style ScalarStyle) error {
	if style == AnyScalarStyle {
		insp := InspectScalar(content, p.indentation)
		style = insp.Style
		return p.writeByStyle(content, style, insp)
	}
	insp := InspectScalar(content, p.indentation)
	return p.writeByStyle(content, style, insp)
}

func (p *Presenter) writeByStyle(content string, style ScalarStyle, insp Inspection) error {
	switch style {
	case PlainScalarStyle:
		return p.write(content)
	case SingleQuotedScalarStyle:
		return p.writeSingleQuoted(content)
	case DoubleQuotedScalarStyle:
		return p.writeDoubleQuoted(content)
	case LiteralScalarStyle:
		return p.writeLiteral(content, insp)
	case FoldedScalarStyle:
		return p.writeFolded(content, insp)
	default:
		return p.write(content)
	}
}

func (p *Presenter) writeSingleQuoted(content string) error {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range content {
		if r == '\'' {
			b.WriteString("''")
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return p.write(b.String())
}

func (p *Presenter) writeDoubleQuoted(content string) error {
	var b strings.Builder
	b.WriteByte('"')
	writeJSONEscaped(&b, content)
	b.WriteByte('"')
	return p.write(b.String())
}

// writeLiteral emits a literal block scalar ("|"), with a chomping
// indicator when content does not end in a line feed, per §4.5.4.
func (p *Presenter) writeLiteral(content string, insp Inspection) error {
	header := "|"
	if !strings.HasSuffix(content, "\n") {
		header += "-"
	}
	if len(content) > 0 && (content[0] == ' ' || content[0] == '\t') {
		header += "1"
	}
	if err := p.write(header); err != nil {
		return err
	}
	p.indentation += p.opts.IndentationStep
	defer func() { p.indentation -= p.opts.IndentationStep }()
	for _, l := range insp.Lines {
		line := l.Slice(content)
		if line == "" && l == insp.Lines[len(insp.Lines)-1] {
			continue
		}
		if err := p.writeNLIndent(); err != nil {
			return err
		}
		if err := p.write(line); err != nil {
			return err
		}
	}
	return nil
}

// writeFolded emits a folded block scalar (">"): each of content's own
// logical lines is word-wrapped to fit the line-width budget, since a
// single line feed in folded style folds to a space on re-parse (§4.5.4).
func (p *Presenter) writeFolded(content string, insp Inspection) error {
	header := ">"
	if !strings.HasSuffix(content, "\n") {
		header += "-"
	}
	if err := p.write(header); err != nil {
		return err
	}
	maxWidth := maxLineWidth - p.indentation
	p.indentation += p.opts.IndentationStep
	defer func() { p.indentation -= p.opts.IndentationStep }()

	logical := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for _, line := range logical {
		for _, wrapped := range wrapFoldedLine(line, maxWidth) {
			if err := p.writeNLIndent(); err != nil {
				return err
			}
			if err := p.write(wrapped); err != nil {
				return err
			}
		}
	}
	return nil
}

// wrapFoldedLine greedily packs line's words into physical lines no wider
// than maxWidth, so a folded scalar's long logical line reads back as one
// line after YAML's single-newline-folds-to-space rule is applied.
func wrapFoldedLine(line string, maxWidth int) []string {
	if line == "" {
		return []string{""}
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{line}
	}
	out := make([]string, 0, len(words))
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) > maxWidth {
			out = append(out, cur)
			cur = w
		} else {
			cur += " " + w
		}
	}
	return append(out, cur)
}

// scalarJSON implements §4.5.4's Json literal/quote decision.
func (p *Presenter) scalarJSON(ev Event) error {
	guess := GuessScalarTag(ev.Content)
	if guess == GuessFloatInf || guess == GuessFloatNaN {
		return &PresenterJsonError{Message: "json style cannot represent an Inf/NaN float scalar"}
	}
	tag := jsonEffectiveTag(ev.Properties.Tag, guess)
	if jsonLiteralOK(tag, guess) {
		return p.write(ev.Content)
	}
	return p.writeDoubleQuoted(ev.Content)
}

func jsonEffectiveTag(explicit Tag, guess TagGuess) Tag {
	switch explicit {
	case "", TagNonSpecificQuestion:
		switch guess {
		case GuessNull:
			return NullTag
		case GuessBoolTrue, GuessBoolFalse:
			return BoolTag
		case GuessInt:
			return IntTag
		case GuessFloat:
			return FloatTag
		default:
			return StrTag
		}
	case TagNonSpecificBang:
		return StrTag
	default:
		return explicit
	}
}

func jsonLiteralOK(tag Tag, guess TagGuess) bool {
	switch tag {
	case NullTag:
		return guess == GuessNull
	case BoolTag:
		return guess == GuessBoolTrue || guess == GuessBoolFalse
	case IntTag:
		return guess == GuessInt
	case FloatTag:
		return guess == GuessFloat
	default:
		return false
	}
}

// writeJSONEscaped appends content to b, double-quote-escaped per RFC
// 8259, reused by both double-quoted YAML scalars and Json style.
func writeJSONEscaped(b *strings.Builder, content string) {
	for _, r := range content {
		switch r {
		case '"':
			b.WriteString("\\\"")
		case '\\':
			b.WriteString("\\\\")
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\b':
			b.WriteString("\\b")
		default:
			if r < 0x20 {
				fmt.Fprintf(b, "\\u%04x", r)
			} else {
				b.WriteRune(r)
			}
		}
	}
}

// emitProps implements §4.5.5: the tag (unless non-specific or Json
// style) followed by the anchor, both space-terminated.
func (p *Presenter) emitProps(props Properties, defaultTag Tag) error {
	if p.opts.Style == JsonStyle {
		return nil
	}
	if props.Tag != "" && props.Tag != TagNonSpecificQuestion && props.Tag != TagNonSpecificBang {
		if handle, prefixLen := p.tags.SearchHandle(string(props.Tag)); handle != "" {
			if err := p.write(handle + string(props.Tag)[prefixLen:] + " "); err != nil {
				return err
			}
		} else {
			if err := p.write("!<" + string(props.Tag) + "> "); err != nil {
				return err
			}
		}
	}
	if props.Anchor != NoAnchor {
		if err := p.write("&" + string(props.Anchor) + " "); err != nil {
			return err
		}
	}
	return nil
}

// --- low-level output ----------------------------------------------------

func (p *Presenter) write(s string) error {
	if _, err := p.out.WriteString(s); err != nil {
		return &PresenterOutputError{Err: err}
	}
	return nil
}

func (p *Presenter) writeNLIndent() error {
	if err := p.writeNewline(); err != nil {
		return err
	}
	return p.write(strings.Repeat(" ", p.indentation))
}

func (p *Presenter) writeNewline() error {
	if _, err := p.out.Write(p.opts.Newlines.bytes()); err != nil {
		return &PresenterOutputError{Err: err}
	}
	return nil
}
