// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Presentation configuration (§4.5, §6): how a Presenter lays out block vs
// flow collections, what indentation step it uses, which newline sequence
// it writes, and whether it emits a %YAML version directive. Grounded on
// the teacher's functional-option pattern (option/option.go, options.go's
// WithIndent/WithLineWidth/WithExplicitStart family) but re-pointed at this
// module's event-stream Presenter instead of the native-value dumper.

package engine

// PresentationStyle selects an overall preset for collection style and
// scalar quoting, per §4.5.3 and §6.
type PresentationStyle int8

const (
	// DefaultStyle lets the presenter choose block vs flow for a sequence
	// whose event leaves CollectionStyle undecided, using the §4.5.3
	// compactness score (flow only when every item is a scalar or alias
	// and the score is at most 60). A mapping is rendered in flow only
	// when its event asks for FlowCollectionStyle.
	DefaultStyle PresentationStyle = iota
	// MinimalStyle forces flow collections everywhere and plain scalars
	// wherever the inspector allows, for compact single-line output.
	MinimalStyle
	// CanonicalStyle forces double-quoted scalars and flow collections,
	// matching the teacher's --canonical flag. Tags are written only where
	// the events carry them; none are added.
	CanonicalStyle
	// BlockOnlyStyle forces block collections everywhere, even single
	// scalars that would otherwise fit on one line in flow.
	BlockOnlyStyle
	// JsonStyle renders a restricted subset valid as JSON: double-quoted
	// strings and mapping keys, flow-only collections, no anchors or
	// aliases, and fails (PresenterJsonError) if the input can't comply
	// (§4.5.4, §6.4).
	JsonStyle
)

func (s PresentationStyle) String() string {
	switch s {
	case DefaultStyle:
		return "default"
	case MinimalStyle:
		return "minimal"
	case CanonicalStyle:
		return "canonical"
	case BlockOnlyStyle:
		return "block-only"
	case JsonStyle:
		return "json"
	default:
		return "unknown"
	}
}

// Newlines selects the line-ending sequence the presenter writes, per §6.
type Newlines int8

const (
	// LF writes a bare "\n"; it is the default.
	LF Newlines = iota
	// CRLF writes "\r\n", for interoperating with tools that expect it.
	CRLF
	// OSDefaultNewlines writes CRLF on Windows and LF elsewhere, matching
	// the teacher's WithLineBreak(yaml.OSDefaultLineBreak) behavior.
	OSDefaultNewlines
)

func (n Newlines) bytes() []byte {
	switch n {
	case CRLF:
		return []byte("\r\n")
	case OSDefaultNewlines:
		return []byte(osNewline)
	default:
		return []byte("\n")
	}
}

// OutputVersion selects the %YAML directive a presenter writes at the
// start of a document, per §4.5.1.
type OutputVersion int8

const (
	// Version1_2 writes "%YAML 1.2" at the start of every document.
	Version1_2 OutputVersion = iota
	// Version1_1 writes "%YAML 1.1", for producers targeting older
	// consumers.
	Version1_1
	// NoVersionDirective never writes a %YAML directive, even when one
	// would otherwise be implied.
	NoVersionDirective
)

// Options configures a Presenter's layout decisions. The zero value is not
// valid on its own; use DefaultOptions.
type Options struct {
	Style           PresentationStyle
	IndentationStep int
	Newlines        Newlines
	OutputVersion   OutputVersion
}

// DefaultOptions returns the engine's baseline presentation configuration:
// DefaultStyle, two-space indentation, LF newlines, and a %YAML 1.2
// directive before every document.
func DefaultOptions() Options {
	return Options{
		Style:           DefaultStyle,
		IndentationStep: 2,
		Newlines:        LF,
		OutputVersion:   Version1_2,
	}
}

// PresentOption mutates an Options value, following the teacher's
// functional-option pattern.
type PresentOption func(*Options)

// WithStyle selects the overall presentation style.
func WithStyle(style PresentationStyle) PresentOption {
	return func(o *Options) { o.Style = style }
}

// WithIndentationStep sets the number of columns each block nesting level
// indents by. Panics-free: values below 1 are clamped to 1 by the
// presenter rather than rejected, matching the teacher's tolerant
// WithIndent behavior.
func WithIndentationStep(step int) PresentOption {
	return func(o *Options) { o.IndentationStep = step }
}

// WithNewlines selects the newline sequence written between lines.
func WithNewlines(n Newlines) PresentOption {
	return func(o *Options) { o.Newlines = n }
}

// WithOutputVersion selects whether and which %YAML directive is written.
func WithOutputVersion(v OutputVersion) PresentOption {
	return func(o *Options) { o.OutputVersion = v }
}

// resolveOptions applies opts over DefaultOptions and clamps indentation
// to a sane minimum.
func resolveOptions(opts []PresentOption) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.IndentationStep < 1 {
		o.IndentationStep = 1
	}
	return o
}
