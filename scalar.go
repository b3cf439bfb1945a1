// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import "strings"

// maxLineWidth is the target line width the inspector and presenter budget
// indentation against, per §4.3.
const maxLineWidth = 80

// Range is a half-open [Start, Finish) byte-offset range into a scalar's
// content.
type Range struct {
	Start, Finish int
}

// Slice returns content[r.Start:r.Finish].
func (r Range) Slice(content string) string { return content[r.Start:r.Finish] }

// Inspection is the result of inspecting a scalar's content: the chosen
// style plus the word and line slicings a literal/folded/plain writer
// needs to lay the content out.
type Inspection struct {
	Style ScalarStyle
	Words []Range
	Lines []Range
}

// InspectScalar decides how content should be presented at the given
// indentation column, per §4.3's single-pass decision algorithm. The
// returned style is always one of Plain, DoubleQuoted, Literal or Folded
// (never SingleQuoted or Any — the presenter chooses single-quoting
// separately when a caller explicitly requests it).
func InspectScalar(content string, indentation int) Inspection {
	lines := splitLines(content)
	words := splitWords(content)

	if content == "" {
		return Inspection{Style: DoubleQuotedScalarStyle, Words: words, Lines: lines}
	}

	canUsePlain := true
	switch content[0] {
	case '@', '`', '|', '>', '&', '*', '!', ' ', '\t':
		canUsePlain = false
	}
	if canUsePlain {
		for _, r := range content {
			if r < 32 {
				canUsePlain = false
				break
			}
			switch r {
			case '{', '}', '[', ']', ',', '#', '-', ':', '?', '%', '"', '\'':
				canUsePlain = false
			}
			if !canUsePlain {
				break
			}
		}
	}
	if canUsePlain && strings.ContainsRune(content, '\n') {
		canUsePlain = false
	}

	canUseLiteral := true
	canUseFolded := true
	maxWidth := maxLineWidth - indentation
	for _, l := range lines {
		line := l.Slice(content)
		if strings.HasPrefix(line, " ") {
			canUseFolded = false
		}
		if len(line) > maxWidth {
			canUseLiteral = false
		}
	}

	plainOrQuoted := func() ScalarStyle {
		if canUsePlain {
			return PlainScalarStyle
		}
		return DoubleQuotedScalarStyle
	}

	for _, w := range words {
		if w.Finish-w.Start > maxWidth {
			return Inspection{Style: plainOrQuoted(), Words: words, Lines: lines}
		}
	}

	if len(content) <= maxWidth {
		return Inspection{Style: plainOrQuoted(), Words: words, Lines: lines}
	}

	var style ScalarStyle
	switch {
	case canUseLiteral:
		style = LiteralScalarStyle
	case canUseFolded:
		style = FoldedScalarStyle
	case canUsePlain:
		style = PlainScalarStyle
	default:
		style = DoubleQuotedScalarStyle
	}
	return Inspection{Style: style, Words: words, Lines: lines}
}

// splitLines slices content into half-open ranges separated by line feeds.
func splitLines(content string) []Range {
	var out []Range
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			out = append(out, Range{start, i})
			start = i + 1
		}
	}
	out = append(out, Range{start, len(content)})
	return out
}

// splitWords slices content into half-open ranges separated by runs of
// spaces/tabs.
func splitWords(content string) []Range {
	var out []Range
	start := -1
	for i := 0; i < len(content); i++ {
		c := content[i]
		isSpace := c == ' ' || c == '\t'
		switch {
		case !isSpace && start < 0:
			start = i
		case isSpace && start >= 0:
			out = append(out, Range{start, i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, Range{start, len(content)})
	}
	return out
}
