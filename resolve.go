// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Core-schema scalar tag guessing, used by the Json presentation style
// (§4.5.4) and by the tag-guessing contract custom scalar type mappings
// must provide (§4.6). Grounded on the teacher's resolver/desolver split
// (internal/libyaml/desolver.go) and on WillAbides-yaml's internal/resolve
// package naming.

package engine

import "regexp"

// TagGuess is the result of guessing a plain scalar's implicit type from
// its content, per the core schema.
type TagGuess string

const (
	GuessInt       TagGuess = "int"
	GuessFloat     TagGuess = "float"
	GuessFloatInf  TagGuess = "float-inf"
	GuessFloatNaN  TagGuess = "float-nan"
	GuessBoolTrue  TagGuess = "bool-true"
	GuessBoolFalse TagGuess = "bool-false"
	GuessNull      TagGuess = "null"
	GuessTimestamp TagGuess = "timestamp"
	GuessUnknown   TagGuess = "unknown"
)

var (
	nullValues  = map[string]bool{"": true, "~": true, "null": true, "Null": true, "NULL": true}
	trueValues  = map[string]bool{"true": true, "True": true, "TRUE": true}
	falseValues = map[string]bool{"false": true, "False": true, "FALSE": true}
	infValues   = map[string]bool{
		".inf": true, ".Inf": true, ".INF": true,
		"+.inf": true, "+.Inf": true, "+.INF": true,
		"-.inf": true, "-.Inf": true, "-.INF": true,
	}
	nanValues = map[string]bool{".nan": true, ".NaN": true, ".NAN": true}

	intPattern       = regexp.MustCompile(`^[-+]?(0|[1-9][0-9]*|0x[0-9a-fA-F]+|0o[0-7]+|0b[01]+)$`)
	floatPattern     = regexp.MustCompile(`^[-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?$`)
	timestampPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}([Tt ][0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?([Zz]|[-+][0-9]{2}:?[0-9]{2})?)?$`)
)

// GuessScalarTag guesses the implicit core-schema type of a plain scalar's
// content.
func GuessScalarTag(content string) TagGuess {
	switch {
	case nullValues[content]:
		return GuessNull
	case trueValues[content]:
		return GuessBoolTrue
	case falseValues[content]:
		return GuessBoolFalse
	case infValues[content]:
		return GuessFloatInf
	case nanValues[content]:
		return GuessFloatNaN
	case intPattern.MatchString(content):
		return GuessInt
	case floatPattern.MatchString(content) && containsFloatMarker(content):
		return GuessFloat
	case timestampPattern.MatchString(content):
		return GuessTimestamp
	default:
		return GuessUnknown
	}
}

// containsFloatMarker requires a '.' or exponent so integers matched by
// floatPattern's optional-fraction form (e.g. "123") are not misclassified
// as floats; those are caught by intPattern first, but bare exponent forms
// like "1e3" still need to count as float.
func containsFloatMarker(s string) bool {
	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' {
			return true
		}
	}
	return false
}
