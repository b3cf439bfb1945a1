// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Error taxonomy for the event-stream engine. Plain custom error structs
// with Mark-carrying context; the two that wrap a cause (StreamError and
// PresenterOutputError) implement Unwrap. This matches the teacher's
// internal/libyaml/errors.go pattern rather than a third-party
// error-wrapping library (see DESIGN.md / SPEC_FULL.md's Ambient Stack
// section for why).

package engine

import (
	"errors"
	"fmt"
)

var errEndOfBuffer = errors.New("engine: read past end of buffered event stream")

// MarkedError is embedded by errors that carry a source position and the
// offending line's content, mirroring the teacher's MarkedYAMLError.
type MarkedError struct {
	Mark        Mark
	LineContent string
	Message     string
}

func (e MarkedError) Error() string {
	if e.LineContent != "" {
		return fmt.Sprintf("engine: %s at %s: %q", e.Message, e.Mark, e.LineContent)
	}
	return fmt.Sprintf("engine: %s at %s", e.Message, e.Mark)
}

// StreamError wraps a backend I/O failure or an event-stream invariant
// violation encountered while pulling events (§4.1, §7).
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string { return fmt.Sprintf("engine: stream error: %v", e.Err) }
func (e *StreamError) Unwrap() error { return e.Err }

// ConstructionError is a semantic error raised while building a value (DOM
// node or native Go value) from events: wrong tag, missing field,
// duplicate key, or an alias referencing an unknown anchor (§4.7, §7).
type ConstructionError struct {
	MarkedError
}

func (e *ConstructionError) Error() string { return e.MarkedError.Error() }

// NewConstructionError builds a ConstructionError at mark with message,
// optionally including the offending line's content for diagnostics.
func NewConstructionError(mark Mark, lineContent, message string) *ConstructionError {
	return &ConstructionError{MarkedError{Mark: mark, LineContent: lineContent, Message: message}}
}

// SerializationError is raised when a value cannot be represented: a
// cyclic graph under AnchorStyleNone (§4.4), or a value out of the target
// type's range.
type SerializationError struct {
	Message string
}

func (e *SerializationError) Error() string { return fmt.Sprintf("engine: %s", e.Message) }

// PresenterJsonError is raised when an event sequence cannot be rendered
// as strict JSON: multiple documents, non-scalar map keys, NaN/Inf floats,
// or aliases (§4.5.4, §4.5.6, §7).
type PresenterJsonError struct {
	Message string
}

func (e *PresenterJsonError) Error() string { return fmt.Sprintf("engine: json: %s", e.Message) }

// PresenterOutputError wraps a failure writing to the byte sink.
type PresenterOutputError struct {
	Err error
}

func (e *PresenterOutputError) Error() string {
	return fmt.Sprintf("engine: output error: %v", e.Err)
}
func (e *PresenterOutputError) Unwrap() error { return e.Err }
