// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import "errors"

// EventStream is a pull iterator over an event sequence with one-element
// peek and pushback, per §4.1. Well-formedness (the invariants of §3) is a
// producer obligation; consumers may assume it holds. An EventStream is
// single-threaded and not restartable.
type EventStream interface {
	// Next consumes and returns the next event, failing with a
	// *StreamError wrapping any backend failure.
	Next() (Event, error)

	// Peek returns the next event without consuming it. Calling Peek
	// repeatedly without an intervening Next returns the same event
	// (idempotent).
	Peek() (Event, error)

	// PushPeek overwrites the cached peeked event, used by the presenter's
	// lookahead buffer (§4.5.3) to put back events it read ahead to decide
	// flow-vs-block.
	PushPeek(Event)

	// LastTokenContext returns the source line containing the most
	// recently produced token/event, for diagnostics, if available.
	LastTokenContext() (string, bool)
}

// ProducerFunc pulls one event at a time from a backend, returning
// (Event{}, io.EOF) — or any other error — to signal the end of input. It
// is the "generator-like producer" a FuncStream wraps.
type ProducerFunc func() (Event, error)

// FuncStream is the function-backed EventStream implementation: it wraps a
// ProducerFunc and layers the one-element peek/pushback contract on top.
type FuncStream struct {
	produce ProducerFunc

	hasPeek  bool
	peeked   Event
	peekErr  error
	lastLine string
	hasLine  bool
}

// NewFuncStream returns a FuncStream pulling events from produce.
func NewFuncStream(produce ProducerFunc) *FuncStream {
	return &FuncStream{produce: produce}
}

func (s *FuncStream) fill() {
	if s.hasPeek {
		return
	}
	s.peeked, s.peekErr = s.produce()
	s.hasPeek = true
}

func (s *FuncStream) Next() (Event, error) {
	s.fill()
	e, err := s.peeked, s.peekErr
	s.hasPeek = false
	s.peeked = Event{}
	s.peekErr = nil
	if err != nil {
		return Event{}, wrapStreamError(err)
	}
	return e, nil
}

func (s *FuncStream) Peek() (Event, error) {
	s.fill()
	if s.peekErr != nil {
		return Event{}, wrapStreamError(s.peekErr)
	}
	return s.peeked, nil
}

func (s *FuncStream) PushPeek(e Event) {
	s.hasPeek = true
	s.peeked = e
	s.peekErr = nil
}

func (s *FuncStream) LastTokenContext() (string, bool) {
	return s.lastLine, s.hasLine
}

// SetLastTokenContext lets a producer record the source line for the most
// recently yielded event, surfaced later through LastTokenContext.
func (s *FuncStream) SetLastTokenContext(line string) {
	s.lastLine = line
	s.hasLine = true
}

// wrapStreamError wraps a backend failure in *StreamError, unless it is
// already one (double-wrapping would lose nothing but is wasteful).
func wrapStreamError(err error) error {
	if err == nil {
		return nil
	}
	var se *StreamError
	if errors.As(err, &se) {
		return err
	}
	return &StreamError{Err: err}
}

// BufferStream is the buffer-backed EventStream implementation: an ordered
// slice of events with a read cursor, plus an Append API used during
// representation (§4.1) and by the anchor graph manager's two-pass rewrite
// (§4.4).
type BufferStream struct {
	events []Event
	pos    int

	hasPeek bool
	peeked  Event
}

// NewBufferStream returns a BufferStream over a copy of events.
func NewBufferStream(events []Event) *BufferStream {
	b := &BufferStream{events: append([]Event(nil), events...)}
	return b
}

// Append adds an event to the end of the buffer. Safe to call while a
// cursor is mid-stream; appended events are simply read later.
func (b *BufferStream) Append(e Event) {
	b.events = append(b.events, e)
}

// Cursor returns the number of events read from the buffer so far. An
// event held by Peek counts as read, so after Peek the cursor is one past
// the index of the event the next Next() returns.
func (b *BufferStream) Cursor() int {
	return b.pos
}

// Len returns the number of events currently buffered.
func (b *BufferStream) Len() int {
	return len(b.events)
}

// At returns the event at index i without affecting the cursor, for the
// anchor graph manager's rewrite pass.
func (b *BufferStream) At(i int) Event {
	return b.events[i]
}

// Set overwrites the event at index i, used by the anchor graph rewrite
// pass to install a corrected anchor/alias.
func (b *BufferStream) Set(i int, e Event) {
	b.events[i] = e
}

func (b *BufferStream) Next() (Event, error) {
	if b.hasPeek {
		e := b.peeked
		b.hasPeek = false
		return e, nil
	}
	if b.pos >= len(b.events) {
		return Event{}, &StreamError{Err: errEndOfBuffer}
	}
	e := b.events[b.pos]
	b.pos++
	return e, nil
}

func (b *BufferStream) Peek() (Event, error) {
	if b.hasPeek {
		return b.peeked, nil
	}
	if b.pos >= len(b.events) {
		return Event{}, &StreamError{Err: errEndOfBuffer}
	}
	b.peeked = b.events[b.pos]
	b.pos++
	b.hasPeek = true
	return b.peeked, nil
}

func (b *BufferStream) PushPeek(e Event) {
	b.hasPeek = true
	b.peeked = e
}

func (b *BufferStream) LastTokenContext() (string, bool) {
	return "", false
}
