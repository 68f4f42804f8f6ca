package stream

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/weftlabs/weft/pkg/logger"
	"github.com/weftlabs/weft/pkg/wire"
)

const (
	// NoContentSentinel is the server-side placeholder a final record
	// carries when the model produced nothing. It is suppressed rather
	// than shown. Deliberately an exact-match constant: the server only
	// ever sends this one placeholder.
	NoContentSentinel = "No response"

	// FallbackText is shown when neither content nor a usable final
	// record arrived, so the UI never displays an empty bubble.
	FallbackText = "No response generated."
)

// Snapshot is a read-only view of the evolving reply, published to the
// consumer after every content update and once more on completion or
// failure. Each snapshot replaces the previous one for the same turn.
type Snapshot struct {
	Text      string
	Streaming bool
}

// Publisher receives snapshots as the session decodes the stream.
type Publisher func(Snapshot)

// Session drives the decode pipeline for the lifetime of one request:
// split chunks into records, classify, accumulate content, and resolve
// the displayed text when the transport ends. A session is owned by a
// single goroutine (the transport read loop) and is not synchronized.
type Session struct {
	id        string
	state     State
	splitter  *wire.Splitter
	content   strings.Builder
	final     string
	finalSeen bool
	publish   Publisher
}

// NewSession creates an idle session publishing to the given publisher.
// A nil publisher is allowed; snapshots are then simply dropped.
func NewSession(publish Publisher) *Session {
	return &Session{
		id:       uuid.NewString(),
		state:    StateIdle,
		splitter: wire.NewSplitter(),
		publish:  publish,
	}
}

// ID returns the session's correlation identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Text returns the content accumulated so far.
func (s *Session) Text() string {
	return s.content.String()
}

// HandleChunk feeds one transport chunk through the pipeline. The first
// chunk moves the session from idle to streaming. Chunks arriving after
// a terminal state are discarded.
func (s *Session) HandleChunk(chunk string) {
	if s.state.Terminal() {
		logger.Warn("session %s received chunk after %s", s.id, s.state)
		return
	}
	if s.state == StateIdle {
		s.state = StateStreaming
		logger.Debug("session %s streaming", s.id)
	}

	for _, record := range s.splitter.Feed(chunk) {
		s.handleRecord(record)
	}
}

// Complete finalizes the session after the transport reported a clean
// end of stream: the trailing partial record is flushed through the same
// pipeline, the displayed text is resolved, and a final non-streaming
// snapshot is published.
func (s *Session) Complete() Snapshot {
	if s.state.Terminal() {
		return Snapshot{Text: s.resolve()}
	}

	if record, ok := s.splitter.Flush(); ok {
		s.handleRecord(record)
	}

	s.state = StateCompleted
	snap := Snapshot{Text: s.resolve(), Streaming: false}
	s.emit(snap)
	logger.Debug("session %s completed, %d bytes", s.id, len(snap.Text))
	return snap
}

// Fail aborts the session on a transport-level error. Partial content is
// discarded and a single snapshot carrying an error description replaces
// the in-progress reply.
func (s *Session) Fail(err error) Snapshot {
	if s.state.Terminal() {
		return Snapshot{Text: s.resolve()}
	}

	s.state = StateFailed
	s.content.Reset()
	s.splitter = wire.NewSplitter()

	snap := Snapshot{Text: fmt.Sprintf("Error: %v", err), Streaming: false}
	s.emit(snap)
	logger.Error("session %s failed: %v", s.id, err)
	return snap
}

// handleRecord classifies one complete record and applies it. This is
// the only place content concatenation happens, which keeps fragments in
// strict arrival order.
func (s *Session) handleRecord(record string) {
	event := wire.Classify(record)
	switch event.Kind {
	case wire.KindContent:
		s.content.WriteString(wire.UnescapeContent(event.Payload))
		s.emit(Snapshot{Text: s.content.String(), Streaming: true})
	case wire.KindStatus:
		logger.Debug("session %s status: %s", s.id, event.Payload)
	case wire.KindFinal:
		s.final = event.Payload
		s.finalSeen = true
	case wire.KindUnknown:
		logger.Debug("session %s ignoring unrecognized record: %q", s.id, event.Payload)
	}
}

// resolve picks the text to display at end of stream. Streamed content
// always wins over a final record; the no-content sentinel is treated as
// if no final record arrived at all.
func (s *Session) resolve() string {
	if s.content.Len() > 0 {
		return s.content.String()
	}
	if s.finalSeen && s.final != "" && s.final != NoContentSentinel {
		return s.final
	}
	return FallbackText
}

func (s *Session) emit(snap Snapshot) {
	if s.publish != nil {
		s.publish(snap)
	}
}
