// Package selection captures a span of an editing surface and later replaces
// exactly that span with assistant output.
//
// Capture and replace are not atomic with respect to edits made in between;
// replacing after such edits is best-effort.
package selection

import (
	"strings"
	"sync"
)

// NoSelectionNotice is shown when a replace is attempted before any capture.
const NoSelectionNotice = "No text selected. Please select text first."

// Range is a half-open span [Start, End) of rune offsets.
type Range struct {
	Start int
	End   int
}

// Collapsed reports whether the range is a cursor position.
func (r Range) Collapsed() bool { return r.Start >= r.End }

// Snapshot is a captured range together with its trimmed text.
type Snapshot struct {
	Range Range
	Text  string
}

// Surface is the editing surface the protocol operates on.
type Surface interface {
	// Selection returns the active selection, which may be collapsed.
	Selection() (Range, bool)
	Text(r Range) string
	Select(r Range)
	Delete(r Range)
	// Insert places text at offset at and returns the span it now occupies.
	Insert(at int, text string) Range
}

// Protocol is the narrow capture/replace contract the request flow depends on.
type Protocol interface {
	Capture() (Snapshot, bool)
	ReplaceSnapshot(snap Snapshot, text string) bool
}

// Editor implements Protocol over a Surface.
type Editor struct {
	surface Surface
}

// NewEditor creates an Editor for surface.
func NewEditor(surface Surface) *Editor {
	return &Editor{surface: surface}
}

// Capture returns the current selection if its text is non-blank. The range
// keeps any surrounding whitespace; the snapshot text is trimmed.
func (e *Editor) Capture() (Snapshot, bool) {
	r, ok := e.surface.Selection()
	if !ok || r.Collapsed() {
		return Snapshot{}, false
	}

	text := strings.TrimSpace(e.surface.Text(r))
	if text == "" {
		return Snapshot{}, false
	}
	return Snapshot{Range: r, Text: text}, true
}

// ReplaceSnapshot restores snap's range, replaces its contents with text and
// leaves a collapsed selection right after the inserted text.
func (e *Editor) ReplaceSnapshot(snap Snapshot, text string) bool {
	e.surface.Select(snap.Range)
	e.surface.Delete(snap.Range)
	inserted := e.surface.Insert(snap.Range.Start, text)
	e.surface.Select(Range{Start: inserted.End, End: inserted.End})
	return true
}

// Notifier shows a message to the user.
type Notifier func(msg string)

// Session holds at most one captured snapshot between a user's trigger and
// the arrival of the assistant's response.
type Session struct {
	proto  Protocol
	notify Notifier

	mu   sync.Mutex
	snap *Snapshot
}

// NewSession creates a Session. notify may be nil.
func NewSession(proto Protocol, notify Notifier) *Session {
	if notify == nil {
		notify = func(string) {}
	}
	return &Session{proto: proto, notify: notify}
}

// Capture stores the current selection and returns its trimmed text, or ""
// when nothing is selected. An earlier capture is kept in that case.
func (s *Session) Capture() string {
	snap, ok := s.proto.Capture()
	if !ok {
		return ""
	}

	s.mu.Lock()
	s.snap = &snap
	s.mu.Unlock()
	return snap.Text
}

// Captured returns the pending snapshot, if any.
func (s *Session) Captured() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return Snapshot{}, false
	}
	return *s.snap, true
}

// Replace writes text over the captured span and consumes the snapshot.
// Without a capture it notifies the user, leaves the surface untouched and
// returns false.
func (s *Session) Replace(text string) bool {
	s.mu.Lock()
	snap := s.snap
	s.mu.Unlock()

	if snap == nil {
		s.notify(NoSelectionNotice)
		return false
	}

	if !s.proto.ReplaceSnapshot(*snap, text) {
		return false
	}

	s.mu.Lock()
	if s.snap == snap {
		s.snap = nil
	}
	s.mu.Unlock()
	return true
}
