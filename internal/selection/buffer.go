package selection

import (
	"strings"
	"sync"
)

// Buffer is a headless Surface over a rune slice. It is safe for concurrent
// use. Ranges outside the text are clamped to it.
type Buffer struct {
	mu     sync.Mutex
	text   []rune
	sel    Range
	hasSel bool
}

var _ Surface = (*Buffer)(nil)

// NewBuffer creates a Buffer holding text with no selection.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: []rune(text)}
}

// String returns the full text.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.text)
}

// Find returns the range of the first occurrence of substr.
func (b *Buffer) Find(substr string) (Range, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	full := string(b.text)
	i := strings.Index(full, substr)
	if substr == "" || i < 0 {
		return Range{}, false
	}
	start := len([]rune(full[:i]))
	return Range{Start: start, End: start + len([]rune(substr))}, true
}

// All returns the range covering the whole text.
func (b *Buffer) All() Range {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Range{Start: 0, End: len(b.text)}
}

func (b *Buffer) Selection() (Range, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sel, b.hasSel
}

func (b *Buffer) Text(r Range) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	r = b.clamp(r)
	return string(b.text[r.Start:r.End])
}

func (b *Buffer) Select(r Range) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sel = b.clamp(r)
	b.hasSel = true
}

// ClearSelection drops the selection.
func (b *Buffer) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sel = Range{}
	b.hasSel = false
}

func (b *Buffer) Delete(r Range) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r = b.clamp(r)
	if r.Collapsed() {
		return
	}
	b.text = append(b.text[:r.Start], b.text[r.End:]...)
	b.sel = Range{Start: r.Start, End: r.Start}
}

func (b *Buffer) Insert(at int, text string) Range {
	b.mu.Lock()
	defer b.mu.Unlock()

	at = b.clamp(Range{Start: at, End: at}).Start
	ins := []rune(text)

	out := make([]rune, 0, len(b.text)+len(ins))
	out = append(out, b.text[:at]...)
	out = append(out, ins...)
	out = append(out, b.text[at:]...)
	b.text = out

	return Range{Start: at, End: at + len(ins)}
}

func (b *Buffer) clamp(r Range) Range {
	n := len(b.text)
	r.Start = min(max(r.Start, 0), n)
	r.End = min(max(r.End, r.Start), n)
	return r
}
