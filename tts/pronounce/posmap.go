package pronounce

import (
	"fmt"
	"sort"
)

// Kind tags what produced a range of spoken text.
type Kind int

const (
	// Plain is text spoken as written.
	Plain Kind = iota
	// Spelling is a respelled substitution ("Sequim" spoken as "Skwim").
	Spelling
	// Phoneme is written text enclosed in a phoneme element.
	Phoneme
	// PhonemeOverhead is the markup of a phoneme element itself. It has
	// spoken length but no written length.
	PhonemeOverhead
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Spelling:
		return "spelling"
	case Phoneme:
		return "phoneme"
	case PhonemeOverhead:
		return "phoneme-overhead"
	default:
		return "unknown"
	}
}

// Entry correlates a range of written text with a range of spoken text.
type Entry struct {
	SpokenStart   int
	SpokenLength  int
	WrittenStart  int
	WrittenLength int
	Kind          Kind
}

// SpokenEnd returns the offset just past the entry's spoken range.
func (e Entry) SpokenEnd() int { return e.SpokenStart + e.SpokenLength }

// WrittenEnd returns the offset just past the entry's written range.
func (e Entry) WrittenEnd() int { return e.WrittenStart + e.WrittenLength }

// empty reports whether the entry covers nothing in either text.
func (e Entry) empty() bool { return e.SpokenLength <= 0 && e.WrittenLength <= 0 }

func (e Entry) String() string {
	return fmt.Sprintf("spoken[%d,+%d) written[%d,+%d) %s",
		e.SpokenStart, e.SpokenLength, e.WrittenStart, e.WrittenLength, e.Kind)
}

// Cursor is the per-utterance playback position used by SpokenToWritten.
// Index only ever moves forward until the cursor is reset.
type Cursor struct {
	Index           int // current map entry
	WrittenRestart  int // written offset speech was last (re)started at
	SpokenRestart   int // spoken offset matching WrittenRestart
	WrittenPosition int // last reported written position
}

// Reset returns the cursor to the start of the utterance.
func (c *Cursor) Reset() {
	*c = Cursor{}
}

// Map is the ordered correspondence between written and spoken text for one
// utterance. Entries are sorted by SpokenStart and their spoken ranges
// partition the spoken text. Only the transformer in this package mutates a
// Map; everything else reads it.
type Map struct {
	entries []Entry
	sorted  bool
}

// newMap returns a map holding a single plain entry of length n.
func newMap(n int) *Map {
	return &Map{
		entries: []Entry{{SpokenLength: n, WrittenLength: n, Kind: Plain}},
		sorted:  true,
	}
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Entry returns entry i.
func (m *Map) Entry(i int) Entry { return m.entries[i] }

// Entries returns a copy of the entries in spoken order.
func (m *Map) Entries() []Entry {
	m.ensureSorted()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// WrittenToSpoken translates a written offset to its spoken offset and
// returns the index of the entry that contains it.
func (m *Map) WrittenToSpoken(written int) (spoken, index int) {
	if len(m.entries) <= 1 {
		return written, 0
	}
	m.ensureSorted()

	for i, e := range m.entries {
		if written >= e.WrittenStart && written < e.WrittenEnd() {
			return written - e.WrittenStart + e.SpokenStart, i
		}
	}

	if written < 0 {
		return 0, 0
	}
	// Past the written end: anchor on the last entry.
	last := len(m.entries) - 1
	return m.entries[last].SpokenEnd(), last
}

// SpokenToWritten translates a spoken offset to a written offset relative to
// the cursor's entry, advancing the cursor while the offset lies beyond it.
// The cursor never moves backwards.
func (m *Map) SpokenToWritten(spoken int, c *Cursor) int {
	if len(m.entries) == 0 {
		return spoken
	}
	m.ensureSorted()

	if c.Index < 0 {
		c.Index = 0
	}
	for c.Index+1 < len(m.entries) && spoken > m.entries[c.Index].SpokenEnd()-1 {
		c.Index++
	}
	if c.Index >= len(m.entries) {
		c.Index = len(m.entries) - 1
	}

	e := m.entries[c.Index]
	return e.WrittenStart + spoken - e.SpokenStart
}

// Highlight returns the written selection for an engine progress report of
// count bytes at the given spoken offset. Substituted words always select
// their full written text; phoneme markup selects nothing.
func (m *Map) Highlight(spoken, count int, c *Cursor) (start, length int) {
	start = m.SpokenToWritten(spoken, c)
	if len(m.entries) == 0 {
		return start, count
	}

	e := m.entries[c.Index]
	switch e.Kind {
	case Spelling, Phoneme:
		return e.WrittenStart, e.WrittenLength
	case PhonemeOverhead:
		return e.WrittenStart, 0
	default:
		return start, count
	}
}

// replace swaps entry i for parts, dropping empty ones. The map is marked
// unsorted until the next sort.
func (m *Map) replace(i int, parts ...Entry) {
	kept := make([]Entry, 0, len(parts))
	for _, p := range parts {
		if !p.empty() {
			kept = append(kept, p)
		}
	}

	entries := make([]Entry, 0, len(m.entries)-1+len(kept))
	entries = append(entries, m.entries[:i]...)
	entries = append(entries, kept...)
	entries = append(entries, m.entries[i+1:]...)
	m.entries = entries
	m.sorted = false
}

// shiftAfter moves the spoken start of every entry after i by delta.
func (m *Map) shiftAfter(i, delta int) {
	if delta == 0 {
		return
	}
	for j := i + 1; j < len(m.entries); j++ {
		m.entries[j].SpokenStart += delta
	}
}

// sort orders the entries by SpokenStart.
func (m *Map) sort() {
	sort.SliceStable(m.entries, func(a, b int) bool {
		return m.entries[a].SpokenStart < m.entries[b].SpokenStart
	})
	m.sorted = true
}

func (m *Map) ensureSorted() {
	if !m.sorted {
		m.sort()
	}
}
