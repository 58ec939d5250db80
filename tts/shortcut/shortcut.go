// Package shortcut expands typed abbreviations in place.
package shortcut

import (
	"slices"
	"strings"

	"github.com/dgnsrekt/lostvoice/tts/document"
)

// Table looks up the replacement for a shortcut.
type Table interface {
	Lookup(text string) (string, bool)
}

// Map is a Table backed by a map.
type Map map[string]string

// Lookup implements Table.
func (m Map) Lookup(text string) (string, bool) {
	r, ok := m[text]
	return r, ok
}

// Expansion describes a shortcut replaced in a buffer.
type Expansion struct {
	Shortcut    string
	Replacement string
	Start       int    // offset of the replaced shortcut in the original text
	Text        string // the buffer after replacement
	Caret       int    // caret just after the replacement
}

// Expand replaces the word ending at caret with its replacement from t.
// Candidates containing a double quote are never expanded.
func Expand(s string, caret int, t Table) (Expansion, bool) {
	if t == nil {
		return Expansion{}, false
	}

	_, word := document.WordBefore(s, caret)
	candidate := strings.TrimSpace(word)
	if candidate == "" || strings.Contains(candidate, `"`) || !strings.HasSuffix(word, candidate) {
		return Expansion{}, false
	}

	replacement, ok := t.Lookup(candidate)
	if !ok {
		return Expansion{}, false
	}

	caret = min(max(caret, 0), len(s))
	start := caret - len(candidate)
	return Expansion{
		Shortcut:    candidate,
		Replacement: replacement,
		Start:       start,
		Text:        s[:start] + replacement + s[caret:],
		Caret:       start + len(replacement),
	}, true
}

// ExpandAll expands every shortcut in s as if each word had just been typed.
// Expansions are returned in text order with offsets into the original s.
func ExpandAll(s string, t Table) (string, []Expansion) {
	var done []Expansion
	for end := len(s); end > 0; {
		start, _ := document.WordBefore(s, end)
		if x, ok := Expand(s, end, t); ok {
			s = x.Text
			done = append(done, x)
		}
		end = start - 1
	}
	slices.Reverse(done)
	return s, done
}
