package navigate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// sentenceEnders end a sentence for skip-ahead purposes.
const sentenceEnders = ".?!:"

// IsSpokenChar reports whether r belongs to a spoken word.
func IsSpokenChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("$'-_", r)
}

func spokenAt(s string, i int) bool {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return IsSpokenChar(r)
}

func prevRune(s string, i int) int {
	_, size := utf8.DecodeLastRuneInString(s[:i])
	return i - size
}

func nextRune(s string, i int) int {
	_, size := utf8.DecodeRuneInString(s[i:])
	return i + size
}

// NextWordStart returns the offset of the first spoken character at or
// after i, or len(s) if there is none.
func NextWordStart(s string, i int) int {
	for i < len(s) && !spokenAt(s, i) {
		i = nextRune(s, i)
	}
	return i
}

// WordEnd returns the offset just past the word at i.
func WordEnd(s string, i int) int {
	for i < len(s) && spokenAt(s, i) {
		i = nextRune(s, i)
	}
	return i
}

// SentenceEnd returns the offset of the next sentence-ending punctuation
// at or after i, or len(s).
func SentenceEnd(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	if j := strings.IndexAny(s[i:], sentenceEnders); j >= 0 {
		return i + j
	}
	return len(s)
}

// PrevWordStart returns the start of the word before i. From inside a
// word that is the start of the same word.
func PrevWordStart(s string, i int) int {
	i = min(i, len(s))
	if i <= 0 {
		return 0
	}
	i = prevRune(s, i)
	i = lastWordEnd(s, i)
	i = beforeWordStart(s, i)
	return NextWordStart(s, i)
}

// beforeWordStart walks back from inside a word to the character before
// it. It stops at 0.
func beforeWordStart(s string, i int) int {
	for i > 0 && spokenAt(s, i) {
		i = prevRune(s, i)
	}
	return i
}

// lastWordEnd walks back over non-spoken characters to the last character
// of the previous word. It stops at 0.
func lastWordEnd(s string, i int) int {
	for i > 0 && !spokenAt(s, i) {
		i = prevRune(s, i)
	}
	return i
}
