package ssml

import (
	"bytes"
	"strings"
)

// Sanitize blanks every '<', '>' and '&' that is not part of a recognized
// phoneme tag. Each offending byte is replaced by a single space, so the
// result always has the same length as s.
func Sanitize(s string) string {
	b := []byte(s)
	pos := 0

	for pos < len(b) {
		open := indexFrom(b, '<', pos)
		if open < 0 {
			replaceRange(b, '>', pos, len(b))
			replaceRange(b, '&', pos, len(b))
			break
		}

		replaceRange(b, '>', pos, open)
		replaceRange(b, '&', pos, open)

		if !tagAt(b, open+1) {
			// A stray bracket, not a tag we produce.
			b[open] = ' '
			pos = open
			continue
		}

		end := indexFrom(b, '>', open)
		if end < 0 {
			// Unterminated tag: drop the opener and everything that could
			// start markup after it.
			b[open] = ' '
			replaceRange(b, '<', open, len(b))
			replaceRange(b, '&', open, len(b))
			break
		}

		replaceRange(b, '<', open+1, end)
		pos = end + 1
	}

	return string(b)
}

// tagAt reports whether a recognized tag name starts at i.
func tagAt(b []byte, i int) bool {
	for _, tag := range recognizedTags {
		if i+len(tag) <= len(b) && strings.EqualFold(string(b[i:i+len(tag)]), tag) {
			return true
		}
	}
	return false
}

func indexFrom(b []byte, c byte, from int) int {
	if from >= len(b) {
		return -1
	}
	i := bytes.IndexByte(b[from:], c)
	if i < 0 {
		return -1
	}
	return from + i
}

func replaceRange(b []byte, c byte, start, end int) {
	for i := start; i < end && i < len(b); i++ {
		if b[i] == c {
			b[i] = ' '
		}
	}
}
