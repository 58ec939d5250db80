package pronounce

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrMalformedRule is returned for a rule with missing or invalid fields.
	ErrMalformedRule = errors.New("malformed pronunciation rule")

	// ErrOverlap marks a match that would span text already substituted.
	ErrOverlap = errors.New("substitution overlaps an earlier substitution")
)

// RuleKind selects how a rule rewrites matched text.
type RuleKind int

const (
	// SpellingRule replaces the written text with a respelling.
	SpellingRule RuleKind = iota
	// PhonemeRule wraps the written text in a phoneme element.
	PhonemeRule
)

// String returns the string representation of the rule kind.
func (k RuleKind) String() string {
	switch k {
	case SpellingRule:
		return "spelling"
	case PhonemeRule:
		return "phoneme"
	default:
		return "unknown"
	}
}

// Rule is a single pronunciation substitution.
type Rule struct {
	Written       string   // text to find
	Pronounced    string   // respelling, or phoneme string for PhonemeRule
	Kind          RuleKind // how to substitute
	Alphabet      string   // phoneme alphabet, PhonemeRule only
	CaseSensitive bool     // match case exactly
	WholeWord     bool     // only match on word boundaries
}

// Validate checks the rule for missing or unusable fields.
func (r Rule) Validate() error {
	if r.Written == "" {
		return fmt.Errorf("%w: empty written text", ErrMalformedRule)
	}
	if !utf8.ValidString(r.Written) || !utf8.ValidString(r.Pronounced) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrMalformedRule, r.Written)
	}

	switch r.Kind {
	case SpellingRule:
	case PhonemeRule:
		if r.Alphabet == "" {
			return fmt.Errorf("%w: phoneme rule %q has no alphabet", ErrMalformedRule, r.Written)
		}
		if r.Pronounced == "" {
			return fmt.Errorf("%w: phoneme rule %q has no pronunciation", ErrMalformedRule, r.Written)
		}
		// These would break the attribute values of the phoneme element.
		if strings.ContainsAny(r.Alphabet+r.Pronounced, `"<>&`) {
			return fmt.Errorf("%w: phoneme rule %q contains markup characters", ErrMalformedRule, r.Written)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrMalformedRule, r.Kind)
	}

	return nil
}

// matcher finds literal occurrences of a rule's written text.
type matcher struct {
	re        *regexp.Regexp
	wholeWord bool
}

func newMatcher(r Rule) (*matcher, error) {
	pattern := regexp.QuoteMeta(r.Written)
	if !r.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRule, err)
	}
	return &matcher{re: re, wholeWord: r.WholeWord}, nil
}

// FindAll returns the [start, end) byte ranges of every non-overlapping match
// in s, left to right.
func (m *matcher) FindAll(s string) [][2]int {
	var matches [][2]int

	pos := 0
	for pos <= len(s) {
		loc := m.re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]

		if !m.wholeWord || (isBoundary(s, start) && isBoundary(s, end)) {
			matches = append(matches, [2]int{start, end})
			if end > start {
				pos = end
				continue
			}
		}

		// Retry one rune later so a candidate starting inside this one is
		// still considered.
		_, size := utf8.DecodeRuneInString(s[start:])
		if size == 0 {
			break
		}
		pos = start + size
	}

	return matches
}

// isBoundary reports whether a word boundary lies at byte offset i, i.e. one
// side is a word character and the other is not.
func isBoundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) ||
		unicode.Is(unicode.Nd, r) ||
		unicode.Is(unicode.Pc, r) ||
		unicode.Is(unicode.Mn, r)
}
