// Package pronounce turns written text into spoken SSML text by applying
// pronunciation rules, and keeps the position map that ties the two together.
package pronounce

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/lostvoice/tts/ssml"
)

// Conflict records a rule that stopped early because one of its matches
// overlapped text an earlier rule had already substituted.
type Conflict struct {
	Rule         Rule
	WrittenStart int // offset of the rejected match
	Skipped      int // matches of the rule that were not applied
}

// Error implements the error interface.
func (c Conflict) Error() string {
	return fmt.Sprintf("rule %q at %d: %v (%d matches skipped)",
		c.Rule.Written, c.WrittenStart, ErrOverlap, c.Skipped)
}

// Unwrap returns ErrOverlap.
func (c Conflict) Unwrap() error { return ErrOverlap }

// Utterance is the result of transforming one piece of written text.
type Utterance struct {
	Written   string
	Spoken    string // sanitized SSML payload, without the envelope
	Map       *Map
	Conflicts []Conflict
}

// compiledRule pairs a rule with its matcher.
type compiledRule struct {
	rule Rule
	m    *matcher
}

// Transformer applies an ordered rule set. Rules earlier in the set take
// priority over later ones.
type Transformer struct {
	rules     []compiledRule
	malformed []error
	logger    *log.Logger
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithLogger sets the logger used for skipped rules and conflicts.
func WithLogger(l *log.Logger) Option {
	return func(t *Transformer) {
		t.logger = l
	}
}

// NewTransformer compiles rules. Malformed rules are skipped and reported by
// Malformed; the rest keep their relative order.
func NewTransformer(rules []Rule, opts ...Option) *Transformer {
	t := &Transformer{logger: log.Default()}
	for _, opt := range opts {
		opt(t)
	}

	for i, r := range rules {
		err := r.Validate()
		var m *matcher
		if err == nil {
			m, err = newMatcher(r)
		}
		if err != nil {
			err = fmt.Errorf("rule %d: %w", i, err)
			t.malformed = append(t.malformed, err)
			t.logger.Warn("Skipping pronunciation rule", "index", i, "written", r.Written, "error", err)
			continue
		}
		t.rules = append(t.rules, compiledRule{rule: r, m: m})
	}

	return t
}

// Rules returns the number of usable rules.
func (t *Transformer) Rules() int { return len(t.rules) }

// Malformed returns the errors for rules that were skipped.
func (t *Transformer) Malformed() []error { return t.malformed }

// Transform applies every rule to written and returns the spoken text and its
// position map.
func (t *Transformer) Transform(written string) *Utterance {
	u := &Utterance{
		Written: written,
		Map:     newMap(len(written)),
	}
	spoken := written

	for _, cr := range t.rules {
		var conflict *Conflict
		spoken, conflict = apply(u.Map, written, spoken, cr)
		if conflict != nil {
			u.Conflicts = append(u.Conflicts, *conflict)
			t.logger.Debug("Pronunciation rule stopped on overlap",
				"written", cr.rule.Written, "at", conflict.WrittenStart, "skipped", conflict.Skipped)
		}
		u.Map.sort()
	}

	u.Map.sort()
	u.Spoken = ssml.Sanitize(spoken)
	return u
}

// Transform applies rules to written with a default Transformer.
func Transform(written string, rules []Rule) (string, *Map) {
	u := NewTransformer(rules).Transform(written)
	return u.Spoken, u.Map
}

// apply substitutes every match of one rule, returning the new spoken text.
// Matching always runs against the original written text. The first match
// that would overlap an earlier substitution ends the rule.
func apply(m *Map, written, spoken string, cr compiledRule) (string, *Conflict) {
	matches := cr.m.FindAll(written)

	for n, loc := range matches {
		wStart, wEnd := loc[0], loc[1]
		matched := written[wStart:wEnd]

		sStart, idx := m.WrittenToSpoken(wStart)
		host := m.entries[idx]
		if wEnd > host.WrittenEnd() || host.Kind != Plain {
			return spoken, &Conflict{Rule: cr.rule, WrittenStart: wStart, Skipped: len(matches) - n}
		}

		var open, closing, replacement string
		switch cr.rule.Kind {
		case PhonemeRule:
			open = ssml.PhonemeOpen(cr.rule.Alphabet, cr.rule.Pronounced)
			closing = ssml.PhonemeClose
			replacement = open + matched + closing
		default:
			replacement = cr.rule.Pronounced
		}

		spoken = spoken[:sStart] + replacement + spoken[sStart+len(matched):]
		delta := len(replacement) - len(matched)
		m.shiftAfter(idx, delta)

		before := Entry{
			SpokenStart:   host.SpokenStart,
			SpokenLength:  sStart - host.SpokenStart,
			WrittenStart:  host.WrittenStart,
			WrittenLength: wStart - host.WrittenStart,
			Kind:          Plain,
		}
		after := Entry{
			SpokenStart:   sStart + len(replacement),
			SpokenLength:  host.SpokenEnd() - (sStart + len(matched)),
			WrittenStart:  wEnd,
			WrittenLength: host.WrittenEnd() - wEnd,
			Kind:          Plain,
		}

		if cr.rule.Kind == PhonemeRule {
			m.replace(idx,
				before,
				Entry{SpokenStart: sStart, SpokenLength: len(open), WrittenStart: wStart, Kind: PhonemeOverhead},
				Entry{SpokenStart: sStart + len(open), SpokenLength: len(matched), WrittenStart: wStart, WrittenLength: len(matched), Kind: Phoneme},
				Entry{SpokenStart: sStart + len(open) + len(matched), SpokenLength: len(closing), WrittenStart: wEnd, Kind: PhonemeOverhead},
				after,
			)
		} else {
			m.replace(idx,
				before,
				Entry{SpokenStart: sStart, SpokenLength: len(replacement), WrittenStart: wStart, WrittenLength: len(matched), Kind: Spelling},
				after,
			)
		}
	}

	return spoken, nil
}
