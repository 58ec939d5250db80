// Package ssml builds and cleans the SSML markup handed to a speech engine.
//
// Everything here preserves string length where the position map depends on
// it: Sanitize swaps bytes in place, and the envelope has a constant length so
// that engine progress offsets can be shifted back into payload coordinates.
package ssml

import (
	"fmt"
	"strings"
)

const (
	// PhonemeTag is the element name used for phoneme substitutions.
	PhonemeTag = "phoneme"

	// PhonemeClose closes a phoneme element.
	PhonemeClose = "</" + PhonemeTag + ">"
)

// recognizedTags are the tag names Sanitize leaves intact after a '<'.
var recognizedTags = []string{PhonemeTag, "/" + PhonemeTag}

// PhonemeOpen returns the opening phoneme element for the given alphabet and
// pronunciation.
func PhonemeOpen(alphabet, ph string) string {
	return fmt.Sprintf(`<%s alphabet="%s" ph="%s">`, PhonemeTag, alphabet, ph)
}

// Envelope is the fixed prefix and suffix wrapped around every payload.
type Envelope struct {
	Opening string
	Closing string
}

// DefaultEnvelope is the SSML 1.0 document wrapper for US English.
var DefaultEnvelope = NewEnvelope("en-US")

// NewEnvelope returns an SSML 1.0 envelope for the given language.
func NewEnvelope(lang string) Envelope {
	return Envelope{
		Opening: `<?xml version="1.0"?><speak version="1.0" ` +
			`xmlns="http://www.w3.org/2001/10/synthesis" xml:lang="` + lang + `">`,
		Closing: "</speak>",
	}
}

// Wrap encloses payload in the envelope.
func (e Envelope) Wrap(payload string) string {
	var b strings.Builder
	b.Grow(len(e.Opening) + len(payload) + len(e.Closing))
	b.WriteString(e.Opening)
	b.WriteString(payload)
	b.WriteString(e.Closing)
	return b.String()
}

// OpeningLength is the number of bytes that precede the payload.
func (e Envelope) OpeningLength() int {
	return len(e.Opening)
}
