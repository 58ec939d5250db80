package tts

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// voiceSource adapts a voice list to fuzzy.Source.
type voiceSource []Voice

func (v voiceSource) String(i int) string { return v[i].Name }
func (v voiceSource) Len() int            { return len(v) }

// FindVoice picks the voice best matching query. An exact, case-insensitive
// name or ID match wins; otherwise the best fuzzy match on the name is used.
func FindVoice(voices []Voice, query string) (Voice, error) {
	if query == "" {
		return Voice{}, fmt.Errorf("%w: empty voice name", ErrVoiceNotFound)
	}

	for _, v := range voices {
		if strings.EqualFold(v.Name, query) || strings.EqualFold(v.ID, query) {
			return v, nil
		}
	}

	matches := fuzzy.FindFrom(query, voiceSource(voices))
	if len(matches) == 0 {
		return Voice{}, fmt.Errorf("%w: %q", ErrVoiceNotFound, query)
	}
	return voices[matches[0].Index], nil
}
