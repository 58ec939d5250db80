// Package lexicon loads pronunciation rules and typing shortcuts from a
// settings file.
//
// Two formats are read. The XML format keeps every field in attributes:
//
//	<HeyILostMyVoiceSettings>
//	  <Pronunciations>
//	    <Pronunciation WrittenText="Sequim" PronouncedText="Skwim" Type="Spelling"
//	                   CaseSensitive="false" WholeWord="true"/>
//	    <Pronunciation WrittenText="llama" PronouncedText="J AA M AX" Type="x-microsoft-ups"
//	                   CaseSensitive="false" WholeWord="true"/>
//	  </Pronunciations>
//	  <Shortcuts>
//	    <Shortcut ShortcutText="brb" ReplacementText="be right back"/>
//	  </Shortcuts>
//	</HeyILostMyVoiceSettings>
//
// The YAML format carries the same fields under "pronunciations" and
// "shortcuts". A Type of "Spelling" makes a respelling rule; any other type
// names the phoneme alphabet.
package lexicon

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/dgnsrekt/lostvoice/tts"
	"github.com/dgnsrekt/lostvoice/tts/pronounce"
	"gopkg.in/yaml.v3"
)

// SpellingType is the Type value of a respelling rule.
const SpellingType = "Spelling"

// Shortcut is a typed abbreviation and the text it expands to.
type Shortcut struct {
	Text        string `yaml:"shortcut"`
	Replacement string `yaml:"replacement"`
}

// Lexicon is the content of one or more settings files.
type Lexicon struct {
	Rules     []pronounce.Rule
	Shortcuts []Shortcut

	// Skipped holds one error per malformed entry that was left out.
	Skipped []error
}

// Load reads a lexicon file, choosing the format by extension.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", tts.ErrResourceNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", tts.ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return ParseXML(bytes.NewReader(data))
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", tts.ErrLexiconFormat, path)
	}
}

// LoadAll loads and merges every path in order. Empty paths are ignored.
func LoadAll(paths ...string) (*Lexicon, error) {
	merged := &Lexicon{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		l, err := Load(p)
		if err != nil {
			return nil, err
		}
		merged.Merge(l)
	}
	return merged, nil
}

// ParseXML reads the XML settings format.
func ParseXML(r io.Reader) (*Lexicon, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tts.ErrLexiconParse, err)
	}

	l := &Lexicon{}

	nodes, err := xmlquery.QueryAll(doc, "//Pronunciations/*")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tts.ErrLexiconParse, err)
	}
	for i, n := range nodes {
		l.addRule(i, entry{
			Written:       n.SelectAttr("WrittenText"),
			Pronounced:    n.SelectAttr("PronouncedText"),
			Type:          n.SelectAttr("Type"),
			CaseSensitive: isTrue(n.SelectAttr("CaseSensitive")),
			WholeWord:     isTrue(n.SelectAttr("WholeWord")),
		})
	}

	nodes, err = xmlquery.QueryAll(doc, "//Shortcuts/Shortcut")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tts.ErrLexiconParse, err)
	}
	for i, n := range nodes {
		l.addShortcut(i, Shortcut{
			Text:        n.SelectAttr("ShortcutText"),
			Replacement: n.SelectAttr("ReplacementText"),
		})
	}

	return l, nil
}

// entry is one pronunciation as stored in either format.
type entry struct {
	Written       string `yaml:"written"`
	Pronounced    string `yaml:"pronounced"`
	Type          string `yaml:"type"`
	CaseSensitive bool   `yaml:"case_sensitive"`
	WholeWord     bool   `yaml:"whole_word"`
}

type document struct {
	Pronunciations []entry    `yaml:"pronunciations"`
	Shortcuts      []Shortcut `yaml:"shortcuts"`
}

// ParseYAML reads the YAML settings format.
func ParseYAML(data []byte) (*Lexicon, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", tts.ErrLexiconParse, err)
	}

	l := &Lexicon{}
	for i, e := range doc.Pronunciations {
		l.addRule(i, e)
	}
	for i, s := range doc.Shortcuts {
		l.addShortcut(i, s)
	}
	return l, nil
}

// WriteYAML writes the lexicon in the YAML format.
func (l *Lexicon) WriteYAML(w io.Writer) error {
	doc := document{Shortcuts: l.Shortcuts}
	for _, r := range l.Rules {
		e := entry{
			Written:       r.Written,
			Pronounced:    r.Pronounced,
			Type:          SpellingType,
			CaseSensitive: r.CaseSensitive,
			WholeWord:     r.WholeWord,
		}
		if r.Kind == pronounce.PhonemeRule {
			e.Type = r.Alphabet
		}
		doc.Pronunciations = append(doc.Pronunciations, e)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding lexicon: %w", err)
	}
	return enc.Close()
}

// Merge appends other's rules and shortcuts after l's own.
func (l *Lexicon) Merge(other *Lexicon) {
	l.Rules = append(l.Rules, other.Rules...)
	l.Shortcuts = append(l.Shortcuts, other.Shortcuts...)
	l.Skipped = append(l.Skipped, other.Skipped...)
}

// Lookup returns the replacement for a shortcut. Matching is exact and the
// first definition wins.
func (l *Lexicon) Lookup(text string) (string, bool) {
	for _, s := range l.Shortcuts {
		if s.Text == text {
			return s.Replacement, true
		}
	}
	return "", false
}

func (l *Lexicon) addRule(i int, e entry) {
	if e.Type == "" {
		l.Skipped = append(l.Skipped, fmt.Errorf("pronunciation %d: %w: missing type", i, pronounce.ErrMalformedRule))
		return
	}

	r := pronounce.Rule{
		Written:       e.Written,
		Pronounced:    e.Pronounced,
		Kind:          pronounce.SpellingRule,
		CaseSensitive: e.CaseSensitive,
		WholeWord:     e.WholeWord,
	}
	if !strings.EqualFold(e.Type, SpellingType) {
		r.Kind = pronounce.PhonemeRule
		r.Alphabet = e.Type
	}

	if err := r.Validate(); err != nil {
		l.Skipped = append(l.Skipped, fmt.Errorf("pronunciation %d: %w", i, err))
		return
	}
	l.Rules = append(l.Rules, r)
}

func (l *Lexicon) addShortcut(i int, s Shortcut) {
	if s.Text == "" {
		l.Skipped = append(l.Skipped, fmt.Errorf("shortcut %d: %w: empty shortcut text", i, tts.ErrLexiconFormat))
		return
	}
	l.Shortcuts = append(l.Shortcuts, s)
}

func isTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
