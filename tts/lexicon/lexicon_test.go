package lexicon_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgnsrekt/lostvoice/tts"
	"github.com/dgnsrekt/lostvoice/tts/lexicon"
	"github.com/dgnsrekt/lostvoice/tts/pronounce"
)

const settingsXML = `<?xml version="1.0" encoding="utf-8"?>
<HeyILostMyVoiceSettings>
  <Settings/>
  <Shortcuts>
    <Shortcut ShortcutText="brb" ReplacementText="be right back"/>
    <Shortcut ShortcutText="" ReplacementText="nothing"/>
    <Shortcut ShortcutText="ty" ReplacementText="thank you"/>
  </Shortcuts>
  <Pronunciations>
    <Pronunciation WrittenText="Sequim" PronouncedText="Skwim" Type="Spelling" CaseSensitive="false" WholeWord="True"/>
    <Pronunciation WrittenText="llama" PronouncedText="J AA M AX" Type="x-microsoft-ups" CaseSensitive="TRUE" WholeWord="false"/>
    <Pronunciation WrittenText="" PronouncedText="empty" Type="Spelling" CaseSensitive="false" WholeWord="false"/>
    <Pronunciation WrittenText="notype" PronouncedText="x"/>
  </Pronunciations>
</HeyILostMyVoiceSettings>
`

const settingsYAML = `pronunciations:
  - written: Sequim
    pronounced: Skwim
    type: spelling
    whole_word: true
  - written: llama
    pronounced: J AA M AX
    type: x-microsoft-ups
    case_sensitive: true
  - written: bad
    pronounced: 'x"y'
    type: ipa
shortcuts:
  - shortcut: brb
    replacement: be right back
  - shortcut: ty
    replacement: thank you
`

var wantRules = []pronounce.Rule{
	{Written: "Sequim", Pronounced: "Skwim", Kind: pronounce.SpellingRule, WholeWord: true},
	{Written: "llama", Pronounced: "J AA M AX", Kind: pronounce.PhonemeRule, Alphabet: "x-microsoft-ups", CaseSensitive: true},
}

func checkRules(t *testing.T, got []pronounce.Rule) {
	t.Helper()
	if len(got) != len(wantRules) {
		t.Fatalf("got %d rules %+v, want %d", len(got), got, len(wantRules))
	}
	for i := range wantRules {
		if got[i] != wantRules[i] {
			t.Errorf("rule %d = %+v, want %+v", i, got[i], wantRules[i])
		}
	}
}

func TestParseXML(t *testing.T) {
	l, err := lexicon.ParseXML(strings.NewReader(settingsXML))
	if err != nil {
		t.Fatalf("ParseXML: %v", err)
	}

	checkRules(t, l.Rules)

	if len(l.Shortcuts) != 2 {
		t.Fatalf("got %d shortcuts, want 2", len(l.Shortcuts))
	}
	// Two bad pronunciations and one empty shortcut.
	if len(l.Skipped) != 3 {
		t.Errorf("got %d skipped entries %v, want 3", len(l.Skipped), l.Skipped)
	}
	for _, err := range l.Skipped[:2] {
		if !errors.Is(err, pronounce.ErrMalformedRule) {
			t.Errorf("skipped error %v is not ErrMalformedRule", err)
		}
	}
}

func TestParseYAML(t *testing.T) {
	l, err := lexicon.ParseYAML([]byte(settingsYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}

	checkRules(t, l.Rules)

	if len(l.Skipped) != 1 {
		t.Errorf("got %d skipped entries, want 1", len(l.Skipped))
	}
	if got, ok := l.Lookup("ty"); !ok || got != "thank you" {
		t.Errorf("Lookup(ty) = %q, %v", got, ok)
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	_, err := lexicon.ParseYAML([]byte("pronunciations: [unclosed"))
	if !errors.Is(err, tts.ErrLexiconParse) {
		t.Errorf("expected ErrLexiconParse, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	l := &lexicon.Lexicon{Shortcuts: []lexicon.Shortcut{
		{Text: "brb", Replacement: "be right back"},
		{Text: "brb", Replacement: "shadowed"},
		{Text: "Dr", Replacement: "Doctor"},
	}}

	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"brb", "be right back", true},
		{"Dr", "Doctor", true},
		{"dr", "", false},
		{"", "", false},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		got, ok := l.Lookup(tt.text)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}

	xmlPath := write("settings.xml", settingsXML)
	yamlPath := write("rules.yml", settingsYAML)
	txtPath := write("rules.txt", "Sequim=Skwim")

	t.Run("xml", func(t *testing.T) {
		l, err := lexicon.Load(xmlPath)
		if err != nil {
			t.Fatal(err)
		}
		checkRules(t, l.Rules)
	})

	t.Run("yaml", func(t *testing.T) {
		l, err := lexicon.Load(yamlPath)
		if err != nil {
			t.Fatal(err)
		}
		checkRules(t, l.Rules)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := lexicon.Load(txtPath)
		if !errors.Is(err, tts.ErrLexiconFormat) {
			t.Errorf("expected ErrLexiconFormat, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := lexicon.Load(filepath.Join(dir, "nope.xml"))
		if !errors.Is(err, tts.ErrResourceNotFound) {
			t.Errorf("expected ErrResourceNotFound, got %v", err)
		}
	})

	t.Run("merge", func(t *testing.T) {
		l, err := lexicon.LoadAll(xmlPath, "", yamlPath)
		if err != nil {
			t.Fatal(err)
		}
		if len(l.Rules) != 4 {
			t.Errorf("got %d rules, want 4", len(l.Rules))
		}
		if len(l.Shortcuts) != 4 {
			t.Errorf("got %d shortcuts, want 4", len(l.Shortcuts))
		}
	})
}

func TestWriteYAMLReadsBack(t *testing.T) {
	l, err := lexicon.ParseXML(strings.NewReader(settingsXML))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := l.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	if !strings.Contains(buf.String(), "type: x-microsoft-ups") {
		t.Errorf("phoneme alphabet missing from output:\n%s", buf.String())
	}

	back, err := lexicon.ParseYAML(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	checkRules(t, back.Rules)
	if len(back.Shortcuts) != len(l.Shortcuts) {
		t.Errorf("got %d shortcuts, want %d", len(back.Shortcuts), len(l.Shortcuts))
	}
}
