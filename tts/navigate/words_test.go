package navigate

import "testing"

func TestIsSpokenChar(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'Z', true},
		{'7', true},
		{'é', true},
		{'$', true},
		{'\'', true},
		{'-', true},
		{'_', true},
		{' ', false},
		{'.', false},
		{',', false},
		{'\n', false},
		{'<', false},
	}

	for _, tt := range tests {
		if got := IsSpokenChar(tt.r); got != tt.want {
			t.Errorf("IsSpokenChar(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestWordScanning(t *testing.T) {
	const s = "Hi,   there. Don't stop!"

	tests := []struct {
		name string
		fn   func(string, int) int
		in   int
		want int
	}{
		{"next word from punctuation", NextWordStart, 2, 6},
		{"next word inside word", NextWordStart, 7, 7},
		{"next word at end", NextWordStart, 23, 24},
		{"word end", WordEnd, 6, 11},
		{"word end with apostrophe", WordEnd, 13, 18},
		{"sentence end", SentenceEnd, 0, 11},
		{"sentence end at ender", SentenceEnd, 11, 11},
		{"sentence end exclamation", SentenceEnd, 12, 23},
		{"sentence end past end", SentenceEnd, 30, 24},
		{"before word start", beforeWordStart, 9, 5},
		{"before word start at text start", beforeWordStart, 1, 0},
		{"last word end", lastWordEnd, 5, 1},
		{"last word end on word", lastWordEnd, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(s, tt.in); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSentenceEndWithoutEnder(t *testing.T) {
	if got := SentenceEnd("no enders here", 3); got != 14 {
		t.Errorf("SentenceEnd = %d, want 14", got)
	}
}

func TestWordScanningMultibyte(t *testing.T) {
	const s = "über · café"

	if got := WordEnd(s, 0); got != len("über") {
		t.Errorf("WordEnd = %d, want %d", got, len("über"))
	}
	start := len("über · ")
	if got := NextWordStart(s, len("über")); got != start {
		t.Errorf("NextWordStart = %d, want %d", got, start)
	}
	if got := beforeWordStart(s, len(s)-len("é")); got != start-1 {
		t.Errorf("beforeWordStart = %d, want %d", got, start-1)
	}
}

func TestPrevWordStart(t *testing.T) {
	const s = "one two, three"

	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{2, 0},
		{4, 0},
		{6, 4},
		{9, 4},
		{12, 9},
		{14, 9},
		{40, 9},
	}

	for _, tt := range tests {
		if got := PrevWordStart(s, tt.in); got != tt.want {
			t.Errorf("PrevWordStart(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
