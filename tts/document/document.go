// Package document picks the written text to speak out of an editor buffer:
// the word or paragraph just typed, or the markdown block under the caret.
package document

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// WordBefore returns the start of the word ending at caret and the word
// itself. Words are delimited by spaces and newlines only, so trailing
// punctuation stays with the word.
func WordBefore(s string, caret int) (int, string) {
	caret = clamp(caret, len(s))
	start := strings.LastIndexAny(s[:caret], " \n") + 1
	return start, s[start:caret]
}

// ParagraphBefore returns the start of the line ending at caret and the line
// itself.
func ParagraphBefore(s string, caret int) (int, string) {
	caret = clamp(caret, len(s))
	start := strings.LastIndexByte(s[:caret], '\n') + 1
	return start, s[start:caret]
}

func clamp(i, n int) int {
	return min(max(i, 0), n)
}

// BlockKind is the kind of a markdown text block.
type BlockKind int

const (
	Paragraph BlockKind = iota
	Heading
)

// String returns the string representation of the block kind.
func (k BlockKind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	default:
		return "unknown"
	}
}

// Block is a run of speakable markdown text, as byte offsets into the
// source. Heading markers and list bullets are outside the range; inline
// markup inside it is kept.
type Block struct {
	Kind  BlockKind
	Level int // heading level
	Start int
	End   int
}

// Text returns the block's text within src.
func (b Block) Text(src string) string {
	return src[b.Start:b.End]
}

// Blocks returns the paragraphs and headings of a markdown source in
// document order. Code blocks, HTML and thematic breaks are left out.
func Blocks(src string) []Block {
	source := []byte(src)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var b Block
		switch n := n.(type) {
		case *ast.Heading:
			b = Block{Kind: Heading, Level: n.Level}
		case *ast.Paragraph, *ast.TextBlock:
			b = Block{Kind: Paragraph}
		default:
			return ast.WalkContinue, nil
		}

		lines := n.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		b.Start = lines.At(0).Start
		b.End = lines.At(lines.Len() - 1).Stop
		for b.End > b.Start && isSpace(source[b.End-1]) {
			b.End--
		}
		if b.End > b.Start {
			blocks = append(blocks, b)
		}
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

// BlockAt returns the index of the block containing offset, or of the first
// block after it. It returns -1 when offset is past the last block.
func BlockAt(blocks []Block, offset int) int {
	for i, b := range blocks {
		if offset < b.End {
			return i
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
