package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dgnsrekt/lostvoice/tts/pronounce"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	showMap     bool
	showStats   bool
	raw         bool
	reportWidth uint

	transformCmd = &cobra.Command{
		Use:   "transform [FILE|DIR|-]",
		Short: "Show what would be spoken for a document",
		Long: paragraph(fmt.Sprintf("\n%s the pronunciation rules to a document and show the spoken text, "+
			"any rules that stopped on overlapping matches and, optionally, the position map.", keyword("Apply"))),
		Example: paragraph("lostvoice transform notes.md --lexicon names.xml\nlostvoice transform notes.md --map --stats"),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSpeechConfig()
			if err != nil {
				return err
			}
			content, _, _, err := readInput(args, fromClipboard)
			if err != nil {
				return err
			}
			lex, err := loadLexicon(cfg)
			if err != nil {
				return err
			}

			tr := newTransformer(lex)
			u := tr.Transform(content)
			w := cmd.OutOrStdout()

			if raw {
				_, err := fmt.Fprintln(w, u.Spoken)
				return err
			}
			return writeReport(w, u, tr)
		},
	}
)

// reportMarkdown describes a transformation by tr as markdown.
func reportMarkdown(u *pronounce.Utterance, tr *pronounce.Transformer, stats bool) string {
	var b strings.Builder

	b.WriteString("# Spoken text\n\n```xml\n")
	b.WriteString(u.Spoken)
	if !strings.HasSuffix(u.Spoken, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")

	if len(u.Conflicts) > 0 {
		b.WriteString("\n## Conflicts\n\n")
		for _, c := range u.Conflicts {
			fmt.Fprintf(&b, "- `%s` at offset %d: %d matches skipped\n", c.Rule.Written, c.WrittenStart, c.Skipped)
		}
	}

	if skipped := tr.Malformed(); len(skipped) > 0 {
		b.WriteString("\n## Skipped rules\n\n")
		for _, err := range skipped {
			fmt.Fprintf(&b, "- %s\n", err)
		}
	}

	if stats {
		substituted := 0
		for _, e := range u.Map.Entries() {
			if e.Kind == pronounce.Spelling || e.Kind == pronounce.Phoneme {
				substituted++
			}
		}
		b.WriteString("\n## Statistics\n\n")
		fmt.Fprintf(&b, "- Written: %s\n", humanize.Bytes(uint64(len(u.Written))))
		fmt.Fprintf(&b, "- Spoken: %s\n", humanize.Bytes(uint64(len(u.Spoken))))
		fmt.Fprintf(&b, "- Rules: %s\n", humanize.Comma(int64(tr.Rules())))
		fmt.Fprintf(&b, "- Substitutions: %s\n", humanize.Comma(int64(substituted)))
		fmt.Fprintf(&b, "- Map entries: %s\n", humanize.Comma(int64(u.Map.Len())))
	}

	return b.String()
}

// mapTable renders the position map of u as a table.
func mapTable(u *pronounce.Utterance) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("#", "KIND", "SPOKEN", "WRITTEN", "TEXT")

	for i, e := range u.Map.Entries() {
		t.Row(
			strconv.Itoa(i),
			e.Kind.String(),
			fmt.Sprintf("%d+%d", e.SpokenStart, e.SpokenLength),
			fmt.Sprintf("%d+%d", e.WrittenStart, e.WrittenLength),
			excerpt(u.Spoken[e.SpokenStart:e.SpokenEnd()], 32),
		)
	}
	return t.Render()
}

// excerpt shortens s to n runes on a single line.
func excerpt(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", "↵")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func writeReport(w io.Writer, u *pronounce.Utterance, tr *pronounce.Transformer) error {
	style := styles.NoTTYStyle
	if term.IsTerminal(int(os.Stdout.Fd())) {
		style = styles.LightStyle
		if termenv.HasDarkBackground() {
			style = styles.DarkStyle
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(int(reportWidth)), //nolint:gosec
	)
	if err != nil {
		return fmt.Errorf("unable to create renderer: %w", err)
	}

	out, err := r.Render(reportMarkdown(u, tr, showStats))
	if err != nil {
		return fmt.Errorf("unable to render markdown: %w", err)
	}
	if showMap {
		out += mapTable(u) + "\n"
	}

	if _, err := fmt.Fprint(w, out); err != nil {
		return fmt.Errorf("unable to write to writer: %w", err)
	}
	return nil
}

func init() {
	transformCmd.Flags().BoolVar(&showMap, "map", false, "show the position map")
	transformCmd.Flags().BoolVar(&showStats, "stats", false, "show statistics")
	transformCmd.Flags().BoolVar(&raw, "raw", false, "print only the spoken text")
	transformCmd.Flags().BoolVarP(&fromClipboard, "clipboard", "c", false, "read the clipboard")
	transformCmd.Flags().UintVarP(&reportWidth, "width", "w", 80, "word-wrap at width (set to 0 to disable)")
}
