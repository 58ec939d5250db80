package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dgnsrekt/lostvoice/tts/lexicon"
	"github.com/dgnsrekt/lostvoice/tts/pronounce"
	"github.com/spf13/cobra"
)

var (
	exportYAML bool

	rulesCmd = &cobra.Command{
		Use:   "rules",
		Short: "List the pronunciation rules and shortcuts",
		Long: paragraph(fmt.Sprintf("\n%s the rules and shortcuts of the configured lexicon. "+
			"With --yaml the lexicon is written in the YAML format, which converts XML settings files.", keyword("List"))),
		Example: paragraph("lostvoice rules --lexicon settings.xml\nlostvoice rules --lexicon settings.xml --yaml > rules.yml"),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSpeechConfig()
			if err != nil {
				return err
			}
			lex, err := loadLexicon(cfg)
			if err != nil {
				return err
			}

			if exportYAML {
				return lex.WriteYAML(cmd.OutOrStdout())
			}
			return writeRules(cmd.OutOrStdout(), lex)
		},
	}
)

var tableBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

func writeRules(w io.Writer, lex *lexicon.Lexicon) error {
	if len(lex.Rules) == 0 && len(lex.Shortcuts) == 0 {
		_, err := fmt.Fprintln(w, "No rules or shortcuts.")
		return err
	}

	if len(lex.Rules) > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(tableBorder).
			Headers("WRITTEN", "PRONOUNCED", "TYPE", "CASE", "WHOLE WORD")
		for _, r := range lex.Rules {
			typ := lexicon.SpellingType
			if r.Kind == pronounce.PhonemeRule {
				typ = r.Alphabet
			}
			t.Row(r.Written, r.Pronounced, typ, strconv.FormatBool(r.CaseSensitive), strconv.FormatBool(r.WholeWord))
		}
		if _, err := fmt.Fprintln(w, t.Render()); err != nil {
			return err
		}
	}

	if len(lex.Shortcuts) > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(tableBorder).
			Headers("SHORTCUT", "REPLACEMENT")
		for _, s := range lex.Shortcuts {
			t.Row(s.Text, s.Replacement)
		}
		if _, err := fmt.Fprintln(w, t.Render()); err != nil {
			return err
		}
	}

	if n := len(lex.Skipped); n > 0 {
		if _, err := fmt.Fprintf(w, "%d malformed entries skipped.\n", n); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rulesCmd.Flags().BoolVar(&exportYAML, "yaml", false, "write the lexicon as YAML")
}
