package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dgnsrekt/lostvoice/tts"
	"github.com/spf13/cobra"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the installed voices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadSpeechConfig()
		if err != nil {
			return err
		}
		engine, err := newEngine(cfg)
		if err != nil {
			return err
		}
		defer engine.Close()

		return writeVoices(cmd.OutOrStdout(), engine.Voices(), engine.Voice())
	},
}

func writeVoices(w io.Writer, voices []tts.Voice, active tts.Voice) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorder).
		Headers("", "ID", "NAME", "LANGUAGE", "GENDER")
	for _, v := range voices {
		mark := ""
		if v.ID == active.ID {
			mark = "*"
		}
		t.Row(mark, v.ID, v.Name, v.Language, v.Gender)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
