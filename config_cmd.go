package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# log debug output
debug: false

speech:
  # speech engine: mock
  engine: "mock"
  # SSML document language
  language: "en-US"

  # voice name or id, and the voice used to echo typed words
  voice: ""
  echo_voice: ""
  # rate from -10 (slowest) to 10 (fastest)
  rate: 0
  # volume from 0 to 100
  volume: 100

  # pronunciation rules and shortcuts (.xml or .yaml)
  lexicon: ""
  # expand shortcuts in text before reading it
  shortcuts: true

  # speak each word or paragraph as it is finished
  echo_words: false
  echo_paragraphs: false

  # highlight the word being spoken
  highlight_enabled: true
  # black, red, green, yellow, blue, magenta, cyan, white or none
  highlight_color: "yellow"

  # paced engine that speaks nothing
  mock:
    words_per_minute: 180
    start_delay: "50ms"
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the lostvoice config file",
	Long:    paragraph(fmt.Sprintf("\n%s the lostvoice config file. EDITOR determines which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("lostvoice config\nlostvoice config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("lostvoice", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
