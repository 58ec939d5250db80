// Package main provides the entry point for the lostvoice CLI application.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/lostvoice/tts"
	"github.com/dgnsrekt/lostvoice/tts/engines"
	"github.com/dgnsrekt/lostvoice/tts/lexicon"
	"github.com/dgnsrekt/lostvoice/tts/pronounce"
	"github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "lostvoice",
		Short: "Read text aloud with your own pronunciations",
		Long: paragraph(
			fmt.Sprintf("\nRead text aloud, %s, and follow along word by word.", keyword("pronounced your way")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("config") {
				viper.SetConfigFile(configFile)
				if err := viper.ReadInConfig(); err != nil {
					return fmt.Errorf("unable to read config file: %w", err)
				}
			}
			if debug || viper.GetBool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}
)

// loadSpeechConfig reads the speech section of the configuration, with
// command line flags already bound into viper.
func loadSpeechConfig() (tts.Config, error) {
	cfg, err := tts.LoadConfigFromViper()
	if err != nil {
		return cfg, err
	}
	log.Debug("Speech configuration", "engine", cfg.Engine, "rate", cfg.Rate, "voice", cfg.Voice, "lexicon", cfg.Lexicon)
	return cfg, nil
}

// newEngine creates the configured speech engine.
func newEngine(cfg tts.Config) (engines.Engine, error) {
	return engines.New(cfg, log.Default())
}

// loadLexicon loads the configured lexicon, or an empty one when none is
// set. Skipped entries are logged.
func loadLexicon(cfg tts.Config) (*lexicon.Lexicon, error) {
	lex, err := lexicon.LoadAll(expandPath(cfg.Lexicon))
	if err != nil {
		return nil, fmt.Errorf("unable to load lexicon: %w", err)
	}
	for _, err := range lex.Skipped {
		log.Warn("Skipped lexicon entry", "error", err)
	}
	return lex, nil
}

func newTransformer(lex *lexicon.Lexicon) *pronounce.Transformer {
	return pronounce.NewTransformer(lex.Rules, pronounce.WithLogger(log.Default()))
}

// expandPath expands a leading ~ to the home directory.
func expandPath(path string) string {
	p, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return p
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	flags.BoolVar(&debug, "debug", false, "log debug output")
	flags.String("engine", "", fmt.Sprintf("speech engine (%s)", strings.Join(engines.Names(), ", ")))
	flags.IntP("rate", "r", 0, "speech rate, -10 to 10")
	flags.String("voice", "", "voice name or id")
	flags.StringP("lexicon", "l", "", "pronunciation file (.xml, .yaml)")

	// Config bindings
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("speech.engine", flags.Lookup("engine"))
	_ = viper.BindPFlag("speech.rate", flags.Lookup("rate"))
	_ = viper.BindPFlag("speech.voice", flags.Lookup("voice"))
	_ = viper.BindPFlag("speech.lexicon", flags.Lookup("lexicon"))

	tts.SetDefaults()

	rootCmd.AddCommand(speakCmd, transformCmd, rulesCmd, voicesCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "lostvoice")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "lostvoice")}, dirs...)
	}

	if c := os.Getenv("LOSTVOICE_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("lostvoice")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("lostvoice")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "lostvoice.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
