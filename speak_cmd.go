package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/lostvoice/tts"
	"github.com/dgnsrekt/lostvoice/tts/lexicon"
	"github.com/dgnsrekt/lostvoice/tts/navigate"
	"github.com/dgnsrekt/lostvoice/tts/pronounce"
	"github.com/dgnsrekt/lostvoice/tts/shortcut"
	"github.com/dgnsrekt/lostvoice/tts/ssml"
	ttssync "github.com/dgnsrekt/lostvoice/tts/sync"
	"github.com/dgnsrekt/lostvoice/ui"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	fromClipboard bool
	plain         bool
	width         uint
	mouse         bool

	speakCmd = &cobra.Command{
		Use:   "speak [FILE|DIR|-]",
		Short: "Read a document aloud",
		Long: paragraph(fmt.Sprintf("\n%s a document aloud, highlighting each word as it is spoken. "+
			"Without a terminal the words are printed as they are spoken.", keyword("Read"))),
		Example: paragraph("lostvoice speak notes.md\ncat notes.md | lostvoice speak\nlostvoice speak --clipboard --rate 3"),
		Args:    cobra.MaximumNArgs(1),
		RunE:    runSpeak,
	}
)

func runSpeak(cmd *cobra.Command, args []string) error {
	cfg, err := loadSpeechConfig()
	if err != nil {
		return err
	}

	content, path, piped, err := readInput(args, fromClipboard)
	if err != nil {
		return err
	}

	lex, err := loadLexicon(cfg)
	if err != nil {
		return err
	}
	if cfg.Shortcuts {
		var done []shortcut.Expansion
		content, done = shortcut.ExpandAll(content, lex)
		if len(done) > 0 {
			log.Debug("Expanded shortcuts", "count", len(done))
		}
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	transformer := newTransformer(lex)

	if plain || piped || !term.IsTerminal(int(os.Stdout.Fd())) {
		return speakPlain(cmd.Context(), cfg, content, engine, transformer, cmd.OutOrStdout())
	}
	return runTUI(cfg, path, content, engine, transformer)
}

// speakPlain reads content once without a TUI, writing each word to w as
// it is spoken. It returns when reading ends.
func speakPlain(ctx context.Context, cfg tts.Config, content string, engine tts.SpeechEngine,
	transformer *pronounce.Transformer, w io.Writer,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		d       = ttssync.NewDispatcher()
		written int
		failed  error
	)

	envelope := ssml.DefaultEnvelope
	if cfg.Language != "" {
		envelope = ssml.NewEnvelope(cfg.Language)
	}

	nav := navigate.New(engine, transformer,
		navigate.WithLogger(log.Default()),
		navigate.WithEnvelope(envelope),
		navigate.WithVoice(cfg.Voice),
		navigate.WithHighlighter(func(h navigate.Highlight) {
			end := h.Start + h.Length
			if h.Length == 0 || h.Start < written || end > len(content) {
				return
			}
			_, _ = io.WriteString(w, content[written:end])
			written = end
		}),
		navigate.WithStopHandler(cancel),
	)

	engine.OnProgress(func(p tts.Progress) {
		d.Post(func() { nav.HandleProgress(p) })
	})
	engine.OnCompleted(func(c tts.Completion) {
		d.Post(func() {
			if c.Err != nil {
				failed = c.Err
			}
			nav.HandleCompleted(c)
		})
	})

	if err := nav.Speak(content, 0); err != nil {
		return err
	}
	if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if failed != nil {
		return fmt.Errorf("speech failed: %w", failed)
	}

	rest := content[written:]
	if !strings.HasSuffix(rest, "\n") {
		rest += "\n"
	}
	_, err := io.WriteString(w, rest)
	return err
}

func runTUI(cfg tts.Config, path, content string, engine tts.SpeechEngine, transformer *pronounce.Transformer) error {
	// Read environment to get display overrides
	uiCfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	if _, ok := os.LookupEnv("LOSTVOICE_HIGHLIGHT_ENABLED"); !ok {
		uiCfg.HighlightEnabled = cfg.HighlightEnabled
	}
	if _, ok := os.LookupEnv("LOSTVOICE_HIGHLIGHT_COLOR"); !ok {
		uiCfg.HighlightColor = cfg.HighlightColor
	}
	uiCfg.Path = path
	uiCfg.Voice = cfg.Voice
	uiCfg.EchoVoice = cfg.EchoVoice
	uiCfg.Language = cfg.Language
	uiCfg.EchoWords = cfg.EchoWords
	uiCfg.EchoParagraphs = cfg.EchoParagraphs
	uiCfg.Width = width
	uiCfg.EnableMouse = mouse

	p := ui.NewProgram(uiCfg, content, engine, transformer)

	if cfg.Lexicon != "" {
		stop, err := watchLexicon(expandPath(cfg.Lexicon), func(lex *lexicon.Lexicon) {
			p.Send(ui.RulesMsg{Transformer: newTransformer(lex)})
		})
		if err != nil {
			log.Warn("Not watching lexicon", "path", cfg.Lexicon, "error", err)
		} else {
			defer stop()
		}
	}

	// Run Bubble Tea program
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}

	return nil
}

// watchLexicon calls reload with the freshly loaded lexicon each time the
// file at path is written. The returned func stops watching.
func watchLexicon(path string, reload func(*lexicon.Lexicon)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("error adding dir to fsnotify watcher: %w", err)
	}
	log.Debug("fsnotify watching dir", "dir", dir)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				log.Debug("fsnotify event", "file", event.Name, "event", event.Op)
				lex, err := lexicon.Load(path)
				if err != nil {
					log.Warn("Could not reload lexicon", "path", path, "error", err)
					continue
				}
				reload(lex)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Debug("fsnotify error", "dir", dir, "error", err)
			}
		}
	}()

	return func() { _ = watcher.Close() }, nil
}

func init() {
	speakCmd.Flags().BoolVarP(&fromClipboard, "clipboard", "c", false, "read the clipboard")
	speakCmd.Flags().BoolVarP(&plain, "plain", "p", false, "print words as they are spoken instead of starting the TUI")
	speakCmd.Flags().UintVarP(&width, "width", "w", 0, "word-wrap at width (set to 0 to use the terminal width)")
	speakCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel")
	_ = speakCmd.Flags().MarkHidden("mouse")
}
