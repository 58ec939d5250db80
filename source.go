package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
)

var readmeNames = []string{"README.md", "README", "Readme.md", "Readme", "readme.md", "readme"}

// source provides readable text.
type source struct {
	reader io.ReadCloser
	path   string // absolute path for files, empty otherwise
}

// sourceFromArg creates a source for a file, a directory's README or "-"
// for stdin.
func sourceFromArg(arg string) (*source, error) {
	// from stdin
	if arg == "-" {
		return &source{reader: io.NopCloser(os.Stdin)}, nil
	}

	if arg == "" {
		arg = "."
	}

	// a directory:
	if st, err := os.Stat(arg); err == nil && st.IsDir() {
		readme, ok := findReadme(arg)
		if !ok {
			return nil, errors.New("missing text source")
		}
		arg = readme
	}

	r, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %w", err)
	}
	u, err := filepath.Abs(arg)
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("unable to get absolute path: %w", err)
	}
	return &source{r, u}, nil
}

// findReadme returns the first README in dir.
func findReadme(dir string) (string, bool) {
	for _, v := range readmeNames {
		p := filepath.Join(dir, v)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, true
		}
	}
	return "", false
}

// clipboardSource reads the system clipboard.
func clipboardSource() (*source, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read clipboard: %w", err)
	}
	return &source{reader: io.NopCloser(strings.NewReader(text))}, nil
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to open file: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

// readInput reads the text named by args, stdin when it is a pipe, or the
// clipboard. It reports whether the text came from stdin.
func readInput(args []string, fromClipboard bool) (text, path string, piped bool, err error) {
	var src *source
	switch {
	case fromClipboard:
		src, err = clipboardSource()
	case len(args) > 0:
		src, err = sourceFromArg(args[0])
		piped = args[0] == "-"
	default:
		if piped, err = stdinIsPipe(); err != nil {
			return "", "", false, err
		}
		if piped {
			src, err = sourceFromArg("-")
		} else {
			src, err = sourceFromArg("")
		}
	}
	if err != nil {
		return "", "", false, err
	}
	defer src.reader.Close() //nolint:errcheck

	b, err := io.ReadAll(src.reader)
	if err != nil {
		return "", "", false, fmt.Errorf("unable to read from reader: %w", err)
	}
	return string(b), src.path, piped, nil
}
