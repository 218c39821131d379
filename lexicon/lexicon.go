// Package lexicon reads word lists for the dawg builder.
//
// The builder itself only accepts sorted, duplicate-free input. This
// package is where raw lists are cleaned up: with Options.Normalize set
// (the default) the words are sorted and deduplicated before they are
// returned, so the result can be passed straight to dawg.Build.
package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
	"unicode/utf8"
)

// ErrSourceNotFound is returned by LoadFile when the word list does not
// exist.
var ErrSourceNotFound = errors.New("lexicon: source not found")

// ErrInvalidEncoding is returned when a line is not valid UTF-8.
var ErrInvalidEncoding = errors.New("lexicon: line is not valid UTF-8")

// Options controls how a word list is read.
type Options struct {
	// Normalize sorts the words and drops duplicates.
	Normalize bool

	// TrimSpace removes leading and trailing white space from each line.
	TrimSpace bool

	// SkipBlank drops empty lines. Without it an empty line is the empty
	// word.
	SkipBlank bool

	// CommentPrefix, if set, drops lines starting with it.
	CommentPrefix string

	// Logger receives a summary of what was read. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions normalizes, trims and skips blank lines.
func DefaultOptions() Options {
	return Options{
		Normalize: true,
		TrimSpace: true,
		SkipBlank: true,
	}
}

// Read reads one word per line from r.
func Read(r io.Reader, opts Options) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	skipped := 0
	for scanner.Scan() {
		line++
		word := strings.TrimSuffix(scanner.Text(), "\r")
		if opts.TrimSpace {
			word = strings.TrimSpace(word)
		}
		if opts.CommentPrefix != "" && strings.HasPrefix(word, opts.CommentPrefix) {
			skipped++
			continue
		}
		if opts.SkipBlank && word == "" {
			skipped++
			continue
		}
		if !utf8.ValidString(word) {
			return nil, fmt.Errorf("%w: line %d", ErrInvalidEncoding, line)
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	read := len(words)
	if opts.Normalize {
		words = Normalize(words)
	}

	if opts.Logger != nil {
		opts.Logger.Debug("word list read",
			slog.Int("lines", line),
			slog.Int("skipped", skipped),
			slog.Int("words", len(words)),
			slog.Int("duplicates", read-len(words)),
		)
	}
	return words, nil
}

// LoadFile reads a word list from path.
func LoadFile(path string, opts Options) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	if opts.Logger != nil {
		opts.Logger = opts.Logger.With(slog.String("path", path))
	}
	return Read(f, opts)
}

// Normalize sorts words in place and removes duplicates. The returned
// slice shares storage with words.
func Normalize(words []string) []string {
	slices.Sort(words)
	return slices.Compact(words)
}

// IsSorted reports whether words are strictly increasing, which is what
// dawg.Build requires.
func IsSorted(words []string) bool {
	for i := 1; i < len(words); i++ {
		if words[i] <= words[i-1] {
			return false
		}
	}
	return true
}
