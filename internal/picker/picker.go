// Package picker lets a user choose a deck from a directory listing on the terminal.
package picker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrNoDecks is returned when the directory holds no .pptx files.
var ErrNoDecks = errors.New("no .pptx files found")

// ErrCancelled is returned when the user quits or input ends.
var ErrCancelled = errors.New("selection cancelled")

// List returns the .pptx files in dir sorted by name. Office lock files are skipped.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var decks []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") || !strings.EqualFold(filepath.Ext(name), ".pptx") {
			continue
		}
		decks = append(decks, filepath.Join(dir, name))
	}
	sort.Strings(decks)
	return decks, nil
}

// Choose prints a numbered menu of decks to w and reads the selection from r.
// Invalid answers are re-prompted; "q" or end of input cancels.
func Choose(r io.Reader, w io.Writer, decks []string) (string, error) {
	if len(decks) == 0 {
		return "", ErrNoDecks
	}

	fmt.Fprintln(w, "Select a PowerPoint file:")
	for i, d := range decks {
		fmt.Fprintf(w, "  [%d] %s\n", i+1, filepath.Base(d))
	}

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprintf(w, "Enter number (1-%d, q to quit): ", len(decks))
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return "", ErrCancelled
		}

		answer := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(answer, "q") {
			return "", ErrCancelled
		}

		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(decks) {
			fmt.Fprintf(w, "Invalid selection %q\n", answer)
			continue
		}
		return decks[n-1], nil
	}
}

// Pick lists dir and asks the user to choose one deck.
func Pick(dir string, r io.Reader, w io.Writer) (string, error) {
	decks, err := List(dir)
	if err != nil {
		return "", err
	}
	if len(decks) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoDecks, dir)
	}
	return Choose(r, w, decks)
}
