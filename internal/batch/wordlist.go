// Package batch reads seed word lists.
package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ReadWordList reads seed words from a file, one per line.
// Supports formats:
// - word only: "желание"
// - with translation: "желание = desire" (only the left side is kept)
// Blank lines, lines starting with '#' and lines with nothing left of '='
// are skipped. Duplicates are dropped, keeping the first occurrence.
func ReadWordList(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	defer file.Close()

	var words []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if left, _, ok := strings.Cut(line, "="); ok {
			line = strings.TrimSpace(left)
		}
		if line == "" {
			continue
		}
		word := norm.NFC.String(line)
		if seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}
