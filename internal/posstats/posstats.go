// Package posstats counts the part-of-speech tags that appear in the
// ('word', 'tag') diagnostic lines of an exploration log.
package posstats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
)

// MaxExamples is how many words are kept per tag.
const MaxExamples = 5

var tuplePattern = regexp.MustCompile(`\('(.+?)', (?:'(.*?)'|None)\)`)

// Count is the tally for one tag. The absent tag is "".
type Count struct {
	Tag   string
	Count int
	Words []string
}

// Stats accumulates tag counts in order of first appearance.
type Stats struct {
	index  map[string]int
	counts []Count
}

// New returns empty stats.
func New() *Stats {
	return &Stats{index: make(map[string]int)}
}

// AddLine records every tuple found in line.
func (s *Stats) AddLine(line string) {
	for _, m := range tuplePattern.FindAllStringSubmatch(line, -1) {
		s.add(m[1], m[2])
	}
}

func (s *Stats) add(word, tag string) {
	i, ok := s.index[tag]
	if !ok {
		i = len(s.counts)
		s.index[tag] = i
		s.counts = append(s.counts, Count{Tag: tag})
	}
	c := &s.counts[i]
	c.Count++
	if len(c.Words) < MaxExamples {
		c.Words = append(c.Words, word)
	}
}

// Sorted returns the counts by descending count. Ties keep first-seen order.
func (s *Stats) Sorted() []Count {
	out := make([]Count, len(s.counts))
	copy(out, s.counts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Read scans r line by line.
func Read(r io.Reader) (*Stats, error) {
	stats := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		stats.AddLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// CountFile reads the log at path.
func CountFile(path string) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	defer f.Close()

	stats, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	return stats, nil
}

// Print writes one "tag: count - [words]" line per tag.
func (s *Stats) Print(w io.Writer) error {
	for _, c := range s.Sorted() {
		if _, err := fmt.Fprintf(w, "%s: %d - %v\n", c.Tag, c.Count, c.Words); err != nil {
			return err
		}
	}
	return nil
}
