// Package frontier keeps the worklist of words still to be processed and
// the set of every word that has ever been queued.
package frontier

import (
	"errors"
	"sort"
)

// ErrEmptyFrontier is returned by DequeueNext when no words are pending.
var ErrEmptyFrontier = errors.New("frontier is empty")

// Frontier is a FIFO queue with a seen set. A word enters seen in the same
// step it enters the queue and is never queued twice.
type Frontier struct {
	queue []string
	seen  map[string]struct{}
}

// New creates an empty frontier
func New() *Frontier {
	return &Frontier{seen: make(map[string]struct{})}
}

// EnqueueNew appends the words not seen before, in lexicographic order,
// and returns them. Duplicates within words are queued once.
func (f *Frontier) EnqueueNew(words []string) []string {
	batch := make([]string, len(words))
	copy(batch, words)
	sort.Strings(batch)

	var added []string
	for _, w := range batch {
		if _, ok := f.seen[w]; ok {
			continue
		}
		f.seen[w] = struct{}{}
		f.queue = append(f.queue, w)
		added = append(added, w)
	}
	return added
}

// DequeueNext removes and returns the oldest pending word
func (f *Frontier) DequeueNext() (string, error) {
	if len(f.queue) == 0 {
		return "", ErrEmptyFrontier
	}
	w := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	return w, nil
}

// MarkSeen records word as seen without queuing it.
func (f *Frontier) MarkSeen(word string) {
	f.seen[word] = struct{}{}
}

// Len returns the number of pending words.
func (f *Frontier) Len() int {
	return len(f.queue)
}

// SeenCount returns the number of distinct words ever seen.
func (f *Frontier) SeenCount() int {
	return len(f.seen)
}

// Contains reports whether word has been seen.
func (f *Frontier) Contains(word string) bool {
	_, ok := f.seen[word]
	return ok
}

// Pending returns a copy of the queue, front first.
func (f *Frontier) Pending() []string {
	out := make([]string, len(f.queue))
	copy(out, f.queue)
	return out
}
