package models

import "sort"

// Table maps every processed word to the ranked translations the
// provider returned for it.
type Table struct {
	entries map[string][]Candidate
}

// NewTable creates an empty translation table
func NewTable() *Table {
	return &Table{entries: make(map[string][]Candidate)}
}

// Set stores the translations for word, replacing any previous entry
func (t *Table) Set(word string, translations []Candidate) {
	stored := make([]Candidate, len(translations))
	copy(stored, translations)
	t.entries[word] = stored
}

// Get returns the translations recorded for word
func (t *Table) Get(word string) ([]Candidate, bool) {
	translations, ok := t.entries[word]
	return translations, ok
}

// Has reports whether word has been processed
func (t *Table) Has(word string) bool {
	_, ok := t.entries[word]
	return ok
}

// Len returns the number of processed words
func (t *Table) Len() int {
	return len(t.entries)
}

// Words returns the processed words in lexicographic order
func (t *Table) Words() []string {
	words := make([]string, 0, len(t.entries))
	for w := range t.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Snapshot returns a copy of the table contents.
func (t *Table) Snapshot() map[string][]Candidate {
	// Candidates are never mutated after Set, so copying the slices is enough
	result := make(map[string][]Candidate, len(t.entries))
	for w, translations := range t.entries {
		result[w] = append([]Candidate(nil), translations...)
	}
	return result
}

// Ledger is the append-only list of one-to-one records of a run.
type Ledger struct {
	records []Record
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append adds a record at the end of the ledger
func (l *Ledger) Append(r Record) {
	l.records = append(l.records, r)
}

// Len returns the number of records
func (l *Ledger) Len() int {
	return len(l.records)
}

// Contains reports whether a record for word has been appended
func (l *Ledger) Contains(word string) bool {
	for _, r := range l.records {
		if r.Word == word {
			return true
		}
	}
	return false
}

// Records returns a copy of the records in discovery order
func (l *Ledger) Records() []Record {
	return append([]Record(nil), l.records...)
}

// State is everything a run accumulates. Checkpoints are snapshots of it.
type State struct {
	SourceLang   string
	TargetLang   string
	Translations *Table
	OneToOne     *Ledger
}

// NewState creates an empty state for a language pair
func NewState(sourceLang, targetLang string) *State {
	return &State{
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
		Translations: NewTable(),
		OneToOne:     NewLedger(),
	}
}
