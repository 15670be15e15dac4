// Package store mirrors run checkpoints into a SQLite database so results
// of several runs can be queried together.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jparta/onetoone/internal/models"
)

// InitDB runs migrations on the given DB connection using the embedded SQL.
func InitDB(db *sql.DB) error {
	for _, s := range strings.Split(migrationsSQL, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Open opens and migrates the database at path
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := InitDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Store writes the state of one run.
type Store struct {
	db    *sql.DB
	runID string
	now   func() time.Time
}

// NewRun registers a new run and returns a store bound to it
func NewRun(ctx context.Context, db *sql.DB, startWord, sourceLang, targetLang string) (*Store, error) {
	s := &Store{db: db, runID: uuid.NewString(), now: time.Now}
	ts := s.now().UTC()
	_, err := db.ExecContext(ctx,
		`INSERT INTO runs (id, start_word, source_lang, target_lang, started_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		s.runID, startWord, sourceLang, targetLang, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return s, nil
}

// RunID returns the identifier of the run this store writes
func (s *Store) RunID() string {
	return s.runID
}

// Save replaces the run's translations and appends ledger records not yet
// stored. It satisfies the explorer's checkpoint sink.
func (s *Store) Save(ctx context.Context, state *models.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE runs SET updated_at = ? WHERE id = ?`, s.now().UTC(), s.runID); err != nil {
		return fmt.Errorf("touch run: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM translations WHERE run_id = ?`, s.runID); err != nil {
		return fmt.Errorf("clear translations: %w", err)
	}

	insert, err := tx.PrepareContext(ctx,
		`INSERT INTO translations (run_id, word, rank, translation, frequency, part_of_speech, inflected_forms) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare translations: %w", err)
	}
	defer insert.Close()

	for word, candidates := range state.Translations.Snapshot() {
		for rank, c := range candidates {
			forms := c.InflectedForms
			if forms == nil {
				forms = []models.Inflection{}
			}
			formsJSON, err := json.Marshal(forms)
			if err != nil {
				return fmt.Errorf("encode inflections: %w", err)
			}
			var tag sql.NullString
			if c.PartOfSpeech != "" {
				tag = sql.NullString{String: c.PartOfSpeech, Valid: true}
			}
			if _, err := insert.ExecContext(ctx, s.runID, word, rank, c.Translation, c.Frequency, tag, string(formsJSON)); err != nil {
				return fmt.Errorf("insert translation %q: %w", word, err)
			}
		}
	}

	for seq, r := range state.OneToOne.Records() {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO one_to_one (run_id, seq, word, translation, frequency) VALUES (?, ?, ?, ?, ?)`,
			s.runID, seq, r.Word, r.Translation, r.Frequency)
		if err != nil {
			return fmt.Errorf("insert record %q: %w", r.Word, err)
		}
	}

	return tx.Commit()
}

// Records returns the one-to-one records of a run in discovery order
func Records(ctx context.Context, db *sql.DB, runID string) ([]models.Record, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT word, frequency, translation FROM one_to_one WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.Word, &r.Frequency, &r.Translation); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Translations returns the stored candidates for word in a run, in rank order
func Translations(ctx context.Context, db *sql.DB, runID, word string) ([]models.Candidate, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT translation, frequency, part_of_speech, inflected_forms FROM translations WHERE run_id = ? AND word = ? ORDER BY rank`,
		runID, word)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	defer rows.Close()

	var out []models.Candidate
	for rows.Next() {
		c := models.Candidate{SourceWord: word}
		var tag sql.NullString
		var forms string
		if err := rows.Scan(&c.Translation, &c.Frequency, &tag, &forms); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		c.PartOfSpeech = tag.String
		if err := json.Unmarshal([]byte(forms), &c.InflectedForms); err != nil {
			return nil, fmt.Errorf("decode inflections: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// KnownPairs returns every distinct one-to-one word found by any run for
// the language pair, mapped to its translation.
func KnownPairs(ctx context.Context, db *sql.DB, sourceLang, targetLang string) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT o.word, o.translation FROM one_to_one o
		JOIN runs r ON r.id = o.run_id
		WHERE r.source_lang = ? AND r.target_lang = ?
		ORDER BY r.started_at, o.seq`, sourceLang, targetLang)
	if err != nil {
		return nil, fmt.Errorf("query known pairs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var word, translation string
		if err := rows.Scan(&word, &translation); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		if _, ok := out[word]; !ok {
			out[word] = translation
		}
	}
	return out, rows.Err()
}
