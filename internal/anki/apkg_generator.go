package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// APKGGenerator creates Anki package files (.apkg)
type APKGGenerator struct {
	deckName string
	deckID   int64
	modelID  int64
	cards    []Card
	now      func() time.Time
}

// NewAPKGGenerator creates a new APKG generator
func NewAPKGGenerator(deckName string) *APKGGenerator {
	// IDs derive from the creation time so separate exports never collide
	now := time.Now().UnixMilli()
	return &APKGGenerator{
		deckName: deckName,
		deckID:   now,
		modelID:  now + 1,
		now:      time.Now,
	}
}

// AddCard adds a card to the generator
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GenerateAPKG writes the collection database and an empty media map into
// a zip archive at outputPath.
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "anki_export_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "media"), []byte("{}"), 0644); err != nil {
		return fmt.Errorf("failed to create media mapping: %w", err)
	}
	if err := createZipPackage(tempDir, outputPath, "collection.anki2", "media"); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}
	return nil
}

func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, query := range schema {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := g.insertNotesAndCards(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}
	return db.Close()
}

var schema = []string{
	`CREATE TABLE col (
		id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
		scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL,
		usn integer NOT NULL, ls integer NOT NULL, conf text NOT NULL,
		models text NOT NULL, decks text NOT NULL, dconf text NOT NULL,
		tags text NOT NULL)`,
	`CREATE TABLE notes (
		id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
		mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL,
		flds text NOT NULL, sfld text NOT NULL, csum integer NOT NULL,
		flags integer NOT NULL, data text NOT NULL)`,
	`CREATE TABLE cards (
		id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
		ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL,
		type integer NOT NULL, queue integer NOT NULL, due integer NOT NULL,
		ivl integer NOT NULL, factor integer NOT NULL, reps integer NOT NULL,
		lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
		odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL)`,
	`CREATE TABLE revlog (
		id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
		ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL,
		factor integer NOT NULL, time integer NOT NULL, type integer NOT NULL)`,
	`CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL)`,
	`CREATE INDEX ix_notes_csum ON notes (csum)`,
	`CREATE INDEX ix_cards_nid ON cards (nid)`,
	`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
}

func deck(id int64, name string, now int64) map[string]interface{} {
	return map[string]interface{}{
		"id": id, "name": name, "mod": now, "desc": "", "collapsed": false,
		"dyn": 0, "conf": 1, "usn": 0,
		"newToday": []int{0, 0}, "revToday": []int{0, 0},
		"lrnToday": []int{0, 0}, "timeToday": []int{0, 0},
		"browserCollapsed": false, "extendNew": 10, "extendRev": 50,
	}
}

func (g *APKGGenerator) insertCollection(db *sql.DB) error {
	now := g.now().Unix()

	decks, err := json.Marshal(map[string]interface{}{
		"1":                           deck(1, "Default", now),
		strconv.FormatInt(g.deckID, 10): deck(g.deckID, g.deckName, now),
	})
	if err != nil {
		return err
	}
	models, err := json.Marshal(map[string]interface{}{
		strconv.FormatInt(g.modelID, 10): g.noteType(now),
	})
	if err != nil {
		return err
	}
	conf, err := json.Marshal(map[string]interface{}{
		"nextPos": 1, "estTimes": true, "activeDecks": []int64{1},
		"sortType": "noteFld", "sortBackwards": false, "addToCur": true,
		"curDeck": 1, "newSpread": 0, "dueCounts": true, "collapseTime": 1200,
		"timeLim": 0, "schedVer": 1, "curModel": strconv.FormatInt(g.modelID, 10),
	})
	if err != nil {
		return err
	}
	dconf, err := json.Marshal(map[string]interface{}{
		"1": map[string]interface{}{
			"id": 1, "name": "Default", "dyn": 0, "usn": 0, "mod": now,
			"timer": 0, "maxTaken": 60, "autoplay": true, "replayq": true,
			"new": map[string]interface{}{
				"delays": []int{1, 10}, "ints": []int{1, 4, 7}, "initialFactor": 2500,
				"perDay": 20, "order": 1, "bury": true, "separate": true,
			},
			"lapse": map[string]interface{}{
				"delays": []int{10}, "mult": 0, "minInt": 1, "leechFails": 8, "leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay": 100, "ease4": 1.3, "fuzz": 0.05, "maxIvl": 36500,
				"ivlFct": 1, "bury": true, "minSpace": 1,
			},
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1, now, now*1000, now*1000, 11, 0, 0, 0,
		string(conf), string(models), string(decks), string(dconf), "{}")
	return err
}

// noteType has a forward and a reverse template over Front and Back.
func (g *APKGGenerator) noteType(now int64) map[string]interface{} {
	field := func(name string, ord int) map[string]interface{} {
		return map[string]interface{}{
			"name": name, "ord": ord, "sticky": false, "rtl": false,
			"font": "Arial", "size": 20, "media": []string{},
		}
	}
	template := func(name string, ord int, qfmt, afmt string) map[string]interface{} {
		return map[string]interface{}{
			"name": name, "ord": ord, "qfmt": qfmt, "afmt": afmt,
			"did": nil, "bqfmt": "", "bafmt": "",
		}
	}
	return map[string]interface{}{
		"id":        g.modelID,
		"name":      "One-to-one pair (Basic + Reverse)",
		"type":      0,
		"mod":       now,
		"usn":       -1,
		"sortf":     0,
		"did":       g.deckID,
		"req":       [][]interface{}{{0, "all", []int{0}}, {1, "all", []int{1}}},
		"vers":      []int{},
		"tags":      []string{},
		"latexPre":  "",
		"latexPost": "",
		"flds":      []map[string]interface{}{field("Front", 0), field("Back", 1), field("Frequency", 2)},
		"tmpls": []map[string]interface{}{
			template("Forward", 0, `<div class="word">{{Front}}</div>`,
				`{{FrontSide}}<hr id="answer"><div class="word">{{Back}}</div>`),
			template("Reverse", 1, `<div class="word">{{Back}}</div>`,
				`{{FrontSide}}<hr id="answer"><div class="word">{{Front}}</div>`),
		},
		"css": `.card { font-family: Arial, sans-serif; font-size: 20px; text-align: center; }
.word { font-size: 32px; font-weight: bold; margin: 20px 0; }`,
	}
}

func (g *APKGGenerator) insertNotesAndCards(db *sql.DB) error {
	now := g.now()

	for i, card := range g.cards {
		// leave room for two cards per note
		noteID := now.UnixMilli() + int64(i*3)
		fields := strings.Join([]string{card.Front, card.Back, strconv.Itoa(card.Frequency)}, "\x1f")
		tags := ""
		if len(card.Tags) > 0 {
			tags = " " + strings.Join(card.Tags, " ") + " "
		}

		_, err := db.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			noteID, guid(card), g.modelID, now.Unix(), -1, tags, fields,
			card.Front, checksum(card.Front), 0, "")
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		for ord := 0; ord < 2; ord++ {
			cardID := noteID + int64(ord) + 1
			_, err = db.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				cardID, noteID, g.deckID, ord, now.Unix(), -1,
				0, 0, i+1, // new card, due is the queue position
				0, 0, 0, 0, 0, 0, 0, 0, "")
			if err != nil {
				return fmt.Errorf("failed to insert card: %w", err)
			}
		}
	}
	return nil
}

// guid is stable for a pair so reimports update the existing note.
func guid(card Card) string {
	sum := sha1.Sum([]byte(card.Front + "\x1f" + card.Back))
	return fmt.Sprintf("oto%x", sum[:8])
}

// checksum is Anki's sort-field checksum: the first 8 hex digits of SHA-1.
func checksum(field string) int64 {
	sum := sha1.Sum([]byte(field))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}

func createZipPackage(dir, outputPath string, names ...string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)
	for _, name := range names {
		if err := addFile(archive, filepath.Join(dir, name), name); err != nil {
			archive.Close()
			return err
		}
	}
	if err := archive.Close(); err != nil {
		return err
	}
	return zipFile.Close()
}

func addFile(archive *zip.Writer, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w, err := archive.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, file)
	return err
}
