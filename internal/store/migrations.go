package store

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	start_word TEXT NOT NULL,
	source_lang TEXT NOT NULL,
	target_lang TEXT NOT NULL,
	started_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS translations (
	run_id TEXT NOT NULL REFERENCES runs(id),
	word TEXT NOT NULL,
	rank INTEGER NOT NULL,
	translation TEXT NOT NULL,
	frequency INTEGER NOT NULL,
	part_of_speech TEXT,
	inflected_forms TEXT NOT NULL DEFAULT '[]',
	PRIMARY KEY (run_id, word, rank)
);

CREATE TABLE IF NOT EXISTS one_to_one (
	run_id TEXT NOT NULL REFERENCES runs(id),
	seq INTEGER NOT NULL,
	word TEXT NOT NULL,
	translation TEXT NOT NULL,
	frequency INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_one_to_one_word ON one_to_one(word);
`
