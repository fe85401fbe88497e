// ABOUTME: Versioned SQLite schema for saved templates and their ordered exercises.
// ABOUTME: PRAGMA user_version records how many migrations have been applied.
package storage

import "fmt"

// migrations[i] moves the schema from version i to i+1.
var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		saved_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS template_exercises (
		id TEXT PRIMARY KEY,
		template_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		default_sets INTEGER NOT NULL,
		rep_min INTEGER NOT NULL,
		rep_max INTEGER NOT NULL,
		rest_sec INTEGER NOT NULL DEFAULT 0,
		weight_step REAL NOT NULL DEFAULT 0,
		auto_progress INTEGER NOT NULL DEFAULT 0,
		time_unit TEXT NOT NULL DEFAULT '',
		set_type TEXT NOT NULL DEFAULT '',
		superset_tag TEXT NOT NULL DEFAULT '',
		amrap INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (template_id) REFERENCES templates(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_templates_saved ON templates(saved_at DESC, position ASC);
	CREATE INDEX IF NOT EXISTS idx_template_exercises_template ON template_exercises(template_id, position);
	`,
}

// SchemaVersion is the schema version this build writes.
func SchemaVersion() int {
	return len(migrations)
}

func (d *DB) schemaVersion() (int, error) {
	var v int
	if err := d.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// migrate applies every pending migration, each in its own transaction.
// A store written by a newer build is refused rather than modified.
func (d *DB) migrate() error {
	current, err := d.schemaVersion()
	if err != nil {
		return err
	}
	if current > SchemaVersion() {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, SchemaVersion())
	}

	for v := current; v < SchemaVersion(); v++ {
		tx, err := d.db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", v+1, err)
		}
		if _, err := tx.Exec(migrations[v]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", v+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", v+1, err)
		}
	}
	return nil
}
