// ABOUTME: Template CRUD operations for SQLite storage.
// ABOUTME: Exercises are stored in order and removed with their template by cascade.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfulp2020/forgefitness/internal/models"
)

// savedAtLayout is fixed width so saved_at sorts correctly as text.
const savedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SaveTemplates stores templates in a single transaction. They share one
// saved_at timestamp and keep their slice order.
func (d *DB) SaveTemplates(templates []models.Template) error {
	saved := make([]*SavedTemplate, len(templates))
	now := time.Now().UTC()
	for i := range templates {
		saved[i] = &SavedTemplate{Template: templates[i], SavedAt: now}
	}
	return d.insertTemplates(saved)
}

func (d *DB) insertTemplates(saved []*SavedTemplate) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for pos, st := range saved {
		if err := insertTemplate(tx, st, pos); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit templates: %w", err)
	}
	return nil
}

func insertTemplate(tx *sql.Tx, st *SavedTemplate, pos int) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	if st.SavedAt.IsZero() {
		st.SavedAt = time.Now().UTC()
	}

	_, err := tx.Exec(
		`INSERT INTO templates (id, name, position, saved_at) VALUES (?, ?, ?, ?)`,
		st.ID.String(), st.Name, pos, st.SavedAt.UTC().Format(savedAtLayout),
	)
	if err != nil {
		return fmt.Errorf("create template %s: %w", st.Name, err)
	}

	query := `
		INSERT INTO template_exercises (
			id, template_id, position, name, default_sets, rep_min, rep_max,
			rest_sec, weight_step, auto_progress, time_unit, set_type, superset_tag, amrap, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i := range st.Exercises {
		e := &st.Exercises[i]
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		_, err := tx.Exec(query,
			e.ID.String(), st.ID.String(), i, e.Name, e.DefaultSets, e.RepRange.Min, e.RepRange.Max,
			e.RestSec, e.WeightStep, e.AutoProgress, string(e.TimeUnit), string(e.SetType), e.SupersetTag, e.AMRAP, e.Notes,
		)
		if err != nil {
			return fmt.Errorf("create template exercise %s: %w", e.Name, err)
		}
	}
	return nil
}

// GetTemplate retrieves a template and its exercises by ID or ID prefix.
func (d *DB) GetTemplate(idOrPrefix string) (*SavedTemplate, error) {
	id, err := d.resolveTemplateID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, name, saved_at FROM templates WHERE id = ?`
	st, err := scanTemplate(d.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
		}
		return nil, err
	}

	if st.Exercises, err = d.listTemplateExercises(st.ID); err != nil {
		return nil, err
	}
	return st, nil
}

// ListTemplates retrieves templates newest first, each with its exercises.
// Templates saved together keep their program order.
func (d *DB) ListTemplates(limit int) ([]*SavedTemplate, error) {
	query := `SELECT id, name, saved_at FROM templates ORDER BY saved_at DESC, position ASC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	var out []*SavedTemplate
	for rows.Next() {
		st, err := scanTemplate(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("list templates: %w", err)
	}
	_ = rows.Close()

	for _, st := range out {
		if st.Exercises, err = d.listTemplateExercises(st.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DeleteTemplate removes a template and its exercises.
func (d *DB) DeleteTemplate(idOrPrefix string) error {
	id, err := d.resolveTemplateID(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM templates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete template: %w: %s", ErrNotFound, idOrPrefix)
	}
	return nil
}

func (d *DB) listTemplateExercises(templateID uuid.UUID) ([]models.TemplateExercise, error) {
	query := `
		SELECT id, name, default_sets, rep_min, rep_max, rest_sec, weight_step,
			auto_progress, time_unit, set_type, superset_tag, amrap, notes
		FROM template_exercises
		WHERE template_id = ?
		ORDER BY position ASC
	`
	rows, err := d.db.Query(query, templateID.String())
	if err != nil {
		return nil, fmt.Errorf("list template exercises: %w", err)
	}
	defer rows.Close()

	exs := []models.TemplateExercise{}
	for rows.Next() {
		var e models.TemplateExercise
		var idStr, timeUnit, setType string
		err := rows.Scan(&idStr, &e.Name, &e.DefaultSets, &e.RepRange.Min, &e.RepRange.Max, &e.RestSec,
			&e.WeightStep, &e.AutoProgress, &timeUnit, &setType, &e.SupersetTag, &e.AMRAP, &e.Notes)
		if err != nil {
			return nil, fmt.Errorf("scan template exercise: %w", err)
		}
		e.ID, _ = uuid.Parse(idStr)
		e.TimeUnit = models.TimeUnit(timeUnit)
		e.SetType = models.SetType(setType)
		exs = append(exs, e)
	}
	return exs, rows.Err()
}

// resolveTemplateID finds the full ID from a prefix.
func (d *DB) resolveTemplateID(idOrPrefix string) (string, error) {
	idOrPrefix = strings.ToLower(strings.TrimSpace(idOrPrefix))
	if idOrPrefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if !isIDPrefix(idOrPrefix) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	rows, err := d.db.Query(`SELECT id FROM templates WHERE substr(id, 1, ?) = ?`, len(idOrPrefix), idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve template ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan template ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve template ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w %s: matches %d templates", ErrAmbiguousPrefix, idOrPrefix, len(matches))
	}
	return matches[0], nil
}

// isIDPrefix reports whether s could begin a lowercase uuid string.
func isIDPrefix(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') && r != '-' {
			return false
		}
	}
	return true
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*SavedTemplate, error) {
	var st SavedTemplate
	var idStr, savedAt string
	if err := row.Scan(&idStr, &st.Name, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan template: %w", err)
	}
	st.ID, _ = uuid.Parse(idStr)
	st.SavedAt, _ = time.Parse(time.RFC3339Nano, savedAt)
	return &st, nil
}
