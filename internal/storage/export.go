// ABOUTME: Export and import functionality for saved templates.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for the template collection.
type ExportData struct {
	Version    string           `json:"version" yaml:"version"`
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Tool       string           `json:"tool" yaml:"tool"`
	Templates  []*SavedTemplate `json:"templates" yaml:"templates"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	templates, err := d.ListTemplates(0)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	if templates == nil {
		templates = []*SavedTemplate{}
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "forge",
		Templates:  templates,
	}, nil
}

// ImportData imports data from an export file in one transaction. Saved
// timestamps and IDs are kept; missing ones are filled in.
func (d *DB) ImportData(data *ExportData) error {
	if data == nil {
		return fmt.Errorf("import: no data")
	}
	if err := d.insertTemplates(data.Templates); err != nil {
		return fmt.Errorf("import templates: %w", err)
	}
	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as compact, human-readable YAML.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string         `yaml:"version"`
		ExportedAt string         `yaml:"exported_at"`
		Tool       string         `yaml:"tool"`
		Templates  []yamlTemplate `yaml:"templates"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Templates:  make([]yamlTemplate, 0, len(data.Templates)),
	}

	for _, t := range data.Templates {
		yt := yamlTemplate{
			ID:      t.ID.String()[:8],
			Name:    t.Name,
			SavedAt: t.SavedAt.Format(time.RFC3339),
		}
		for _, e := range t.Exercises {
			yt.Exercises = append(yt.Exercises, yamlExercise{
				Name:  e.Name,
				Sets:  e.DefaultSets,
				Reps:  e.RepsLabel(),
				Rest:  e.RestSec,
				Group: e.SupersetTag,
				Notes: e.Notes,
			})
		}
		yamlData.Templates = append(yamlData.Templates, yt)
	}

	return yaml.Marshal(yamlData)
}

type yamlTemplate struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	SavedAt   string         `yaml:"saved_at"`
	Exercises []yamlExercise `yaml:"exercises,omitempty"`
}

type yamlExercise struct {
	Name  string `yaml:"name"`
	Sets  int    `yaml:"sets"`
	Reps  string `yaml:"reps"`
	Rest  int    `yaml:"rest_sec,omitempty"`
	Group string `yaml:"superset,omitempty"`
	Notes string `yaml:"notes,omitempty"`
}

// ExportMarkdown renders saved templates as Markdown tables, optionally
// only those saved at or after since.
func (d *DB) ExportMarkdown(since *time.Time) (string, error) {
	templates, err := d.ListTemplates(0)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Forge Templates - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, t := range templates {
		if since != nil && t.SavedAt.Before(*since) {
			continue
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", t.Name))
		sb.WriteString(fmt.Sprintf("Saved %s · `%s`\n\n", t.SavedAt.Format("2006-01-02 15:04"), t.ID.String()[:8]))
		sb.WriteString("| # | Exercise | Sets | Reps | Rest | Superset |\n")
		sb.WriteString("|---|----------|------|------|------|----------|\n")
		for i, e := range t.Exercises {
			rest := ""
			if e.RestSec > 0 {
				rest = fmt.Sprintf("%ds", e.RestSec)
			}
			sb.WriteString(fmt.Sprintf("| %d | %s | %d | %s | %s | %s |\n",
				i+1, e.Name, e.DefaultSets, e.RepsLabel(), rest, e.SupersetTag))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(&exportData)
}
