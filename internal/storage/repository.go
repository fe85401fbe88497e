// ABOUTME: Repository interface for the saved template collection.
// ABOUTME: Defines the contract for template CRUD, export and import.
package storage

import (
	"errors"
	"time"

	"github.com/mfulp2020/forgefitness/internal/models"
)

// ErrNotFound is returned when no record matches an ID or prefix.
var ErrNotFound = errors.New("not found")

// ErrAmbiguousPrefix is returned when an ID prefix matches several records.
var ErrAmbiguousPrefix = errors.New("ambiguous prefix")

// SavedTemplate is a generated template as stored in the collection.
type SavedTemplate struct {
	models.Template `yaml:",inline"`
	SavedAt         time.Time `json:"saved_at" yaml:"saved_at"`
}

// Repository defines the storage interface for saved templates.
type Repository interface {
	// SaveTemplates stores a generated program atomically, keeping its day order.
	SaveTemplates(templates []models.Template) error
	GetTemplate(idOrPrefix string) (*SavedTemplate, error)
	// ListTemplates returns templates newest first; limit <= 0 means all.
	ListTemplates(limit int) ([]*SavedTemplate, error)
	DeleteTemplate(idOrPrefix string) error

	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	Close() error
}
