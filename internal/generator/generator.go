// ABOUTME: Generator ties the knowledge base to the exercise and template builders.
// ABOUTME: Safe for concurrent use; it holds only immutable library data.
package generator

import (
	"log/slog"
	"time"

	"github.com/mfulp2020/forgefitness/internal/catalog"
	"github.com/mfulp2020/forgefitness/internal/knowledge"
	"github.com/mfulp2020/forgefitness/internal/models"
)

// Recorder receives generation measurements.
type Recorder interface {
	ObserveProgram(splitID string, focus models.Focus, templates int, elapsed time.Duration)
	SetLibraryDiagnostics(n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveProgram(string, models.Focus, int, time.Duration) {}
func (nopRecorder) SetLibraryDiagnostics(int)                               {}

// Generator builds programs from a library.
type Generator struct {
	lib        *knowledge.Library
	normalizer *catalog.Normalizer
	logger     *slog.Logger
	recorder   Recorder
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// New creates a Generator over lib.
func New(lib *knowledge.Library, opts ...Option) *Generator {
	g := &Generator{
		lib:        lib,
		normalizer: lib.Normalizer(),
		logger:     slog.New(slog.DiscardHandler),
		recorder:   nopRecorder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Library returns the knowledge base the generator reads.
func (g *Generator) Library() *knowledge.Library {
	return g.lib
}

// Normalizer returns the exercise name normalizer.
func (g *Generator) Normalizer() *catalog.Normalizer {
	return g.normalizer
}
