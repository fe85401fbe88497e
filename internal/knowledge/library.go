// ABOUTME: Read-only knowledge base: splits, workout definitions, exercise catalog.
// ABOUTME: Loaded once from YAML (embedded or a directory) and never mutated.
package knowledge

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mfulp2020/forgefitness/internal/catalog"
	"github.com/mfulp2020/forgefitness/internal/models"
)

//go:embed data/*.yaml
var embedded embed.FS

// File names read by Load.
const (
	SplitsFile   = "splits.yaml"
	WorkoutsFile = "workouts.yaml"
	CatalogFile  = "catalog.yaml"
)

// MinDays and MaxDays bound every split's day mapping.
const (
	MinDays = 1
	MaxDays = 7
)

// prescriptionFallback is the order tried when a spec lacks the requested level.
var prescriptionFallback = []models.Level{models.LevelIntermediate, models.LevelBeginner, models.LevelAdvanced}

// ExerciseSpec is one exercise line of a workout definition.
type ExerciseSpec struct {
	Name     string                  `yaml:"name" json:"name"`
	SetsReps map[models.Level]string `yaml:"sets_reps" json:"sets_reps"`
	Notes    string                  `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Prescription returns the token for level, falling back through the other
// levels when the spec has none. ok is false when no level has a token.
func (e ExerciseSpec) Prescription(level models.Level) (token string, ok bool) {
	if t := strings.TrimSpace(e.SetsReps[level]); t != "" {
		return t, true
	}
	for _, l := range prescriptionFallback {
		if t := strings.TrimSpace(e.SetsReps[l]); t != "" {
			return t, true
		}
	}
	return "", false
}

func (e ExerciseSpec) clone() ExerciseSpec {
	out := e
	out.SetsReps = make(map[models.Level]string, len(e.SetsReps))
	for k, v := range e.SetsReps {
		out.SetsReps[k] = v
	}
	return out
}

// Workout is a named list of exercise specs.
type Workout struct {
	Name      string         `yaml:"name" json:"name"`
	Exercises []ExerciseSpec `yaml:"exercises" json:"exercises"`
}

func (w Workout) clone() Workout {
	out := Workout{Name: w.Name, Exercises: make([]ExerciseSpec, len(w.Exercises))}
	for i, e := range w.Exercises {
		out.Exercises[i] = e.clone()
	}
	return out
}

// Split maps a weekly day count ("1".."7") to an ordered list of workout names.
type Split struct {
	ID      string              `yaml:"id" json:"id"`
	Name    string              `yaml:"name" json:"name"`
	BestFor string              `yaml:"best_for" json:"best_for"`
	Days    map[string][]string `yaml:"days" json:"days"`
}

// DayNames returns a copy of the mapping for count, or nil when absent.
func (s Split) DayNames(count int) []string {
	names, ok := s.Days[strconv.Itoa(count)]
	if !ok {
		return nil
	}
	return append([]string(nil), names...)
}

func (s Split) clone() Split {
	out := s
	out.Days = make(map[string][]string, len(s.Days))
	for k, v := range s.Days {
		out.Days[k] = append([]string(nil), v...)
	}
	return out
}

type splitsFile struct {
	Splits []Split `yaml:"splits"`
}

type workoutsFile struct {
	Workouts []Workout `yaml:"workouts"`
}

type catalogFile struct {
	Categories []catalog.Category `yaml:"categories"`
	Aliases    map[string]string  `yaml:"aliases"`
}

// Library is the loaded knowledge base. All accessors return copies.
type Library struct {
	splits       []Split
	splitIndex   map[string]int
	workouts     map[string]Workout
	workoutOrder []string
	catalog      catalog.Catalog
	aliases      map[string]string
	normalizer   *catalog.Normalizer
}

var (
	defaultLibrary *Library
	defaultErr     error
	defaultOnce    sync.Once
)

// Default returns the embedded library, parsing it on first use.
func Default() (*Library, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			defaultErr = fmt.Errorf("open embedded library: %w", err)
			return
		}
		defaultLibrary, defaultErr = Load(sub)
	})
	return defaultLibrary, defaultErr
}

// LoadDir loads a library from a directory holding the three YAML files.
func LoadDir(dir string) (*Library, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat library dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library path is not a directory: %s", dir)
	}
	return Load(os.DirFS(dir))
}

// Load parses splits, workouts and catalog from fsys.
func Load(fsys fs.FS) (*Library, error) {
	var sf splitsFile
	if err := decodeFile(fsys, SplitsFile, &sf); err != nil {
		return nil, err
	}
	var wf workoutsFile
	if err := decodeFile(fsys, WorkoutsFile, &wf); err != nil {
		return nil, err
	}
	var cf catalogFile
	if err := decodeFile(fsys, CatalogFile, &cf); err != nil {
		return nil, err
	}
	return New(sf.Splits, wf.Workouts, catalog.Catalog{Categories: cf.Categories}, cf.Aliases)
}

func decodeFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// New builds a library from already-decoded parts. Split ids and workout
// names must be unique and non-empty; referential integrity is left to
// Verify so that a damaged library still loads.
func New(splits []Split, workouts []Workout, cat catalog.Catalog, aliases map[string]string) (*Library, error) {
	lib := &Library{
		splitIndex: make(map[string]int, len(splits)),
		workouts:   make(map[string]Workout, len(workouts)),
		catalog:    cat.Clone(),
		aliases:    make(map[string]string, len(aliases)),
	}

	for _, s := range splits {
		if strings.TrimSpace(s.ID) == "" {
			return nil, fmt.Errorf("split %q has no id", s.Name)
		}
		if _, dup := lib.splitIndex[s.ID]; dup {
			return nil, fmt.Errorf("duplicate split id %q", s.ID)
		}
		lib.splitIndex[s.ID] = len(lib.splits)
		lib.splits = append(lib.splits, s.clone())
	}

	for _, w := range workouts {
		if strings.TrimSpace(w.Name) == "" {
			return nil, fmt.Errorf("workout with %d exercises has no name", len(w.Exercises))
		}
		if _, dup := lib.workouts[w.Name]; dup {
			return nil, fmt.Errorf("duplicate workout %q", w.Name)
		}
		lib.workouts[w.Name] = w.clone()
		lib.workoutOrder = append(lib.workoutOrder, w.Name)
	}

	for k, v := range aliases {
		lib.aliases[k] = v
	}
	lib.normalizer = catalog.NewNormalizer(cat, lib.aliases)
	return lib, nil
}

// Split returns the split with id.
func (l *Library) Split(id string) (Split, bool) {
	i, ok := l.splitIndex[id]
	if !ok {
		return Split{}, false
	}
	return l.splits[i].clone(), true
}

// Splits returns every split in file order.
func (l *Library) Splits() []Split {
	out := make([]Split, len(l.splits))
	for i, s := range l.splits {
		out[i] = s.clone()
	}
	return out
}

// Workout returns the workout definition called name.
func (l *Library) Workout(name string) (Workout, bool) {
	w, ok := l.workouts[name]
	if !ok {
		return Workout{}, false
	}
	return w.clone(), true
}

// HasWorkout reports whether name is defined without copying it.
func (l *Library) HasWorkout(name string) bool {
	_, ok := l.workouts[name]
	return ok
}

// WorkoutNames returns every workout name in file order.
func (l *Library) WorkoutNames() []string {
	return append([]string(nil), l.workoutOrder...)
}

// Catalog returns the exercise catalog.
func (l *Library) Catalog() catalog.Catalog {
	return l.catalog.Clone()
}

// Normalizer returns the name normalizer built over the catalog and aliases.
func (l *Library) Normalizer() *catalog.Normalizer {
	return l.normalizer
}
