// ABOUTME: Tests for loading the knowledge base from embedded and custom YAML.
// ABOUTME: Verifies copies are returned and malformed libraries are rejected.
package knowledge

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfulp2020/forgefitness/internal/models"
)

func TestDefaultLoads(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)
	require.NotNil(t, lib)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, lib, again, "Default should load once")

	ids := make([]string, 0)
	for _, s := range lib.Splits() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"full_body", "upper_lower", "push_pull_legs", "body_part", "athletic"}, ids)

	fb, ok := lib.Split("full_body")
	require.True(t, ok)
	assert.Equal(t, []string{"Full Body A", "Full Body B", "Full Body C"}, fb.DayNames(3))
	assert.Nil(t, fb.DayNames(8))

	assert.True(t, lib.HasWorkout("Full Body A"))
	assert.False(t, lib.HasWorkout("Full Body Z"))
	assert.NotEmpty(t, lib.Catalog().Leaves())
}

func TestEmbeddedNamesResolve(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)

	n := lib.Normalizer()
	for _, name := range lib.WorkoutNames() {
		w, _ := lib.Workout(name)
		for _, e := range w.Exercises {
			assert.Truef(t, n.Known(e.Name), "%s: exercise %q is not in the catalog or alias table", name, e.Name)
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)

	s, _ := lib.Split("full_body")
	s.Days["3"][0] = "Mutated"
	w, _ := lib.Workout("Full Body A")
	w.Exercises[0].Name = "Mutated"
	w.Exercises[0].SetsReps[models.LevelBeginner] = "1x1"
	cat := lib.Catalog()
	cat.Categories[0].Exercises[0] = "Mutated"

	s2, _ := lib.Split("full_body")
	assert.Equal(t, "Full Body A", s2.Days["3"][0])
	w2, _ := lib.Workout("Full Body A")
	assert.Equal(t, "Back Squat", w2.Exercises[0].Name)
	assert.Equal(t, "3x8-10", w2.Exercises[0].SetsReps[models.LevelBeginner])
	assert.NotEqual(t, "Mutated", lib.Catalog().Categories[0].Exercises[0])
}

func TestExerciseSpecPrescription(t *testing.T) {
	spec := ExerciseSpec{
		Name: "Back Squat",
		SetsReps: map[models.Level]string{
			models.LevelBeginner: "3x8-10",
			models.LevelAdvanced: "5x5",
		},
	}

	tests := []struct {
		level models.Level
		want  string
	}{
		{models.LevelBeginner, "3x8-10"},
		{models.LevelAdvanced, "5x5"},
		{models.LevelIntermediate, "3x8-10"},
		{models.Level("elite"), "3x8-10"},
	}
	for _, tt := range tests {
		got, ok := spec.Prescription(tt.level)
		if !ok || got != tt.want {
			t.Errorf("Prescription(%q) = %q, %v, want %q", tt.level, got, ok, tt.want)
		}
	}

	if _, ok := (ExerciseSpec{Name: "Empty"}).Prescription(models.LevelBeginner); ok {
		t.Error("expected no prescription for a spec without tokens")
	}
}

const minimalSplits = `
splits:
  - id: tiny
    name: Tiny
    best_for: tests
    days:
      "1": [Day One]
`

const minimalWorkouts = `
workouts:
  - name: Day One
    exercises:
      - name: Squat
        sets_reps: {beginner: "3x5"}
`

const minimalCatalog = `
categories:
  - name: Legs
    exercises: [Back Squat]
aliases:
  Squat: Back Squat
`

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		SplitsFile:   {Data: []byte(minimalSplits)},
		WorkoutsFile: {Data: []byte(minimalWorkouts)},
		CatalogFile:  {Data: []byte(minimalCatalog)},
	}

	lib, err := Load(fsys)
	require.NoError(t, err)

	s, ok := lib.Split("tiny")
	require.True(t, ok)
	assert.Equal(t, "Tiny", s.Name)
	assert.Equal(t, "Back Squat", lib.Normalizer().Normalize("Squat"))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SplitsFile), []byte(minimalSplits), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, WorkoutsFile), []byte(minimalWorkouts), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, CatalogFile), []byte(minimalCatalog), 0600))

	lib, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Day One"}, lib.WorkoutNames())

	_, err = LoadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	_, err = LoadDir(filepath.Join(dir, SplitsFile))
	assert.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			name: "missing file",
			fsys: fstest.MapFS{
				SplitsFile:  {Data: []byte(minimalSplits)},
				CatalogFile: {Data: []byte(minimalCatalog)},
			},
		},
		{
			name: "bad yaml",
			fsys: fstest.MapFS{
				SplitsFile:   {Data: []byte("splits: [")},
				WorkoutsFile: {Data: []byte(minimalWorkouts)},
				CatalogFile:  {Data: []byte(minimalCatalog)},
			},
		},
		{
			name: "duplicate split",
			fsys: fstest.MapFS{
				SplitsFile:   {Data: []byte(minimalSplits + "  - id: tiny\n    name: Again\n")},
				WorkoutsFile: {Data: []byte(minimalWorkouts)},
				CatalogFile:  {Data: []byte(minimalCatalog)},
			},
		},
		{
			name: "duplicate workout",
			fsys: fstest.MapFS{
				SplitsFile:   {Data: []byte(minimalSplits)},
				WorkoutsFile: {Data: []byte(minimalWorkouts + "  - name: Day One\n    exercises: []\n")},
				CatalogFile:  {Data: []byte(minimalCatalog)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fsys)
			assert.Error(t, err)
		})
	}
}
