// ABOUTME: Tests for the HTTP API using httptest against a real SQLite store.
// ABOUTME: Covers generation, library inspection, template CRUD and middleware.
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfulp2020/forgefitness/internal/catalog"
	"github.com/mfulp2020/forgefitness/internal/generator"
	"github.com/mfulp2020/forgefitness/internal/knowledge"
	"github.com/mfulp2020/forgefitness/internal/models"
	"github.com/mfulp2020/forgefitness/internal/prescription"
	"github.com/mfulp2020/forgefitness/internal/storage"
	"github.com/mfulp2020/forgefitness/internal/testhelpers"
)

var testDefaults = models.GenerationRequest{
	Level:       models.LevelIntermediate,
	SplitID:     "full_body",
	DaysPerWeek: 3,
	Focus:       models.FocusGeneral,
	Finisher:    models.FinisherNone,
	Units:       models.UnitsPounds,
}

func newTestServer(t *testing.T, withRepo bool) (*Server, *storage.DB) {
	t.Helper()

	lib, err := knowledge.Default()
	require.NoError(t, err)
	log := testhelpers.NewLogger(t)
	gen := generator.New(lib, generator.WithLogger(log))

	if !withRepo {
		return New(gen, nil, testDefaults, log), nil
	}

	db, err := storage.Open(filepath.Join(t.TempDir(), "forge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(gen, db, testDefaults, log), db
}

func do(t *testing.T, s http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListSplits(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/api/v1/splits", "")
	require.Equal(t, http.StatusOK, rec.Code)

	splits := decode[[]knowledge.Split](t, rec)
	require.NotEmpty(t, splits)
	assert.Equal(t, "full_body", splits[0].ID)
	for _, sp := range splits {
		assert.Len(t, sp.Days, knowledge.MaxDays, sp.ID)
	}
}

func TestResolveDays(t *testing.T) {
	s, _ := newTestServer(t, false)

	tests := []struct {
		target   string
		wantCode int
		wantDays int
		want     []string
	}{
		{"/api/v1/splits/full_body/days/3", http.StatusOK, 3, []string{"Full Body A", "Full Body B", "Full Body C"}},
		{"/api/v1/splits/push_pull_legs/days/3", http.StatusOK, 3, []string{"Push A", "Pull A", "Legs A"}},
		{"/api/v1/splits/full_body/days/0", http.StatusOK, 1, []string{"Full Body A"}},
		{"/api/v1/splits/full_body/days/12", http.StatusOK, 7, nil},
		{"/api/v1/splits/full_body/days/three", http.StatusBadRequest, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantCode != http.StatusOK {
				return
			}
			got := decode[DaysResponse](t, rec)
			assert.Equal(t, tt.wantDays, got.Days)
			assert.Len(t, got.Workouts, tt.wantDays)
			if tt.want != nil {
				assert.Equal(t, tt.want, got.Workouts)
			}
		})
	}
}

func TestGenerateDefaults(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/api/v1/programs", `{}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[ProgramResponse](t, rec)
	assert.Equal(t, testDefaults, got.Request)
	assert.False(t, got.Saved)
	assert.Empty(t, got.Warnings)
	require.Len(t, got.Templates, 3)
	assert.Equal(t, "Full Body A", got.Templates[0].Name)
	for _, tpl := range got.Templates {
		assert.NotEmpty(t, tpl.Exercises, tpl.Name)
	}
}

func TestGenerateWithOptions(t *testing.T) {
	s, _ := newTestServer(t, false)

	body := `{"level":"beginner","split_id":"push_pull_legs","days_per_week":3,"focus":"fat-loss","finisher":"core_cardio","units":"kg"}`
	rec := do(t, s, http.MethodPost, "/api/v1/programs", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[ProgramResponse](t, rec)
	assert.Equal(t, models.FocusFatLoss, got.Request.Focus)
	assert.Equal(t, models.UnitsKilograms, got.Request.Units)
	require.Len(t, got.Templates, 3)

	exs := got.Templates[0].Exercises
	require.GreaterOrEqual(t, len(exs), 2)
	assert.Equal(t, generator.CoreFinisherName, exs[len(exs)-2].Name)
	assert.Equal(t, generator.CardioFinisherName, exs[len(exs)-1].Name)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	s, _ := newTestServer(t, false)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"invalid json", `{level`, "invalid JSON"},
		{"bad level", `{"level":"elite"}`, "invalid level"},
		{"bad focus", `{"focus":"zen"}`, "invalid focus"},
		{"bad finisher", `{"finisher":"yoga"}`, "finisher"},
		{"bad units", `{"units":"stone"}`, "units"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/programs", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]string](t, rec)["error"], tt.wantMsg)
		})
	}
}

func TestGenerateAbsorbsOutOfRange(t *testing.T) {
	s, _ := newTestServer(t, false)

	tests := []struct {
		name          string
		body          string
		wantDays      int
		wantFirst     string
		wantTemplates int
		wantWarning   string
	}{
		{"too many days", `{"days_per_week":9}`, 9, "Full Body A", 7, "using 7"},
		{"negative days", `{"days_per_week":-2}`, -2, "Full Body A", 1, "using 1"},
		{"explicit zero days", `{"days_per_week":0}`, 0, "Full Body A", 1, "using 1"},
		{"unknown split", `{"split_id":"crossfit","days_per_week":4}`, 4, "Full Body A", 1, `unknown split "crossfit"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/programs", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			got := decode[ProgramResponse](t, rec)
			assert.Equal(t, tt.wantDays, got.Request.DaysPerWeek)
			require.Len(t, got.Templates, tt.wantTemplates)
			assert.Equal(t, tt.wantFirst, got.Templates[0].Name)
			require.Len(t, got.Warnings, 1)
			assert.Contains(t, got.Warnings[0], tt.wantWarning)
		})
	}
}

func TestGenerateSave(t *testing.T) {
	s, db := newTestServer(t, true)

	rec := do(t, s, http.MethodPost, "/api/v1/programs?save=true", `{"days_per_week":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[ProgramResponse](t, rec)
	assert.True(t, got.Saved)
	require.Len(t, got.Templates, 2)

	saved, err := db.ListTemplates(0)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, got.Templates[0].ID, saved[0].ID)
	assert.Equal(t, got.Templates[1].ID, saved[1].ID)
}

func TestGenerateSaveWithoutRepo(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/api/v1/programs?save=true", `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLibraryExercises(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/api/v1/workouts/Chest%20%26%20Triceps/exercises", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	exs := decode[[]models.TemplateExercise](t, rec)
	assert.Len(t, exs, generator.MaxLibraryExercises)

	rec = do(t, s, http.MethodGet, "/api/v1/workouts/Full%20Body%20A/exercises?level=beginner&focus=strength", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	exs = decode[[]models.TemplateExercise](t, rec)
	require.NotEmpty(t, exs)
	assert.Equal(t, "Back Squat", exs[0].Name)
	assert.Equal(t, 3, exs[0].DefaultSets)

	rec = do(t, s, http.MethodGet, "/api/v1/workouts/Full%20Body%20A/exercises?level=elite", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/workouts/Arm%20Day%20Deluxe/exercises", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerifyLibrary(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/api/v1/library/verify", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[VerifyResponse](t, rec)
	assert.True(t, got.OK, got.Diagnostics)
	assert.Empty(t, got.Diagnostics)
}

func TestParsePrescription(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/api/v1/prescriptions/parse?token=4%20x%206-8", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[ParseResponse](t, rec)
	assert.Equal(t, "4 x 6-8", got.Token)
	assert.Equal(t, "4x6-8", got.Canonical)
	assert.False(t, got.Fallback)
	assert.Equal(t, prescription.KindReps, got.Prescription.Kind)
	assert.Equal(t, 4, got.Prescription.Sets)
	assert.Equal(t, models.RepRange{Min: 6, Max: 8}, got.Prescription.Reps)

	rec = do(t, s, http.MethodGet, "/api/v1/prescriptions/parse?token=whatever%20feels%20good", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[ParseResponse](t, rec).Fallback)

	rec = do(t, s, http.MethodGet, "/api/v1/prescriptions/parse", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNormalizeExercise(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/api/v1/exercises/normalize?name=bench%20press", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[catalog.Result](t, rec)
	assert.Equal(t, "Barbell Bench Press", got.Name)
	assert.Equal(t, catalog.MatchAlias, got.Match)

	rec = do(t, s, http.MethodGet, "/api/v1/exercises/normalize?name=%20", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTemplatesCRUD(t *testing.T) {
	s, db := newTestServer(t, true)

	rec := do(t, s, http.MethodGet, "/api/v1/templates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/api/v1/programs?save=1", `{"days_per_week":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	program := decode[ProgramResponse](t, rec).Templates

	rec = do(t, s, http.MethodGet, "/api/v1/templates?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]*storage.SavedTemplate](t, rec), 2)

	rec = do(t, s, http.MethodGet, "/api/v1/templates?limit=-3", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	prefix := program[1].ID.String()[:8]
	rec = do(t, s, http.MethodGet, "/api/v1/templates/"+prefix, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[storage.SavedTemplate](t, rec)
	assert.Equal(t, program[1].ID, got.ID)
	assert.Equal(t, program[1].Name, got.Name)
	assert.False(t, got.SavedAt.IsZero())

	rec = do(t, s, http.MethodDelete, "/api/v1/templates/"+prefix, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/templates/"+prefix, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/v1/templates/"+prefix, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	remaining, err := db.ListTemplates(0)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestTemplatesAmbiguousPrefix(t *testing.T) {
	s, db := newTestServer(t, true)

	a := models.NewTemplate("A", nil)
	b := models.NewTemplate("B", nil)
	a.ID[0], b.ID[0] = 0xab, 0xab
	a.ID[1], b.ID[1] = 0xcd, 0xcd
	require.NoError(t, db.SaveTemplates([]models.Template{*a, *b}))

	rec := do(t, s, http.MethodGet, "/api/v1/templates/abcd", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestTemplatesWithoutRepo(t *testing.T) {
	s, _ := newTestServer(t, false)

	for _, tt := range []struct{ method, target string }{
		{http.MethodGet, "/api/v1/templates"},
		{http.MethodGet, "/api/v1/templates/abcd"},
		{http.MethodDelete, "/api/v1/templates/abcd"},
	} {
		rec := do(t, s, tt.method, tt.target, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, tt.method+" "+tt.target)
	}
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := do(t, s, http.MethodOptions, "/api/v1/programs", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = do(t, s, http.MethodGet, "/healthz", "")
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, false)

	do(t, s, http.MethodGet, "/api/v1/splits", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "forge_http_requests_total")
	assert.Contains(t, body, `route="/api/v1/splits"`)
}
