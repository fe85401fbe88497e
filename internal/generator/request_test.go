// ABOUTME: Tests for request preparation against defaults and the shipped library.
// ABOUTME: Table-driven; errors are matched by substring.
package generator

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mfulp2020/forgefitness/internal/models"
	"github.com/mfulp2020/forgefitness/internal/testhelpers"
)

func TestPrepareRequest(t *testing.T) {
	g := newTestGenerator(t)
	defaults := models.GenerationRequest{
		Level:       models.LevelIntermediate,
		SplitID:     "full_body",
		DaysPerWeek: 3,
		Focus:       models.FocusGeneral,
		Finisher:    models.FinisherNone,
		Units:       models.UnitsPounds,
	}

	tests := []struct {
		name    string
		req     models.GenerationRequest
		want    models.GenerationRequest
		wantErr string
	}{
		{
			name: "empty takes defaults except days",
			want: models.GenerationRequest{
				Level:    models.LevelIntermediate,
				SplitID:  "full_body",
				Focus:    models.FocusGeneral,
				Finisher: models.FinisherNone,
				Units:    models.UnitsPounds,
			},
		},
		{
			name: "aliases are parsed",
			req:  models.GenerationRequest{Level: "BEGINNER", SplitID: "upper_lower", DaysPerWeek: 4, Focus: "fat-loss", Finisher: "core-cardio", Units: "kgs"},
			want: models.GenerationRequest{
				Level:       models.LevelBeginner,
				SplitID:     "upper_lower",
				DaysPerWeek: 4,
				Focus:       models.FocusFatLoss,
				Finisher:    models.FinisherCoreCardio,
				Units:       models.UnitsKilograms,
			},
		},
		{name: "bad level", req: models.GenerationRequest{Level: "elite"}, wantErr: "invalid level"},
		{name: "bad focus", req: models.GenerationRequest{Focus: "zen"}, wantErr: "invalid focus"},
		{name: "bad finisher", req: models.GenerationRequest{Finisher: "yoga"}, wantErr: "invalid finisher"},
		{name: "bad units", req: models.GenerationRequest{Units: "stone"}, wantErr: "invalid units"},
		{
			name: "unknown split and wild days pass through",
			req:  models.GenerationRequest{SplitID: "crossfit", DaysPerWeek: 9},
			want: models.GenerationRequest{
				Level:       models.LevelIntermediate,
				SplitID:     "crossfit",
				DaysPerWeek: 9,
				Focus:       models.FocusGeneral,
				Finisher:    models.FinisherNone,
				Units:       models.UnitsPounds,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.PrepareRequest(tt.req, defaults)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("PrepareRequest() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PrepareRequest() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PrepareRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRequestWarnings(t *testing.T) {
	g := newTestGenerator(t)

	tests := []struct {
		name  string
		split string
		days  int
		want  []string
	}{
		{"in range", "full_body", 3, nil},
		{"above range", "full_body", 9, []string{"days_per_week 9 is outside 1-7, using 7"}},
		{"negative", "upper_lower", -2, []string{"days_per_week -2 is outside 1-7, using 1"}},
		{"zero", "full_body", 0, []string{"days_per_week 0 is outside 1-7, using 1"}},
		{"unknown split", "crossfit", 4, []string{`unknown split "crossfit", using Full Body A`}},
		{"both", "crossfit", 12, []string{
			"days_per_week 12 is outside 1-7, using 7",
			`unknown split "crossfit", using Full Body A`,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.RequestWarnings(models.GenerationRequest{SplitID: tt.split, DaysPerWeek: tt.days})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RequestWarnings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRequestWarningsMissingMapping(t *testing.T) {
	g := New(brokenLibrary(t), WithLogger(testhelpers.NewLogger(t)))

	got := g.RequestWarnings(models.GenerationRequest{SplitID: "broken", DaysPerWeek: 5})
	want := []string{"split broken has no 5-day mapping, using Full Body A"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RequestWarnings mismatch (-want +got):\n%s", diff)
	}
}

func TestPreparedRequestStillGenerates(t *testing.T) {
	g := newTestGenerator(t)
	defaults := models.GenerationRequest{Level: models.LevelBeginner, SplitID: "full_body", Focus: models.FocusGeneral}

	tests := []struct {
		name      string
		split     string
		days      int
		wantNames []string
	}{
		{"days clamped high", "full_body", 9, nil},
		{"days clamped low", "full_body", -2, []string{"Full Body A"}},
		{"unknown split", "crossfit", 4, []string{"Full Body A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := g.PrepareRequest(models.GenerationRequest{SplitID: tt.split, DaysPerWeek: tt.days}, defaults)
			if err != nil {
				t.Fatalf("PrepareRequest() unexpected error: %v", err)
			}
			templates := g.Generate(req)
			want := tt.wantNames
			if want == nil {
				want = g.ResolveDayNames(tt.split, 7)
			}
			var got []string
			for _, tpl := range templates {
				got = append(got, tpl.Name)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("template names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
