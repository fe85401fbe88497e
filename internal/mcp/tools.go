// ABOUTME: MCP tool implementations for program generation and saved templates.
// ABOUTME: Generation tools are pure; save/list/get go through the template store.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mfulp2020/forgefitness/internal/catalog"
	"github.com/mfulp2020/forgefitness/internal/generator"
	"github.com/mfulp2020/forgefitness/internal/models"
	"github.com/mfulp2020/forgefitness/internal/prescription"
	"github.com/mfulp2020/forgefitness/internal/storage"
)

var errNoStorage = errors.New("template storage is not configured")

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_program",
		Description: "Generate a weekly training program: one workout template per training day",
	}, s.handleGenerateProgram)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_program",
		Description: "Generate a weekly training program and save its templates",
	}, s.handleSaveProgram)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_splits",
		Description: "List the available weekly splits with their day mappings",
	}, s.handleListSplits)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "verify_library",
		Description: "Check the knowledge base for broken split mappings and unparseable prescriptions",
	}, s.handleVerifyLibrary)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "parse_prescription",
		Description: "Parse a sets/reps token such as 4x6-8, 3x30s or 3 rounds of 10",
	}, s.handleParsePrescription)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "normalize_exercise",
		Description: "Map a free-form exercise name onto its canonical catalog name",
	}, s.handleNormalizeExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_templates",
		Description: "List saved workout templates, newest first",
	}, s.handleListTemplates)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_template",
		Description: "Get a saved workout template with all its exercises",
	}, s.handleGetTemplate)
}

// Tool input/output types

type programInput struct {
	Level    string `json:"level,omitempty" jsonschema:"Experience level: beginner, intermediate or advanced"`
	Split    string `json:"split,omitempty" jsonschema:"Split id, see list_splits"`
	Days     *int   `json:"days,omitempty" jsonschema:"Training days per week (1-7); other values are clamped"`
	Focus    string `json:"focus,omitempty" jsonschema:"Goal: general, hypertrophy, strength, fat_loss or athletic"`
	Finisher string `json:"finisher,omitempty" jsonschema:"Finisher: none, core, cardio or core_cardio"`
	Units    string `json:"units,omitempty" jsonschema:"Load units: lb or kg"`
}

func (in programInput) request(defaultDays int) models.GenerationRequest {
	days := defaultDays
	if in.Days != nil {
		days = *in.Days
	}
	return models.GenerationRequest{
		Level:       models.Level(strings.TrimSpace(in.Level)),
		SplitID:     strings.TrimSpace(in.Split),
		DaysPerWeek: days,
		Focus:       models.Focus(strings.TrimSpace(in.Focus)),
		Finisher:    models.FinisherOption(strings.TrimSpace(in.Finisher)),
		Units:       models.Units(strings.TrimSpace(in.Units)),
	}
}

type programOutput struct {
	Request   models.GenerationRequest `json:"request"`
	Templates []models.Template        `json:"templates"`
	Warnings  []string                 `json:"warnings,omitempty"`
}

type savedProgramOutput struct {
	IDs      []string `json:"ids"`
	Names    []string `json:"names"`
	Warnings []string `json:"warnings,omitempty"`
	Message  string   `json:"message"`
}

type emptyInput struct{}

type verifyOutput struct {
	OK          bool     `json:"ok"`
	Diagnostics []string `json:"diagnostics"`
	Message     string   `json:"message"`
}

type parseInput struct {
	Token string `json:"token" jsonschema:"The sets/reps token to parse"`
}

type parseOutput struct {
	Token      string `json:"token"`
	Normalized string `json:"normalized"`
	Canonical  string `json:"canonical"`
	Kind       string `json:"kind"`
	Sets       int    `json:"sets"`
	RepMin     int    `json:"rep_min"`
	RepMax     int    `json:"rep_max"`
	TimeUnit   string `json:"time_unit,omitempty"`
	RestSec    int    `json:"rest_sec,omitempty"`
	AMRAP      bool   `json:"amrap,omitempty"`
	Fallback   bool   `json:"fallback"`
}

type normalizeInput struct {
	Name string `json:"name" jsonschema:"Exercise name as written, e.g. bench press"`
}

type listTemplatesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type templateSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Exercises int    `json:"exercises"`
	SavedAt   string `json:"saved_at"`
}

type listTemplatesOutput struct {
	Templates []templateSummary `json:"templates"`
	Message   string            `json:"message,omitempty"`
}

type getTemplateInput struct {
	ID string `json:"id" jsonschema:"Template ID or prefix"`
}

// Tool handlers

func (s *Server) handleGenerateProgram(ctx context.Context, req *mcp.CallToolRequest, input programInput) (*mcp.CallToolResult, any, error) {
	r, err := s.gen.PrepareRequest(input.request(s.defaults.DaysPerWeek), s.defaults)
	if err != nil {
		return nil, nil, err
	}
	return nil, programOutput{
		Request:   r,
		Templates: s.gen.Generate(r),
		Warnings:  s.gen.RequestWarnings(r),
	}, nil
}

func (s *Server) handleSaveProgram(ctx context.Context, req *mcp.CallToolRequest, input programInput) (*mcp.CallToolResult, savedProgramOutput, error) {
	if s.repo == nil {
		return nil, savedProgramOutput{}, errNoStorage
	}
	r, err := s.gen.PrepareRequest(input.request(s.defaults.DaysPerWeek), s.defaults)
	if err != nil {
		return nil, savedProgramOutput{}, err
	}

	templates := s.gen.Generate(r)
	if err := s.repo.SaveTemplates(templates); err != nil {
		return nil, savedProgramOutput{}, fmt.Errorf("failed to save program: %w", err)
	}

	out := savedProgramOutput{
		IDs:      make([]string, len(templates)),
		Names:    make([]string, len(templates)),
		Warnings: s.gen.RequestWarnings(r),
	}
	for i, t := range templates {
		out.IDs[i] = t.ID.String()[:8]
		out.Names[i] = t.Name
	}
	out.Message = fmt.Sprintf("Saved %d templates (%s, %d days)", len(templates), r.SplitID, generator.ClampDays(r.DaysPerWeek))
	s.log.InfoContext(ctx, "saved program", "split", r.SplitID, "templates", len(templates))
	return nil, out, nil
}

func (s *Server) handleListSplits(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	return nil, s.gen.Library().Splits(), nil
}

func (s *Server) handleVerifyLibrary(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, verifyOutput, error) {
	diags := s.gen.VerifyLibrary()
	out := verifyOutput{OK: len(diags) == 0, Diagnostics: diags}
	if out.OK {
		out.Message = "Library OK."
	} else {
		out.Message = fmt.Sprintf("%d problems found.", len(diags))
	}
	return nil, out, nil
}

func (s *Server) handleParsePrescription(ctx context.Context, req *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	if strings.TrimSpace(input.Token) == "" {
		return nil, parseOutput{}, errors.New("token is required")
	}

	p := prescription.Parse(input.Token)
	out := parseOutput{
		Token:      input.Token,
		Normalized: prescription.Normalize(input.Token),
		Canonical:  p.String(),
		Kind:       p.Kind.String(),
		Sets:       p.Sets,
		RepMin:     p.Reps.Min,
		RepMax:     p.Reps.Max,
		TimeUnit:   string(p.TimeUnit),
		AMRAP:      p.AMRAP,
		Fallback:   p.Kind == prescription.KindFallback,
	}
	if p.RestSec != nil {
		out.RestSec = *p.RestSec
	}
	return nil, out, nil
}

func (s *Server) handleNormalizeExercise(ctx context.Context, req *mcp.CallToolRequest, input normalizeInput) (*mcp.CallToolResult, catalog.Result, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, catalog.Result{}, errors.New("name is required")
	}
	return nil, s.gen.Normalizer().Lookup(input.Name), nil
}

func (s *Server) handleListTemplates(ctx context.Context, req *mcp.CallToolRequest, input listTemplatesInput) (*mcp.CallToolResult, listTemplatesOutput, error) {
	if s.repo == nil {
		return nil, listTemplatesOutput{}, errNoStorage
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	saved, err := s.repo.ListTemplates(input.Limit)
	if err != nil {
		return nil, listTemplatesOutput{}, fmt.Errorf("failed to list templates: %w", err)
	}

	out := listTemplatesOutput{Templates: make([]templateSummary, 0, len(saved))}
	for _, st := range saved {
		out.Templates = append(out.Templates, templateSummary{
			ID:        st.ID.String()[:8],
			Name:      st.Name,
			Exercises: len(st.Exercises),
			SavedAt:   st.SavedAt.Format(time.RFC3339),
		})
	}
	if len(saved) == 0 {
		out.Message = "No templates found."
	}
	return nil, out, nil
}

func (s *Server) handleGetTemplate(ctx context.Context, req *mcp.CallToolRequest, input getTemplateInput) (*mcp.CallToolResult, any, error) {
	if s.repo == nil {
		return nil, nil, errNoStorage
	}
	t, err := s.repo.GetTemplate(input.ID)
	if err != nil {
		if errors.Is(err, storage.ErrAmbiguousPrefix) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("template not found: %s", input.ID)
	}
	return nil, t, nil
}
