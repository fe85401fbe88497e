// ABOUTME: HTTP handlers for generation, library inspection and saved templates.
// ABOUTME: Bad enum input is a 400; storage misses are a 404.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mfulp2020/forgefitness/internal/generator"
	"github.com/mfulp2020/forgefitness/internal/models"
	"github.com/mfulp2020/forgefitness/internal/prescription"
	"github.com/mfulp2020/forgefitness/internal/storage"
)

// ProgramResponse is the body returned by POST /api/v1/programs.
type ProgramResponse struct {
	Request   models.GenerationRequest `json:"request"`
	Templates []models.Template        `json:"templates"`
	Warnings  []string                 `json:"warnings,omitempty"`
	Saved     bool                     `json:"saved"`
}

// DaysResponse is the body returned by the split day resolver.
type DaysResponse struct {
	Split    string   `json:"split"`
	Days     int      `json:"days"`
	Workouts []string `json:"workouts"`
}

// VerifyResponse is the body returned by the library verifier.
type VerifyResponse struct {
	OK          bool     `json:"ok"`
	Diagnostics []string `json:"diagnostics"`
}

// ParseResponse is the body returned by the prescription parser.
type ParseResponse struct {
	Token        string                    `json:"token"`
	Normalized   string                    `json:"normalized"`
	Canonical    string                    `json:"canonical"`
	Fallback     bool                      `json:"fallback"`
	Prescription prescription.Prescription `json:"prescription"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListSplits(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.gen.Library().Splits())
}

func (s *Server) handleResolveDays(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	days, err := strconv.Atoi(chi.URLParam(r, "days"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "days must be an integer")
		return
	}
	writeJSON(w, http.StatusOK, DaysResponse{
		Split:    id,
		Days:     generator.ClampDays(days),
		Workouts: s.gen.ResolveDayNames(id, days),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	// An omitted days_per_week keeps the default; an explicit one is clamped.
	req := models.GenerationRequest{DaysPerWeek: s.defaults.DaysPerWeek}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	req, err := s.gen.PrepareRequest(req, s.defaults)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := ProgramResponse{
		Request:   req,
		Templates: s.gen.Generate(req),
		Warnings:  s.gen.RequestWarnings(req),
	}

	if save, _ := strconv.ParseBool(r.URL.Query().Get("save")); save {
		if s.repo == nil {
			writeError(w, http.StatusServiceUnavailable, "template storage is not configured")
			return
		}
		if err := s.repo.SaveTemplates(resp.Templates); err != nil {
			s.log.ErrorContext(r.Context(), "save program failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Saved = true
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLibraryExercises(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid workout name")
		return
	}

	level, focus := s.defaults.Level, s.defaults.Focus
	q := r.URL.Query()
	if v := q.Get("level"); v != "" {
		if level, err = models.ParseLevel(v); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if v := q.Get("focus"); v != "" {
		if focus, err = models.ParseFocus(v); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if !s.gen.Library().HasWorkout(name) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown workout %q", name))
		return
	}
	writeJSON(w, http.StatusOK, s.gen.LibraryExercises(name, level, focus))
}

func (s *Server) handleVerify(w http.ResponseWriter, _ *http.Request) {
	diags := s.gen.VerifyLibrary()
	writeJSON(w, http.StatusOK, VerifyResponse{OK: len(diags) == 0, Diagnostics: diags})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if strings.TrimSpace(token) == "" {
		writeError(w, http.StatusBadRequest, "token parameter required")
		return
	}
	p := prescription.Parse(token)
	writeJSON(w, http.StatusOK, ParseResponse{
		Token:        token,
		Normalized:   prescription.Normalize(token),
		Canonical:    p.String(),
		Fallback:     p.Kind == prescription.KindFallback,
		Prescription: p,
	})
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "name parameter required")
		return
	}
	writeJSON(w, http.StatusOK, s.gen.Normalizer().Lookup(name))
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	templates, err := s.repo.ListTemplates(limit)
	if err != nil {
		s.writeStorageError(w, r, err)
		return
	}
	if templates == nil {
		templates = []*storage.SavedTemplate{}
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.repo.GetTemplate(chi.URLParam(r, "id"))
	if err != nil {
		s.writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteTemplate(chi.URLParam(r, "id")); err != nil {
		s.writeStorageError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeStorageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrAmbiguousPrefix):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.ErrorContext(r.Context(), "storage error", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
