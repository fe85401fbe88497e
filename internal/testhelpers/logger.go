// ABOUTME: Test logger that routes slog output to t.Log.
// ABOUTME: Logs only show up for failing or verbose tests.
package testhelpers

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/mfulp2020/forgefitness/internal/logging"
)

type tWriter struct {
	t testing.TB
}

func (w tWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	if out := strings.TrimSuffix(string(p), "\n"); out != "" {
		w.t.Log(out)
	}
	return len(p), nil
}

// NewLogger returns a debug-level logger writing to t.Log.
func NewLogger(t testing.TB) *slog.Logger {
	h := slog.NewTextHandler(tWriter{t: t}, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(logging.NewContextHandler(h))
}
