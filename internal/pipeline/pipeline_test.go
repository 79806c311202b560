package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sago-ai/sago/internal/deck"
	"github.com/sago-ai/sago/internal/model"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.LLM.APIKey = "test-key"
	return cfg
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Verification.Workers = 0

	if _, err := New(cfg, quietLogger()); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestNew_RejectsUnknownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.Provider = "mystery"

	if _, err := New(cfg, quietLogger()); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestAnalyze_UnreadableDeck(t *testing.T) {
	p, err := New(testConfig(), quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = p.Analyze(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))

	var unreadable *deck.UnreadableDocumentError
	if !errors.As(err, &unreadable) {
		t.Fatalf("expected UnreadableDocumentError, got %v", err)
	}
}

func TestRender(t *testing.T) {
	p, err := New(testConfig(), quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report := &model.Report{
		CompanyName:  "Acme",
		DeckFilename: "acme.pdf",
		AnalyzedAt:   time.Now().UTC(),
		OverallScore: 0.7,
		Claims:       []model.Claim{{ID: "c1", Text: "$5M ARR", Category: model.CategoryRevenue}},
		Verdicts: map[string]model.Verdict{
			"c1": {ClaimID: "c1", Status: model.StatusVerified, Confidence: 0.9, CitedEvidence: []model.Evidence{}},
		},
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")

	if err := p.Render(report, jsonPath, mdPath); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read JSON output: %v", err)
	}
	if restored, err := model.UnmarshalReport(jsonData); err != nil || restored.CompanyName != "Acme" {
		t.Errorf("JSON output did not round trip: %v", err)
	}

	mdData, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read Markdown output: %v", err)
	}
	if !strings.Contains(string(mdData), "# Pitch Deck Verification: Acme") {
		t.Error("Markdown output missing title")
	}
}

func TestRender_SkipsEmptyPaths(t *testing.T) {
	p, err := New(testConfig(), quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report := &model.Report{CompanyName: "Acme", Verdicts: map[string]model.Verdict{}}
	if err := p.Render(report, "", ""); err != nil {
		t.Errorf("empty paths should be a no-op, got %v", err)
	}
}
