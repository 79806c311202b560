// Package pipeline orchestrates the full verification run: deck text to
// claims to verdicts to score, questions, and the assembled report.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sago-ai/sago/internal/deck"
	"github.com/sago-ai/sago/internal/extract"
	"github.com/sago-ai/sago/internal/llm"
	"github.com/sago-ai/sago/internal/model"
	"github.com/sago-ai/sago/internal/question"
	"github.com/sago-ai/sago/internal/report"
	"github.com/sago-ai/sago/internal/score"
	"github.com/sago-ai/sago/internal/search"
	"github.com/sago-ai/sago/internal/validate"
	"github.com/sago-ai/sago/internal/verify"
)

// Pipeline wires the components of one verification run. Data flows
// strictly forward; no component mutates another's output after handoff.
type Pipeline struct {
	parser      *deck.Parser
	extractor   *extract.ClaimExtractor
	engine      *verify.Engine
	aggregator  *score.Aggregator
	synthesizer *question.Synthesizer
	config      *model.Config
	log         *logrus.Logger
}

// New builds a pipeline from validated configuration
func New(cfg *model.Config, log *logrus.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	searcher := search.NewDuckDuckGoClient(cfg.Search)
	classifier := validate.NewAuthorityClassifier(cfg.Authority)

	var checker *validate.Checker
	if cfg.Verification.CheckEvidenceURLs {
		checker = validate.NewChecker(cfg.Search.Timeout, cfg.Search.UserAgent, cfg.Verification.Workers*2)
	}

	judge := verify.NewLLMJudge(provider, cfg.Verification.NumericTolerancePct)

	return &Pipeline{
		parser:      deck.NewParser(),
		extractor:   extract.NewClaimExtractor(provider, log),
		engine:      verify.NewEngine(judge, searcher, classifier, checker, cfg.Verification, log),
		aggregator:  score.NewAggregator(cfg.Scoring),
		synthesizer: question.NewSynthesizer(cfg.Questions),
		config:      cfg,
		log:         log,
	}, nil
}

// Analyze runs the complete verification of one pitch deck. Extraction
// failures abort the run; per-claim verification failures do not.
func (p *Pipeline) Analyze(ctx context.Context, pdfPath string) (*model.Report, error) {
	parsed, err := p.parser.Parse(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("parse deck: %w", err)
	}

	companyName := parsed.CompanyName()
	p.log.WithFields(logrus.Fields{"company": companyName, "pages": len(parsed.Pages)}).Info("deck parsed")

	claims, err := p.extractor.Extract(ctx, parsed.Pages)
	if err != nil {
		return nil, err // extract.ExtractionError, fatal
	}

	claims = p.extractor.Prioritize(claims, p.config.Verification.MaxClaims)
	p.log.WithField("claims", len(claims)).Info("claims extracted")

	verdicts := p.engine.VerifyAll(ctx, claims, companyName)

	overall := p.aggregator.Score(claims, verdicts)
	summary := p.aggregator.ExecutiveSummary(companyName, claims, verdicts, overall)
	risk := p.aggregator.RiskAssessment(claims, verdicts)

	questions := p.synthesizer.Synthesize(claims, verdicts, p.config.Investor)

	result, err := report.Assemble(report.Input{
		CompanyName:      companyName,
		DeckFilename:     parsed.Filename,
		OverallScore:     overall,
		ExecutiveSummary: summary,
		RiskAssessment:   risk,
		Claims:           claims,
		Verdicts:         verdicts,
		Questions:        questions,
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"score":     fmt.Sprintf("%.2f", overall),
		"questions": len(questions),
	}).Info("analysis complete")

	return result, nil
}

// Render writes the report to the requested output paths.
func (p *Pipeline) Render(r *model.Report, jsonPath, mdPath string) error {
	if jsonPath != "" {
		if err := report.WriteJSON(r, jsonPath); err != nil {
			return err
		}
		p.log.WithField("path", jsonPath).Info("wrote JSON report")
	}

	if mdPath != "" {
		f, err := os.Create(mdPath)
		if err != nil {
			return fmt.Errorf("create markdown report: %w", err)
		}
		defer func() { _ = f.Close() }()

		if err := report.WriteMarkdown(r, f); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		p.log.WithField("path", mdPath).Info("wrote Markdown report")
	}

	return nil
}
