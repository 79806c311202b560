// Package verify implements the verification engine: per-claim query
// formulation, evidence retrieval, and evidence-claim reconciliation.
package verify

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sago-ai/sago/internal/model"
	"github.com/sago-ai/sago/internal/search"
	"github.com/sago-ai/sago/internal/validate"
	"github.com/sago-ai/sago/internal/worker"
)

// sleepFn is the backoff sleep between retries (injectable for tests)
var sleepFn = time.Sleep

const maxCitedEvidence = 5

// Engine verifies claims independently: each claim owns its queries,
// evidence, and verdict, so claims are an embarrassingly parallel unit of
// work dispatched through a bounded pool.
type Engine struct {
	judge      Judge
	searcher   search.Searcher
	classifier *validate.AuthorityClassifier
	checker    *validate.Checker // nil unless evidence URL probing is enabled
	config     model.VerificationConfig
	log        *logrus.Entry
}

// NewEngine creates a verification engine
func NewEngine(judge Judge, searcher search.Searcher, classifier *validate.AuthorityClassifier, checker *validate.Checker, config model.VerificationConfig, log *logrus.Logger) *Engine {
	return &Engine{
		judge:      judge,
		searcher:   searcher,
		classifier: classifier,
		checker:    checker,
		config:     config,
		log:        log.WithField("component", "verify"),
	}
}

// VerifyAll verifies claims concurrently through a bounded worker pool and
// fans results into a mapping keyed by claim id. Each key is written by
// exactly one task; the map itself is assembled only after all tasks finish,
// so completion order never leaks into the output.
func (e *Engine) VerifyAll(ctx context.Context, claims []model.Claim, companyName string) map[string]model.Verdict {
	verdicts := make(map[string]model.Verdict, len(claims))
	if len(claims) == 0 {
		return verdicts
	}

	pool := worker.NewPool(ctx, e.config.Workers)
	pool.Start()

	for _, claim := range claims {
		pool.Submit(&verifyJob{engine: e, claim: claim, companyName: companyName})
	}

	for _, result := range pool.Wait() {
		vr := result.(*verifyResult)
		verdicts[vr.verdict.ClaimID] = vr.verdict
	}

	// Cancellation can leave claims without a verdict; resolve them so the
	// claim/verdict bijection holds downstream.
	for _, claim := range claims {
		if _, ok := verdicts[claim.ID]; !ok {
			verdicts[claim.ID] = model.Unverifiable(claim.ID,
				"Verification did not complete for this claim.",
				"verification unavailable: run interrupted")
		}
	}

	return verdicts
}

// verifyJob adapts one claim verification to the worker pool
type verifyJob struct {
	engine      *Engine
	claim       model.Claim
	companyName string
}

func (j *verifyJob) Execute(ctx context.Context) worker.Result {
	return &verifyResult{verdict: j.engine.Verify(ctx, j.claim, j.companyName)}
}

type verifyResult struct {
	verdict model.Verdict
}

func (r *verifyResult) GetError() error { return nil }

// Verify runs the full verification of a single claim. It never returns an
// error: every failure mode resolves to an unverifiable verdict with a red
// flag so one claim's trouble cannot block the rest of the run.
func (e *Engine) Verify(ctx context.Context, claim model.Claim, companyName string) model.Verdict {
	log := e.log.WithField("claim", claim.ID)

	evidence, searchErr := e.gatherEvidence(ctx, claim, companyName)
	if searchErr != nil && len(evidence) == 0 {
		log.WithError(searchErr).Warn("evidence retrieval failed")
		return model.Unverifiable(claim.ID,
			"Evidence retrieval failed; the claim could not be checked against external sources.",
			"verification unavailable: "+searchErr.Error())
	}

	if len(evidence) == 0 {
		return model.Unverifiable(claim.ID,
			"No relevant evidence found through web search. This claim could not be independently verified.",
			"no external sources found for this claim")
	}

	rec, err := e.reconcileWithRetry(ctx, claim, evidence)
	if err != nil {
		log.WithError(err).Warn("reconciliation failed")
		return model.Unverifiable(claim.ID,
			"The language model could not reconcile the claim with the retrieved evidence.",
			"verification unavailable: "+err.Error())
	}

	if rec.Status == model.StatusUnverifiable {
		return model.Unverifiable(claim.ID, rec.Summary, rec.RedFlags...)
	}

	cited := selectCited(evidence, rec.CitedURLs)
	verdict := model.Verdict{
		ClaimID:       claim.ID,
		Status:        rec.Status,
		Confidence:    e.scoreConfidence(rec.Confidence, cited),
		Summary:       rec.Summary,
		CitedEvidence: cited,
		RedFlags:      rec.RedFlags,
	}

	if e.checker != nil {
		verdict.RedFlags = append(verdict.RedFlags, e.probeCited(ctx, cited)...)
	}

	return verdict
}

// gatherEvidence issues the claim's queries and merges results, deduplicated
// by URL across queries. A query that fails after one retry is skipped; the
// returned error is non-nil only when every query failed.
func (e *Engine) gatherEvidence(ctx context.Context, claim model.Claim, companyName string) ([]model.Evidence, error) {
	queries := BuildQueries(claim, companyName, e.config.MaxQueriesPerClaim)

	seen := make(map[string]bool)
	var merged []model.Evidence
	var lastErr error
	failures := 0

	for _, query := range queries {
		results, err := e.searchWithRetry(ctx, query)
		if err != nil {
			failures++
			lastErr = err
			continue
		}
		for _, ev := range results {
			if ev.URL == "" || seen[ev.URL] {
				continue
			}
			seen[ev.URL] = true
			merged = append(merged, ev)
		}
	}

	if failures == len(queries) {
		return nil, fmt.Errorf("all %d queries failed: %w", failures, lastErr)
	}

	return e.classifier.Annotate(merged), nil
}

// searchWithRetry retries a failed query once with backoff.
func (e *Engine) searchWithRetry(ctx context.Context, query string) ([]model.Evidence, error) {
	results, err := e.searcher.Search(ctx, query)
	if err == nil {
		return results, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	sleepFn(e.config.RetryBackoff)

	return e.searcher.Search(ctx, query)
}

// reconcileWithRetry retries a failed model call once with backoff.
func (e *Engine) reconcileWithRetry(ctx context.Context, claim model.Claim, evidence []model.Evidence) (*Reconciliation, error) {
	rec, err := e.judge.Reconcile(ctx, claim, evidence)
	if err == nil {
		return rec, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	sleepFn(e.config.RetryBackoff)

	return e.judge.Reconcile(ctx, claim, evidence)
}

// scoreConfidence folds evidence quantity and source authority into the
// judge's confidence. More citations from higher-tier sources push the
// scalar up; a single generic web page pulls it down.
func (e *Engine) scoreConfidence(judgeConfidence float64, cited []model.Evidence) float64 {
	if len(cited) == 0 {
		return clamp01(judgeConfidence * 0.5)
	}

	authoritySum := 0.0
	for _, ev := range cited {
		authoritySum += ev.Authority.Weight()
	}
	authorityMean := authoritySum / float64(len(cited))

	quantity := float64(len(cited)) / 3.0
	if quantity > 1 {
		quantity = 1
	}

	return clamp01(judgeConfidence * (0.55 + 0.30*authorityMean + 0.15*quantity))
}

// probeCited checks the cited URLs for accessibility and reports dead links
// as red flags.
func (e *Engine) probeCited(ctx context.Context, cited []model.Evidence) []string {
	var flags []string
	for _, result := range e.checker.Check(ctx, cited) {
		if result.Disallowed {
			continue
		}
		if !result.Accessible {
			flags = append(flags, "cited source not accessible: "+result.URL)
		}
	}
	return flags
}

// selectCited returns the evidence items the judge actually cited, in
// retrieval order. An empty citation list keeps the strongest evidence so
// the verdict remains auditable.
func selectCited(evidence []model.Evidence, citedURLs []string) []model.Evidence {
	if len(citedURLs) == 0 {
		if len(evidence) > maxCitedEvidence {
			return evidence[:maxCitedEvidence]
		}
		return evidence
	}

	wanted := make(map[string]bool, len(citedURLs))
	for _, u := range citedURLs {
		wanted[u] = true
	}

	var cited []model.Evidence
	for _, ev := range evidence {
		if wanted[ev.URL] {
			cited = append(cited, ev)
		}
		if len(cited) == maxCitedEvidence {
			break
		}
	}

	if cited == nil {
		if len(evidence) > maxCitedEvidence {
			return evidence[:maxCitedEvidence]
		}
		return evidence
	}
	return cited
}
