package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/sago-ai/sago/internal/model"
)

// WriteJSON writes the report as a self-describing JSON document. The
// serialized form round-trips losslessly through model.UnmarshalReport.
func WriteJSON(r *model.Report, path string) error {
	data, err := r.MarshalIndent()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// WriteMarkdown renders the report as a Markdown document.
func WriteMarkdown(r *model.Report, w io.Writer) error {
	md := markdown.NewMarkdown(w)

	md.H1("Pitch Deck Verification: " + r.CompanyName)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Deck", "`" + r.DeckFilename + "`"},
			{"Analyzed", r.AnalyzedAt.Format("2006-01-02 15:04 MST")},
			{"Overall Score", fmt.Sprintf("%.0f%%", r.OverallScore*100)},
			{"Claims", fmt.Sprintf("%d", len(r.Claims))},
			{"Questions", fmt.Sprintf("%d", len(r.Questions))},
		},
	})
	md.PlainText("")

	md.H2("Executive Summary")
	md.PlainText(r.ExecutiveSummary)
	md.PlainText("")

	md.H2("Risk Assessment")
	md.PlainText(r.RiskAssessment)
	md.PlainText("")

	writeVerdicts(md, r)
	writeQuestions(md, r)

	return md.Build()
}

// writeVerdicts groups claims by category with their verdicts.
func writeVerdicts(md *markdown.Markdown, r *model.Report) {
	md.H2("Claims & Verdicts")
	md.PlainText("")

	byCategory := make(map[model.ClaimCategory][]model.Claim)
	var order []model.ClaimCategory
	for _, claim := range r.Claims {
		if _, seen := byCategory[claim.Category]; !seen {
			order = append(order, claim.Category)
		}
		byCategory[claim.Category] = append(byCategory[claim.Category], claim)
	}

	for _, category := range order {
		md.H3(category.Title())
		for _, claim := range byCategory[category] {
			verdict := r.Verdicts[claim.ID]
			md.PlainText(fmt.Sprintf("**%s** (page %d) — %s %s, confidence %.2f",
				claim.Text, claim.SourcePage, statusBadge(verdict.Status), verdict.Status, verdict.Confidence))
			md.PlainText("")
			md.PlainText(verdict.Summary)
			if len(verdict.CitedEvidence) > 0 {
				items := make([]string, 0, len(verdict.CitedEvidence))
				for _, ev := range verdict.CitedEvidence {
					items = append(items, fmt.Sprintf("[%s](%s) (%s)", ev.SourceTitle, ev.URL, ev.Authority))
				}
				md.BulletList(items...)
			}
			if len(verdict.RedFlags) > 0 {
				md.PlainText("Red flags: " + strings.Join(verdict.RedFlags, "; "))
			}
			md.PlainText("")
		}
	}
}

// writeQuestions groups questions by priority, high first.
func writeQuestions(md *markdown.Markdown, r *model.Report) {
	md.H2("Founder Questions")
	md.PlainText("")

	for _, priority := range []model.QuestionPriority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		var rows []string
		for _, q := range r.Questions {
			if q.Priority != priority {
				continue
			}
			row := q.Text + " — " + q.Rationale
			if q.PersonalizationNote != "" {
				row += " (" + q.PersonalizationNote + ")"
			}
			rows = append(rows, row)
		}
		if len(rows) == 0 {
			continue
		}
		md.H3(capitalize(string(priority)) + " Priority")
		md.BulletList(rows...)
		md.PlainText("")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func statusBadge(status model.VerdictStatus) string {
	switch status {
	case model.StatusVerified:
		return "✅"
	case model.StatusPartiallyVerified:
		return "🟡"
	case model.StatusContradicted:
		return "❌"
	default:
		return "⚪"
	}
}
