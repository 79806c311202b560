package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sago-ai/sago/internal/deliver"
	"github.com/sago-ai/sago/internal/model"
	"github.com/sago-ai/sago/internal/pipeline"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	maxClaims    int
	maxQuestions int
	workers      int
	checkURLs    bool
	llmProvider  string
	llmModel     string
	profilePath  string
	investorName string
	focusAreas   []string
	investStage  string
	emailTo      string
	slackWebhook string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <deck.pdf>",
	Short: "Analyze a pitch deck and generate a verification report",
	Long: `Analyze extracts the verifiable claims from a pitch deck PDF,
checks each against public web sources, scores the overall
credibility of the deck, and synthesizes questions to ask the
founders in the meeting.

Example:
  sago analyze deck.pdf
  sago analyze deck.pdf --json report.json --md report.md
  sago analyze deck.pdf --focus "B2B SaaS,FinTech" --stage "Series A"
  sago analyze deck.pdf --email partner@fund.com`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// Pipeline flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().IntVar(&maxClaims, "max-claims", 0, "cap on claims to verify (0 = config default)")
	analyzeCmd.Flags().IntVar(&maxQuestions, "max-questions", 0, "cap on synthesized questions (0 = config default)")
	analyzeCmd.Flags().IntVar(&workers, "workers", 0, "concurrent claim verifications (0 = config default)")
	analyzeCmd.Flags().BoolVar(&checkURLs, "check-urls", false, "probe cited evidence URLs for accessibility")

	// LLM flags
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (gemini, openai)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")

	// Investor flags
	analyzeCmd.Flags().StringVar(&profilePath, "profile", "", "investor profile YAML file")
	analyzeCmd.Flags().StringVar(&investorName, "investor-name", "", "investor name for question personalization")
	analyzeCmd.Flags().StringSliceVar(&focusAreas, "focus", nil, "investor focus areas (comma separated)")
	analyzeCmd.Flags().StringVar(&investStage, "stage", "", "investment stage (e.g. \"Series A\")")

	// Delivery flags
	analyzeCmd.Flags().StringVar(&emailTo, "email", "", "email the report to this address")
	analyzeCmd.Flags().StringVar(&slackWebhook, "slack-webhook", "", "post a summary to this Slack webhook")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, log)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", pdfPath)
		fmt.Fprintf(os.Stderr, "Provider: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", cfg.Verification.Workers)
		fmt.Fprintln(os.Stderr)
	}

	report, err := p.Analyze(ctx, pdfPath)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Verified %d claims\n", len(report.Claims))
		fmt.Fprintf(os.Stderr, "✓ Overall score: %.0f%%\n", report.OverallScore*100)
		fmt.Fprintf(os.Stderr, "✓ Synthesized %d questions\n", len(report.Questions))
		fmt.Fprintln(os.Stderr)
	}

	if err := p.Render(report, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return sendReport(ctx, cfg, report)
}

// buildConfig layers CLI flags over defaults and exported environment
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if profilePath != "" {
		profile, err := model.LoadProfile(profilePath)
		if err != nil {
			return nil, fmt.Errorf("load investor profile: %w", err)
		}
		cfg.Investor = profile
	}
	if investorName != "" {
		cfg.Investor.Name = investorName
	}
	if len(focusAreas) > 0 {
		cfg.Investor.FocusAreas = focusAreas
	}
	if investStage != "" {
		cfg.Investor.InvestmentStage = investStage
	}

	if maxClaims > 0 {
		cfg.Verification.MaxClaims = maxClaims
	}
	if maxQuestions > 0 {
		cfg.Questions.MaxQuestions = maxQuestions
	}
	if workers > 0 {
		cfg.Verification.Workers = workers
	}
	cfg.Verification.CheckEvidenceURLs = checkURLs

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	// Get API key from environment
	switch strings.ToLower(cfg.LLM.Provider) {
	case "gemini", "google":
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	if emailTo != "" {
		cfg.Delivery.Recipient = emailTo
		if cfg.Delivery.SMTPHost == "" {
			cfg.Delivery.SMTPHost = os.Getenv("SAGO_SMTP_HOST")
		}
		if cfg.Delivery.SMTPUser == "" {
			cfg.Delivery.SMTPUser = os.Getenv("SAGO_SMTP_USER")
		}
		if cfg.Delivery.SMTPPassword == "" {
			cfg.Delivery.SMTPPassword = os.Getenv("SAGO_SMTP_PASSWORD")
		}
	}
	if slackWebhook != "" {
		cfg.Delivery.SlackWebhook = slackWebhook
	}

	return cfg, nil
}

// sendReport ships the finished report over the configured channels.
// Delivery failures are reported but never undo a completed analysis.
func sendReport(ctx context.Context, cfg *model.Config, report *model.Report) error {
	var deliverers []deliver.Deliverer
	if emailTo != "" {
		deliverers = append(deliverers, deliver.NewMailDeliverer(cfg.Delivery))
	}
	if cfg.Delivery.SlackWebhook != "" {
		deliverers = append(deliverers, deliver.NewSlackDeliverer(cfg.Delivery.SlackWebhook))
	}

	var firstErr error
	for _, d := range deliverers {
		receipt, err := d.Deliver(ctx, report)
		if err != nil {
			log.WithError(err).Warn("delivery failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Delivered via %s to %s\n", receipt.Channel, receipt.Target)
		}
	}
	return firstErr
}
