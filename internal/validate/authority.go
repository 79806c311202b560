// Package validate classifies evidence sources into authority tiers and
// probes cited URLs for accessibility.
package validate

import (
	"net/url"
	"strings"

	"github.com/sago-ai/sago/internal/model"
)

// AuthorityClassifier classifies evidence hosts into authority tiers using
// the configured allow-lists. Higher tiers carry more weight in confidence
// scoring.
type AuthorityClassifier struct {
	primary   map[string]bool
	secondary map[string]bool
}

// NewAuthorityClassifier creates a classifier from configuration
func NewAuthorityClassifier(config model.AuthorityConfig) *AuthorityClassifier {
	c := &AuthorityClassifier{
		primary:   make(map[string]bool, len(config.PrimaryDomains)),
		secondary: make(map[string]bool, len(config.SecondaryDomains)),
	}

	for _, domain := range config.PrimaryDomains {
		c.primary[strings.ToLower(domain)] = true
	}
	for _, domain := range config.SecondaryDomains {
		c.secondary[strings.ToLower(domain)] = true
	}

	return c
}

// Classify returns the authority tier for a URL
func (a *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.TierTertiary
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")

	if matchesDomain(host, a.primary) {
		return model.TierPrimary
	}
	if matchesDomain(host, a.secondary) {
		return model.TierSecondary
	}

	// Government and academic hosts get primary weight even when not listed
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") {
		return model.TierPrimary
	}

	return model.TierTertiary
}

// Annotate sets the Authority field on each evidence item in place of copy.
func (a *AuthorityClassifier) Annotate(evidence []model.Evidence) []model.Evidence {
	annotated := make([]model.Evidence, len(evidence))
	for i, ev := range evidence {
		ev.Authority = a.Classify(ev.URL)
		annotated[i] = ev
	}
	return annotated
}

func matchesDomain(host string, domains map[string]bool) bool {
	if domains[host] {
		return true
	}
	for domain := range domains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
