package verify

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sago-ai/sago/internal/model"
)

func TestBuildQueries_BaseQueryAnchorsCompany(t *testing.T) {
	claim := model.Claim{Text: "$5M ARR", Category: model.CategoryRevenue}

	queries := BuildQueries(claim, "Acme", 3)

	if len(queries) == 0 {
		t.Fatal("expected at least one query")
	}
	if queries[0] != "Acme $5M ARR" {
		t.Errorf("unexpected base query: %q", queries[0])
	}
}

func TestBuildQueries_MarketSizeIncludesNumbers(t *testing.T) {
	claim := model.Claim{Text: "$50B TAM by 2027", Category: model.CategoryMarketSize}

	queries := BuildQueries(claim, "Acme", 3)

	if len(queries) != 3 {
		t.Fatalf("expected 3 queries, got %d: %v", len(queries), queries)
	}
	if !strings.Contains(queries[1], "market size") {
		t.Errorf("expected a market size query, got %q", queries[1])
	}
	if !strings.Contains(queries[2], "TAM SAM SOM") || !strings.Contains(queries[2], "$50") {
		t.Errorf("expected the numeric TAM query, got %q", queries[2])
	}
}

func TestBuildQueries_CategoryTargets(t *testing.T) {
	tests := []struct {
		category model.ClaimCategory
		want     string
	}{
		{model.CategoryRevenue, "crunchbase"},
		{model.CategoryTeamBackground, "linkedin"},
		{model.CategoryCustomerClaims, "customers"},
		{model.CategoryPartnerships, "partnership"},
		{model.CategoryFundingHistory, "funding"},
		{model.CategoryGrowthMetrics, "growth"},
	}

	for _, tt := range tests {
		claim := model.Claim{Text: "some claim", Category: tt.category}
		queries := BuildQueries(claim, "Acme", 5)

		found := false
		for _, q := range queries {
			if strings.Contains(strings.ToLower(q), tt.want) {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: expected a query containing %q, got %v", tt.category, tt.want, queries)
		}
	}
}

func TestBuildQueries_Cap(t *testing.T) {
	claim := model.Claim{Text: "$50B TAM", Category: model.CategoryMarketSize}

	if got := BuildQueries(claim, "Acme", 1); len(got) != 1 {
		t.Errorf("expected cap of 1, got %d", len(got))
	}
	if got := BuildQueries(claim, "Acme", 0); len(got) != 1 {
		t.Errorf("zero cap should fall back to 1 query, got %d", len(got))
	}
}

func TestBuildQueries_LongClaimTruncated(t *testing.T) {
	claim := model.Claim{Text: strings.Repeat("growth ", 40), Category: model.CategoryOther}

	queries := BuildQueries(claim, "Acme", 1)

	if len(queries[0]) > 110 {
		t.Errorf("expected claim text truncated in query, got %d chars", len(queries[0]))
	}
}

func TestBuildQueries_TruncationKeepsValidUTF8(t *testing.T) {
	claim := model.Claim{Text: strings.Repeat("é", 120), Category: model.CategoryOther}

	queries := BuildQueries(claim, "Acme", 1)

	if !utf8.ValidString(queries[0]) {
		t.Errorf("truncated query is not valid UTF-8: %q", queries[0])
	}
}
