package verify

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sago-ai/sago/internal/model"
)

var numberRe = regexp.MustCompile(`\$?[\d,]+(?:\.\d+)?(?:\s*(?:billion|million|trillion|B|M|K))?`)

// BuildQueries derives search queries from a claim and its category. The
// first query anchors on the company name; category-specific follow-ups
// target the sources most likely to hold corroborating data. The result is
// capped to keep cost and latency bounded.
func BuildQueries(claim model.Claim, companyName string, maxQueries int) []string {
	if maxQueries <= 0 {
		maxQueries = 1
	}

	text := truncateQueryText(claim.Text, 100)

	queries := []string{strings.TrimSpace(companyName + " " + text)}

	switch claim.Category {
	case model.CategoryMarketSize:
		queries = append(queries, text+" market size research report")
		if numbers := numberRe.FindAllString(claim.Text, -1); len(numbers) > 0 {
			queries = append(queries, "TAM SAM SOM "+strings.Join(numbers, " "))
		}
	case model.CategoryRevenue:
		queries = append(queries,
			companyName+" revenue funding crunchbase",
			companyName+" annual revenue")
	case model.CategoryTeamBackground:
		queries = append(queries,
			companyName+" founders background linkedin",
			companyName+" team leadership")
	case model.CategoryCustomerClaims:
		queries = append(queries,
			companyName+" customers clients",
			companyName+" case studies testimonials")
	case model.CategoryPartnerships:
		queries = append(queries, companyName+" partnership announcement")
	case model.CategoryFundingHistory:
		queries = append(queries,
			companyName+" funding crunchbase",
			companyName+" investment rounds")
	case model.CategoryGrowthMetrics:
		queries = append(queries, companyName+" growth metrics users")
	default:
		queries = append(queries, fmt.Sprintf("%q %s", companyName, text))
	}

	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}
	return queries
}

// truncateQueryText cuts claim text at a byte limit without splitting a rune.
func truncateQueryText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}
