package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/net/html"

	"github.com/sago-ai/sago/internal/model"
	"github.com/sago-ai/sago/internal/worker"
)

// DuckDuckGoClient searches the DuckDuckGo HTML endpoint. No API key, no
// guaranteed freshness; responses are cached briefly and rate limited per
// host to stay polite.
type DuckDuckGoClient struct {
	httpClient *http.Client
	limiter    *worker.Limiter
	cache      *gocache.Cache
	config     model.SearchConfig
}

// NewDuckDuckGoClient creates a new client from search configuration
func NewDuckDuckGoClient(cfg model.SearchConfig) *DuckDuckGoClient {
	return &DuckDuckGoClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		limiter: worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		cache:   gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		config:  cfg,
	}
}

// Search issues one query and returns up to MaxResults evidence snippets.
// Returns an empty slice (not an error) when nothing matches.
func (c *DuckDuckGoClient) Search(ctx context.Context, query string) ([]model.Evidence, error) {
	if cached, found := c.cache.Get(query); found {
		var evidence []model.Evidence
		if err := json.Unmarshal(cached.([]byte), &evidence); err == nil {
			return evidence, nil
		}
	}

	if err := c.limiter.Wait(ctx, c.config.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: rate gate: %v", ErrUnavailable, err)
	}

	reqURL := c.config.BaseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2_000_000))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	evidence := parseResults(string(body), c.config.MaxResults)

	if data, err := json.Marshal(evidence); err == nil {
		c.cache.Set(query, data, c.config.CacheTTL)
	}

	return evidence, nil
}

// parseResults walks the result page and collects (title, snippet, url)
// triples from the result__a / result__snippet anchors.
func parseResults(page string, maxResults int) []model.Evidence {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return []model.Evidence{}
	}

	now := time.Now().UTC()
	evidence := []model.Evidence{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(evidence) >= maxResults && maxResults > 0 {
			return
		}

		if n.Type == html.ElementNode && n.Data == "a" {
			switch {
			case hasClass(n, "result__a"):
				resultURL := resolveResultURL(attr(n, "href"))
				if resultURL != "" {
					evidence = append(evidence, model.Evidence{
						SourceTitle: nodeText(n),
						URL:         resultURL,
						Host:        hostOf(resultURL),
						RetrievedAt: now,
					})
				}
			case hasClass(n, "result__snippet"):
				if len(evidence) > 0 && evidence[len(evidence)-1].Snippet == "" {
					evidence[len(evidence)-1].Snippet = nodeText(n)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return evidence
}

// resolveResultURL unwraps DuckDuckGo's redirect links (uddg parameter) and
// keeps only http/https targets.
func resolveResultURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	if target := parsed.Query().Get("uddg"); target != "" {
		if decoded, err := url.Parse(target); err == nil {
			parsed = decoded
		}
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}

	return parsed.String()
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(strings.Join(strings.Fields(buf.String()), " "))
}
