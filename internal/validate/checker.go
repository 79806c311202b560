package validate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/sync/errgroup"

	"github.com/sago-ai/sago/internal/model"
)

// CheckResult records the accessibility probe for one evidence URL
type CheckResult struct {
	URL        string
	Accessible bool
	StatusCode int
	Disallowed bool // robots.txt forbids fetching
	Err        string
}

// Checker probes cited evidence URLs with HEAD requests, honoring each
// host's robots.txt. Inaccessible evidence still appears in the verdict; the
// probe only informs red flags.
type Checker struct {
	httpClient  *http.Client
	userAgent   string
	maxInFlight int

	robotsMu    sync.RWMutex
	robotsCache map[string]*robotstxt.RobotsData
}

// NewChecker creates a new evidence URL checker
func NewChecker(timeout time.Duration, userAgent string, maxInFlight int) *Checker {
	if maxInFlight <= 0 {
		maxInFlight = 10
	}

	return &Checker{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:   userAgent,
		maxInFlight: maxInFlight,
		robotsCache: make(map[string]*robotstxt.RobotsData),
	}
}

// Check probes all evidence URLs concurrently. Results preserve input order.
func (c *Checker) Check(ctx context.Context, evidence []model.Evidence) []CheckResult {
	results := make([]CheckResult, len(evidence))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxInFlight)

	for i, ev := range evidence {
		i, ev := i, ev
		g.Go(func() error {
			results[i] = c.checkSingle(gctx, ev.URL)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func (c *Checker) checkSingle(ctx context.Context, rawURL string) CheckResult {
	result := CheckResult{URL: rawURL}

	allowed, err := c.canFetch(ctx, rawURL)
	if err == nil && !allowed {
		result.Disallowed = true
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		result.Err = fmt.Sprintf("create request: %v", err)
		return result
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Err = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	result.Accessible = resp.StatusCode >= 200 && resp.StatusCode < 400

	return result
}

// canFetch checks robots.txt for the URL's host. Missing or unreachable
// robots.txt allows by default.
func (c *Checker) canFetch(ctx context.Context, rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parse URL: %w", err)
	}

	data, err := c.robotsData(ctx, parsed)
	if err != nil || data == nil {
		return true, nil
	}

	return data.TestAgent(parsed.Path, c.userAgent), nil
}

func (c *Checker) robotsData(ctx context.Context, target *url.URL) (*robotstxt.RobotsData, error) {
	c.robotsMu.RLock()
	data, exists := c.robotsCache[target.Host]
	c.robotsMu.RUnlock()
	if exists {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", target.Scheme, target.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, err
	}

	c.robotsMu.Lock()
	c.robotsCache[target.Host] = data
	c.robotsMu.Unlock()

	return data, nil
}
