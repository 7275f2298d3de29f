package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsGate answers "may we fetch this URL" per robots.txt, caching one
// parsed policy per host for the life of a run. An unreachable or missing
// robots.txt allows fetching.
type robotsGate struct {
	httpClient *http.Client
	userAgent  string

	mu    sync.RWMutex
	hosts map[string]*robotstxt.RobotsData
}

func newRobotsGate(userAgent string, timeout time.Duration) *robotsGate {
	return &robotsGate{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		hosts:      make(map[string]*robotstxt.RobotsData),
	}
}

// allowed reports whether rawURL may be fetched and any crawl delay the
// site requests for our agent.
func (g *robotsGate) allowed(ctx context.Context, rawURL string) (bool, time.Duration) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, 0
	}

	data, err := g.policy(ctx, parsed.Scheme, parsed.Host)
	if err != nil || data == nil {
		return true, 0
	}

	delay := time.Duration(0)
	if group := data.FindGroup(g.userAgent); group != nil {
		delay = group.CrawlDelay
	}
	return data.TestAgent(parsed.Path, g.userAgent), delay
}

func (g *robotsGate) policy(ctx context.Context, scheme, host string) (*robotstxt.RobotsData, error) {
	g.mu.RLock()
	data, exists := g.hosts[host]
	g.mu.RUnlock()
	if exists {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}

	data, err = robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	g.mu.Lock()
	g.hosts[host] = data
	g.mu.Unlock()
	return data, nil
}
