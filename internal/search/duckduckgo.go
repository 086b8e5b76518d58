package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	errx "github.com/olist-agent-poc/server/internal/core/error"
	logx "github.com/olist-agent-poc/server/pkg/logger"
)

// Result is one search hit: title, snippet and resolved target URL.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Provider answers a free-text search query with the top results.
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

const defaultEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGo scrapes the DuckDuckGo HTML endpoint. No API key required,
// which matches the provider the system was built around.
type DuckDuckGo struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		Endpoint: defaultEndpoint,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	endpoint := d.Endpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errx.WrapSearch(err)
	}
	// The HTML endpoint rejects requests without a browser-ish user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return nil, errx.WrapSearch(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errx.WrapSearch(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errx.WrapSearch(err)
	}

	results := []Result{}
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		snippet := strings.TrimSpace(sel.Find(".result__snippet").First().Text())
		if title == "" && snippet == "" {
			return true
		}

		href, _ := link.Attr("href")
		results = append(results, Result{
			Title:   title,
			Snippet: snippet,
			URL:     resolveRedirect(href),
		})
		return len(results) < maxResults
	})

	logx.Debug().Str("query", query).Int("results", len(results)).Msg("web search completed")
	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<encoded> redirect links to
// the target URL. Unrecognized hrefs are returned as-is.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
