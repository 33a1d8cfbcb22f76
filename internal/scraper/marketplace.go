package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sampbb1996-dot/Frame-scanner/internal/domain"
	"github.com/sampbb1996-dot/Frame-scanner/internal/scanner"
)

const marketplaceBaseURL = "https://www.facebook.com"

// MarketplaceScraper extracts listings from Facebook Marketplace pages.
// Marketplace renders prices client-side, so every item carries an
// unknown price.
type MarketplaceScraper struct {
	client *http.Client
	now    func() time.Time
}

var _ scanner.Scraper = (*MarketplaceScraper)(nil)

// NewMarketplaceScraper wires an HTTP client; nil gets a 15s-timeout default.
func NewMarketplaceScraper(client *http.Client) *MarketplaceScraper {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &MarketplaceScraper{client: client, now: time.Now}
}

// Name identifies the strategy inside the registry.
func (m *MarketplaceScraper) Name() string {
	return "marketplace"
}

// Scan fetches the page and returns one item per anchor that links to a
// marketplace listing. Anchors without visible text are navigation
// chrome and are skipped.
func (m *MarketplaceScraper) Scan(ctx context.Context, req scanner.Request) ([]domain.Item, error) {
	doc, err := fetchDocument(ctx, m.client, req.URL)
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", req.SiteName, err)
	}

	observed := m.now()
	var items []domain.Item
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "/marketplace/item/") {
			return
		}
		title := strings.TrimSpace(a.Text())
		if title == "" {
			return
		}
		fullURL := href
		if !strings.HasPrefix(fullURL, "http") {
			fullURL = marketplaceBaseURL + href
		}

		items = append(items, domain.Item{
			Source:    req.SiteName,
			ID:        lastPathSegment(fullURL),
			Title:     title,
			CreatedAt: observed,
			URL:       fullURL,
		})
	})

	return items, nil
}
