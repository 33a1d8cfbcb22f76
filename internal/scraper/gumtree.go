package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sampbb1996-dot/Frame-scanner/internal/domain"
	"github.com/sampbb1996-dot/Frame-scanner/internal/scanner"
)

const gumtreeBaseURL = "https://www.gumtree.com.au"

var priceExpr = regexp.MustCompile(`\$(\d+)`)

// GumtreeScraper extracts listings from Gumtree search result pages.
type GumtreeScraper struct {
	client *http.Client
	now    func() time.Time
}

var _ scanner.Scraper = (*GumtreeScraper)(nil)

// NewGumtreeScraper wires an HTTP client; nil gets a 15s-timeout default.
func NewGumtreeScraper(client *http.Client) *GumtreeScraper {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &GumtreeScraper{client: client, now: time.Now}
}

// Name identifies the strategy inside the registry.
func (g *GumtreeScraper) Name() string {
	return "gumtree"
}

// Scan fetches the search page and returns one item per result anchor.
// Gumtree folds the price into the anchor text, so it is recovered from
// the title; listings without a $ amount carry an unknown price.
func (g *GumtreeScraper) Scan(ctx context.Context, req scanner.Request) ([]domain.Item, error) {
	doc, err := fetchDocument(ctx, g.client, req.URL)
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", req.SiteName, err)
	}

	observed := g.now()
	var items []domain.Item
	doc.Find("a[data-q='search-result-anchor']").Each(func(_ int, a *goquery.Selection) {
		title := strings.TrimSpace(a.Text())
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		fullURL := gumtreeBaseURL + href

		var price *float64
		if m := priceExpr.FindStringSubmatch(title); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				price = &v
			}
		}

		items = append(items, domain.Item{
			Source:    req.SiteName,
			ID:        lastPathSegment(fullURL),
			Title:     title,
			Price:     price,
			CreatedAt: observed,
			URL:       fullURL,
		})
	})

	return items, nil
}

func lastPathSegment(u string) string {
	parts := strings.Split(u, "/")
	return parts[len(parts)-1]
}
