package scanner

import (
	"context"
	"fmt"

	"github.com/sampbb1996-dot/Frame-scanner/internal/domain"
)

// Request carries all parameters required to execute a scan of one site.
type Request struct {
	SiteName string
	URL      string
}

// Scraper captures a single site strategy (Gumtree, Marketplace, etc.).
type Scraper interface {
	Name() string
	Scan(ctx context.Context, req Request) ([]domain.Item, error)
}

// Registry keeps a mapping from scraper names to their implementations.
type Registry struct {
	scrapers map[string]Scraper
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scrapers: map[string]Scraper{}}
}

// Register adds or replaces a scraper implementation.
func (r *Registry) Register(scraper Scraper) {
	if r.scrapers == nil {
		r.scrapers = map[string]Scraper{}
	}
	r.scrapers[scraper.Name()] = scraper
}

// Resolve returns a scraper by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scraper, error) {
	if scraper, ok := r.scrapers[name]; ok {
		return scraper, nil
	}
	return nil, fmt.Errorf("scraper %s is not registered", name)
}
