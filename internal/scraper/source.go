package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sampbb1996-dot/Frame-scanner/internal/config"
	"github.com/sampbb1996-dot/Frame-scanner/internal/domain"
	"github.com/sampbb1996-dot/Frame-scanner/internal/ports"
	"github.com/sampbb1996-dot/Frame-scanner/internal/scanner"
)

// StrategySource implements ItemSource via registered scraper strategies.
// A site that fails to fetch or parse is logged and skipped; items
// already obtained from other sites in the same cycle are unaffected.
type StrategySource struct {
	registry *scanner.Registry
	sites    []config.SiteConfig
	logger   *slog.Logger
}

var _ ports.ItemSource = (*StrategySource)(nil)

// NewStrategySource wires the scraper registry with config-defined sites.
func NewStrategySource(reg *scanner.Registry, sites []config.SiteConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sites:    sites,
		logger:   log,
	}
}

// FetchAll iterates over configured sites and executes their scrapers.
func (s *StrategySource) FetchAll(ctx context.Context) ([]domain.Item, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scraper registry is not configured")
	}

	var aggregated []domain.Item
	for _, site := range s.sites {
		strategy, err := s.registry.Resolve(site.Scraper)
		if err != nil {
			s.warn("unknown scraper", "site", site.Name, "scraper", site.Scraper)
			continue
		}

		results, err := strategy.Scan(ctx, scanner.Request{
			SiteName: site.Name,
			URL:      site.URL,
		})
		if err != nil {
			s.warn("scan failed", "site", site.Name, "error", err)
			continue
		}

		s.debug("site produced items", "site", site.Name, "count", len(results))
		aggregated = append(aggregated, results...)
	}

	return aggregated, nil
}

func (s *StrategySource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
