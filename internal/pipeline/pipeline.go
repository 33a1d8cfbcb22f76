package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sampbb1996-dot/Frame-scanner/internal/domain"
	"github.com/sampbb1996-dot/Frame-scanner/internal/excite"
	"github.com/sampbb1996-dot/Frame-scanner/internal/ports"
)

// Deps wires all driven adapters into the poll-cycle pipeline.
type Deps struct {
	Source    ports.ItemSource
	Engine    *excite.Engine
	Notifiers []ports.Notifier
	Threshold float64
	Logger    *slog.Logger
}

// Pipeline implements one poll cycle: fetch, dedupe, score, gate, notify.
// Each listing terminates in exactly one of rejected-duplicate, skipped
// on error, suppressed below threshold, or notified; nothing is scored
// twice.
type Pipeline struct {
	source    ports.ItemSource
	engine    *excite.Engine
	notifiers []ports.Notifier
	threshold float64
	logger    *slog.Logger
}

// New constructs the orchestration component.
func New(deps Deps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		source:    deps.Source,
		engine:    deps.Engine,
		notifiers: deps.Notifiers,
		threshold: deps.Threshold,
		logger:    logger,
	}
}

// Cycle runs one full poll pass. A store failure on one listing skips
// that listing without notifying (fail-closed: treating a failed dedupe
// read as "unseen" would storm the notifiers) and does not abort the
// rest of the batch.
func (p *Pipeline) Cycle(ctx context.Context) error {
	if p.source == nil || p.engine == nil {
		return fmt.Errorf("pipeline missing source or engine")
	}

	items, err := p.source.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch items: %w", err)
	}

	var fresh, notified int
	for _, item := range items {
		admitted, err := p.engine.Admit(ctx, item)
		if err != nil {
			p.logger.Warn("admit failed, skipping item", "source", item.Source, "id", item.ID, "error", err)
			continue
		}
		if !admitted {
			continue
		}
		fresh++

		exc, err := p.engine.Score(ctx, item)
		if err != nil {
			p.logger.Warn("score failed, skipping item", "source", item.Source, "id", item.ID, "error", err)
			continue
		}

		if !excite.ShouldNotify(exc, p.threshold) {
			continue
		}
		notified++

		alert := domain.Alert{Item: item, Excitation: exc}
		for _, n := range p.notifiers {
			if err := n.Notify(ctx, alert); err != nil {
				p.logger.Warn("notify failed", "source", item.Source, "id", item.ID, "error", err)
			}
		}
	}

	p.logger.Info("cycle complete", "items", len(items), "fresh", fresh, "notified", notified)
	return nil
}
