package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sampbb1996-dot/Frame-scanner/internal/config"
	"github.com/sampbb1996-dot/Frame-scanner/internal/excite"
	"github.com/sampbb1996-dot/Frame-scanner/internal/logging"
	"github.com/sampbb1996-dot/Frame-scanner/internal/notify"
	"github.com/sampbb1996-dot/Frame-scanner/internal/pipeline"
	"github.com/sampbb1996-dot/Frame-scanner/internal/ports"
	"github.com/sampbb1996-dot/Frame-scanner/internal/scanner"
	"github.com/sampbb1996-dot/Frame-scanner/internal/scheduler"
	"github.com/sampbb1996-dot/Frame-scanner/internal/scraper"
	"github.com/sampbb1996-dot/Frame-scanner/internal/store"
)

// Application wires configs to the poll pipeline and lifecycle.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *store.DB
	pipeline *pipeline.Pipeline
}

// New builds a runnable application instance: opens the store, registers
// scrapers, and assembles the excitation pipeline.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := store.Open(cfg.Database.Path, cfg.Engine.DecayRate)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	registry := scanner.NewRegistry()
	registry.Register(scraper.NewGumtreeScraper(nil))
	registry.Register(scraper.NewMarketplaceScraper(nil))

	source := scraper.NewStrategySource(registry, cfg.Sites, baseLogger.With("component", "source"))

	params := excite.DefaultParams()
	if cfg.Engine.WeightClamp > 0 {
		params.WeightClamp = cfg.Engine.WeightClamp
	}
	if cfg.Engine.CooldownDamping > 0 {
		params.CooldownDamping = cfg.Engine.CooldownDamping
	}
	engine := excite.NewEngine(db, params, nil)

	notifiers := []ports.Notifier{notify.NewConsoleNotifier(nil)}
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifiers = append(notifiers, notify.NewTelegramNotifier(tg.BotToken, tg.ChatID))
	}

	pipe := pipeline.New(pipeline.Deps{
		Source:    source,
		Engine:    engine,
		Notifiers: notifiers,
		Threshold: cfg.Engine.ExcitationThreshold,
		Logger:    baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, logger: baseLogger, db: db, pipeline: pipe}, nil
}

// Run polls until the context is cancelled, then closes the store.
func (a *Application) Run(ctx context.Context) error {
	defer a.db.Close()

	sched := scheduler.NewIntervalScheduler(a.cfg.Poll.Interval())
	err := sched.Start(ctx, func(time.Time) {
		if cycleErr := a.pipeline.Cycle(ctx); cycleErr != nil {
			a.logger.Error("poll cycle failed", "error", cycleErr)
		}
	})
	if err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()
	return sched.Stop(context.Background())
}
