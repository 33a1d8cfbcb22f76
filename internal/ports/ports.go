package ports

import (
	"context"
	"time"

	"github.com/sampbb1996-dot/Frame-scanner/internal/domain"
)

// ItemSource pulls fresh listings from all configured marketplace sites.
type ItemSource interface {
	FetchAll(ctx context.Context) ([]domain.Item, error)
}

// Store is the durable state the excitation engine reads and the dedupe
// gate writes: decayed weights and cooldowns per derived key, plus the
// set of already-processed listing identities.
type Store interface {
	// Weight returns the decayed weight for key as of now, 0 if absent.
	Weight(ctx context.Context, key string, now time.Time) (float64, error)
	// OnCooldown reports whether key is suppressed as of now; absent keys
	// are not on cooldown.
	OnCooldown(ctx context.Context, key string, now time.Time) (bool, error)
	// MarkSeen records the identity if it is new and reports whether this
	// call inserted it. The check and the mark are a single atomic
	// operation: two concurrent calls for the same identity cannot both
	// observe true.
	MarkSeen(ctx context.Context, source, id string) (bool, error)
}

// Notifier delivers alerts that cleared the excitation threshold.
type Notifier interface {
	Notify(ctx context.Context, alert domain.Alert) error
}

// Scheduler controls when poll cycles execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
