package excite

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sampbb1996-dot/Frame-scanner/internal/domain"
	"github.com/sampbb1996-dot/Frame-scanner/internal/ports"
)

// Params tune the excitation curve. The defaults are calibration knobs,
// not fixed behavior; tune them through config.
type Params struct {
	// WeightClamp bounds each key's weight contribution to ±WeightClamp so
	// no single key can dominate the score.
	WeightClamp float64
	// CooldownDamping multiplies the final excitation once per cooled key.
	CooldownDamping float64
	// Midpoint is the running score that maps to excitation 0.5.
	Midpoint float64
	// Slope steepens the logistic squash around the midpoint.
	Slope float64
}

// DefaultParams returns the shipped calibration.
func DefaultParams() Params {
	return Params{
		WeightClamp:     0.35,
		CooldownDamping: 0.5,
		Midpoint:        0.35,
		Slope:           3,
	}
}

// Engine scores listings by combining intrinsic features with decayed
// per-key weights and cooldown damping read from the store. It never
// writes weights or cooldowns; those are external feedback channels.
type Engine struct {
	store  ports.Store
	params Params
	now    func() time.Time
}

// NewEngine wires a store handle and calibration parameters.
// A nil now falls back to time.Now.
func NewEngine(store ports.Store, params Params, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, params: params, now: now}
}

// Admit is the dedupe gate: it records the listing identity and reports
// whether the listing is new and should proceed to scoring. A second call
// with the same (source, id) returns false. Listings without an identity
// violate the source adapter contract and are rejected with an error.
func (e *Engine) Admit(ctx context.Context, item domain.Item) (bool, error) {
	if !item.HasIdentity() {
		return false, fmt.Errorf("item missing identity: source=%q id=%q", item.Source, item.ID)
	}
	inserted, err := e.store.MarkSeen(ctx, item.Source, item.ID)
	if err != nil {
		return false, fmt.Errorf("mark seen %s/%s: %w", item.Source, item.ID, err)
	}
	return inserted, nil
}

// Score computes the bounded excitation in [0, 1] for a listing. Store
// failures propagate instead of being read as absent keys; treating a
// failed read as weight zero would re-alert on every listing the moment
// the store comes back.
func (e *Engine) Score(ctx context.Context, item domain.Item) (float64, error) {
	now := e.now()
	x := baseScore(item, now)

	damping := 1.0
	for _, key := range DeriveKeys(item) {
		cooled, err := e.store.OnCooldown(ctx, key, now)
		if err != nil {
			return 0, fmt.Errorf("cooldown %s: %w", key, err)
		}
		if cooled {
			damping *= e.params.CooldownDamping
		}

		w, err := e.store.Weight(ctx, key, now)
		if err != nil {
			return 0, fmt.Errorf("weight %s: %w", key, err)
		}
		x += clamp(w, -e.params.WeightClamp, e.params.WeightClamp)
	}

	return clamp(sigmoid(e.params.Slope*(x-e.params.Midpoint))*damping, 0, 1), nil
}

// baseScore sums the item-intrinsic contributors, each clamped so neither
// can exceed 0.25: cheap listings score higher (saturating fast with
// price) and fresh listings score higher (half-life about 8.3 hours).
func baseScore(item domain.Item, now time.Time) float64 {
	var b float64
	if item.Price != nil {
		b += clamp(1/(1+*item.Price), 0, 0.25)
	}
	ageHours := now.Sub(item.CreatedAt).Hours()
	b += clamp(math.Exp(-ageHours/12)*0.25, 0, 0.25)
	return b
}

// ShouldNotify is the threshold gate: pure comparison, no state. The
// threshold is policy configured outside the scoring math.
func ShouldNotify(excitation, threshold float64) bool {
	return excitation >= threshold
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
