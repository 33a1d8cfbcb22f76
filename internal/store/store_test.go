package store

import (
	"context"
	"math"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory(0.05)
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenRejectsBadDecayRate(t *testing.T) {
	t.Parallel()

	for _, rate := range []float64{0, 1, -0.1, 1.5} {
		if _, err := OpenMemory(rate); err == nil {
			t.Errorf("OpenMemory(%v) should reject rate outside (0, 1)", rate)
		}
	}
}

func TestWeightAbsentIsZero(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	w, err := db.Weight(context.Background(), "src:nowhere", time.Now())
	if err != nil {
		t.Fatalf("Weight: %v", err)
	}
	if w != 0 {
		t.Fatalf("absent key weight = %v, want 0", w)
	}
}

func TestWeightExactAtWriteTime(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	if err := db.SetWeight(ctx, "src:gumtree", 0.35, now); err != nil {
		t.Fatalf("SetWeight: %v", err)
	}

	w, err := db.Weight(ctx, "src:gumtree", now)
	if err != nil {
		t.Fatalf("Weight: %v", err)
	}
	if w != 0.35 {
		t.Fatalf("weight at write time = %v, want exactly 0.35", w)
	}
}

func TestWeightDecaysMonotonically(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	written := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	if err := db.SetWeight(ctx, "term:kayak", 1.0, written); err != nil {
		t.Fatalf("SetWeight: %v", err)
	}

	day, err := db.Weight(ctx, "term:kayak", written.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Weight +1d: %v", err)
	}
	month, err := db.Weight(ctx, "term:kayak", written.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("Weight +1mo: %v", err)
	}

	if day >= 1.0 {
		t.Fatalf("one-day weight %v should be below the stored 1.0", day)
	}
	if math.Abs(day-0.95) > 1e-9 {
		t.Errorf("one-day weight = %v, want 0.95", day)
	}
	if month >= day {
		t.Errorf("one-month weight %v should be below one-day weight %v", month, day)
	}
}

func TestSetWeightUpserts(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	if err := db.SetWeight(ctx, "src:fb", 0.1, now.AddDate(0, 0, -30)); err != nil {
		t.Fatalf("SetWeight: %v", err)
	}
	if err := db.SetWeight(ctx, "src:fb", -0.2, now); err != nil {
		t.Fatalf("SetWeight overwrite: %v", err)
	}

	w, err := db.Weight(ctx, "src:fb", now)
	if err != nil {
		t.Fatalf("Weight: %v", err)
	}
	if w != -0.2 {
		t.Fatalf("weight after overwrite = %v, want -0.2 (fresh timestamp)", w)
	}
}

func TestOnCooldown(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	cooled, err := db.OnCooldown(ctx, "src:gumtree", now)
	if err != nil {
		t.Fatalf("OnCooldown absent: %v", err)
	}
	if cooled {
		t.Fatal("absent key should not be on cooldown")
	}

	if err := db.StartCooldown(ctx, "src:gumtree", now.Add(time.Hour)); err != nil {
		t.Fatalf("StartCooldown: %v", err)
	}

	cooled, err = db.OnCooldown(ctx, "src:gumtree", now)
	if err != nil {
		t.Fatalf("OnCooldown active: %v", err)
	}
	if !cooled {
		t.Fatal("key should be on cooldown before until")
	}

	cooled, err = db.OnCooldown(ctx, "src:gumtree", now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("OnCooldown expired: %v", err)
	}
	if cooled {
		t.Fatal("key should not be on cooldown after until")
	}
}

func TestMarkSeenInsertIfAbsent(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()

	first, err := db.MarkSeen(ctx, "gumtree", "listing-1")
	if err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	second, err := db.MarkSeen(ctx, "gumtree", "listing-1")
	if err != nil {
		t.Fatalf("MarkSeen repeat: %v", err)
	}

	if !first {
		t.Fatal("first MarkSeen should report a new identity")
	}
	if second {
		t.Fatal("second MarkSeen should report already seen")
	}

	seen, err := db.Seen(ctx, "gumtree", "listing-1")
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if !seen {
		t.Fatal("Seen should observe the marked identity")
	}
}

func TestSeenIdentityScopedBySource(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.MarkSeen(ctx, "gumtree", "listing-1"); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}

	fresh, err := db.MarkSeen(ctx, "fb", "listing-1")
	if err != nil {
		t.Fatalf("MarkSeen other source: %v", err)
	}
	if !fresh {
		t.Fatal("same id under a different source is a distinct identity")
	}
}

func TestMigrateIdempotent(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	if err := db.migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version); err != nil {
		t.Fatalf("schema version: %v", err)
	}
	if version != len(migrations) {
		t.Fatalf("schema version = %d, want %d", version, len(migrations))
	}
}
