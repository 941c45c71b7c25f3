package cache

import (
	"context"
	"testing"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
)

func TestDataKeyIncludesGenerationAndInputs(t *testing.T) {
	c := NewAvailabilityRedis(nil, 0)
	k := domain.AvailabilityKey{BusinessID: 1, StaffID: 2, Date: "2026-10-19", DurationMinutes: 60, IntervalMinutes: 30}

	if c.dataKey(0, k) == c.dataKey(1, k) {
		t.Fatal("generation must change the key")
	}
	other := k
	other.DurationMinutes = 30
	if c.dataKey(0, k) == c.dataKey(0, other) {
		t.Fatal("duration must change the key")
	}
	if got := c.versionKey(1, "2026-10-19"); got != "avail:ver:1:2026-10-19" {
		t.Fatalf("unexpected version key %s", got)
	}
}

func TestNoopNeverHits(t *testing.T) {
	var c Noop
	c.Set(context.Background(), domain.AvailabilityKey{}, []domain.TimeSlot{{Time: "09:00"}})
	if _, ok := c.Get(context.Background(), domain.AvailabilityKey{}); ok {
		t.Fatal("noop cache must miss")
	}
}
