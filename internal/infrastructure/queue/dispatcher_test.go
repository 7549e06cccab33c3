package queue

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/smilecare/clinic-api/internal/core/ports"
)

func TestDispatcher_ShardIndexIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, zerolog.Nop())

	first := d.shardIndex("user_1")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("user_1"); got != first {
			t.Fatalf("shard index changed: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= len(d.workers) {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DrainsQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(2, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < 5; i++ {
		d.Enqueue(ports.BookingConfirmation{
			AppointmentID: "appt_1",
			PatientID:     "user_1",
			Date:          "2025-07-01",
			Time:          "09:30",
		})
	}

	deadline := time.After(2 * time.Second)
	for {
		pending := 0
		for _, ch := range d.workers {
			pending += len(ch)
		}
		if pending == 0 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("queue not drained, %d pending", pending)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
