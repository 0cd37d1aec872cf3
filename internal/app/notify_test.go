package app_test

import (
	"testing"

	"millcreek_parks/internal/app"
	"millcreek_parks/internal/domain"
)

func TestHub_SubscribePublishCancel(t *testing.T) {
	hub := app.NewHub()
	ch, cancel := hub.Subscribe(2)

	hub.Publish(domain.Review{ID: 1, Park: "Buffalo Park"})
	hub.Publish(domain.Review{ID: 2, Park: "Buffalo Park"})

	if got := <-ch; got.ID != 1 {
		t.Fatalf("first event = %+v", got)
	}
	if got := <-ch; got.ID != 2 {
		t.Fatalf("second event = %+v", got)
	}

	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("channel should be closed after cancel")
	}
	// double cancel is safe
	cancel()
	// publish after cancel must not panic
	hub.Publish(domain.Review{ID: 3})
}

func TestHub_SlowConsumerDrops(t *testing.T) {
	hub := app.NewHub()
	ch, cancel := hub.Subscribe(1)
	defer cancel()

	hub.Publish(domain.Review{ID: 1})
	hub.Publish(domain.Review{ID: 2}) // buffer full, dropped

	if got := <-ch; got.ID != 1 {
		t.Fatalf("event = %+v", got)
	}
	select {
	case ev := <-ch:
		t.Fatalf("expected drop, got %+v", ev)
	default:
	}
}
