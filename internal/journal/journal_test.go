package journal

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-farm/internal/farm"
	"github.com/pixil98/go-testutil"
)

type fakeBus struct {
	mu           sync.Mutex
	failures     int
	subject      string
	handler      func(data []byte)
	unsubscribed bool
}

func (b *fakeBus) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failures > 0 {
		b.failures--
		return nil, errors.New("not started")
	}
	b.subject = subject
	b.handler = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.unsubscribed = true
	}, nil
}

func (b *fakeBus) getHandler() func(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handler
}

func (b *fakeBus) snapshot() (string, int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.subject, b.failures, b.unsubscribed
}

func TestJournal_SubscribesAndUnsubscribes(t *testing.T) {
	bus := &fakeBus{}
	j := NewJournal(bus)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Start(ctx) }()

	waitFor(t, func() bool { return bus.getHandler() != nil })
	subject, _, _ := bus.snapshot()
	testutil.AssertEqual(t, "subject", subject, "farm.>")

	// Events must not panic the worker, well-formed or not.
	ev := farm.PlotEvent{Kind: farm.EventPlanted, Day: 2, MapId: "farm", Crop: "radish"}
	data, err := json.Marshal(&ev)
	if err != nil {
		t.Fatalf("marshalling event: %v", err)
	}
	bus.getHandler()(data)
	bus.getHandler()([]byte("{not json"))

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("journal did not stop")
	}

	_, _, unsubscribed := bus.snapshot()
	testutil.AssertEqual(t, "unsubscribed", unsubscribed, true)
}

func TestJournal_RetriesUntilBusIsUp(t *testing.T) {
	bus := &fakeBus{failures: 2}
	j := NewJournal(bus)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Start(ctx) }()

	waitFor(t, func() bool { return bus.getHandler() != nil })
	_, failures, _ := bus.snapshot()
	testutil.AssertEqual(t, "failures exhausted", failures, 0)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("journal did not stop")
	}
}

func TestJournal_StopsWhileRetrying(t *testing.T) {
	bus := &fakeBus{failures: 1 << 30}
	j := NewJournal(bus)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Start(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("journal did not stop")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}
