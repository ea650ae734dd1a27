//go:build !integration

package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestPool_RunsSubmittedTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(2, 10, nil)
	p.Start(ctx)
	defer p.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0
	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := p.Submit(func(ctx context.Context) error {
			defer wg.Done()
			mu.Lock()
			done++
			mu.Unlock()
			return nil
		})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	waitOrFail(t, &wg)
	if done != 5 {
		t.Fatalf("expected 5 tasks, got %d", done)
	}
}

func TestPool_SurvivesPanicsAndErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(1, 4, nil)
	p.Start(ctx)
	defer p.Stop()

	_ = p.Submit(func(ctx context.Context) error { panic("boom") })
	_ = p.Submit(func(ctx context.Context) error { return errors.New("failed") })

	var wg sync.WaitGroup
	wg.Add(1)
	if err := p.Submit(func(ctx context.Context) error { wg.Done(); return nil }); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	waitOrFail(t, &wg)
}

func TestPool_SubmitRejects(t *testing.T) {
	p := NewPool(1, 1, nil) // not started: queue never drains

	if err := p.Submit(nil); !errors.Is(err, ErrNilTask) {
		t.Fatalf("expected ErrNilTask, got %v", err)
	}
	noop := func(ctx context.Context) error { return nil }
	if err := p.Submit(noop); err != nil {
		t.Fatalf("first submit should fit the queue: %v", err)
	}
	if err := p.Submit(noop); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	p.Stop()
	p.Stop()
	if err := p.Submit(noop); !errors.Is(err, ErrPoolStopped) {
		t.Fatalf("expected ErrPoolStopped, got %v", err)
	}
}

func waitOrFail(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	ch := make(chan struct{})
	go func() { wg.Wait(); close(ch) }()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tasks")
	}
}
