package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/houhuawei23/text-processing-tool/internal/backend"
	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

// stubBackend lets tests control each call's outcome and timing
type stubBackend struct {
	fn func(input string) (domain.Result, error)
}

func (s stubBackend) Submit(_ context.Context, input string, _ domain.Params) (domain.Result, error) {
	return s.fn(input)
}

func newTestQueue(fn func(input string) (domain.Result, error)) *Queue {
	reg := backend.NewRegistry()
	reg.Register(domain.KindTextTransform, stubBackend{fn: fn})
	q := New(reg)
	q.SetHeartbeat(5 * time.Millisecond)
	return q
}

func TestQueue_TaskReachesCompleted(t *testing.T) {
	q := newTestQueue(func(input string) (domain.Result, error) {
		return &domain.TextTransformResult{ProcessedText: input + "!"}, nil
	})

	task := q.Submit(context.Background(), domain.KindTextTransform, "t", "hello", domain.Params{})
	q.Wait()

	got, ok := q.Get(task.ID)
	if !ok {
		t.Fatalf("task %d not found", task.ID)
	}
	if got.Status != domain.StatusCompleted {
		t.Errorf("Status = %s, want completed", got.Status)
	}
	if got.Progress != 100 {
		t.Errorf("Progress = %d, want 100", got.Progress)
	}
	if got.Result.DisplayText() != "hello!" {
		t.Errorf("DisplayText = %q, want %q", got.Result.DisplayText(), "hello!")
	}
	if got.FinishedAt.IsZero() {
		t.Error("FinishedAt not stamped")
	}
}

func TestQueue_FailureIsolation(t *testing.T) {
	q := newTestQueue(func(input string) (domain.Result, error) {
		if input == "boom" {
			return nil, errors.New("backend exploded")
		}
		return &domain.TextTransformResult{ProcessedText: input}, nil
	})

	ctx := context.Background()
	t1 := q.Submit(ctx, domain.KindTextTransform, "a", "one", domain.Params{})
	t2 := q.Submit(ctx, domain.KindTextTransform, "b", "boom", domain.Params{})
	t3 := q.Submit(ctx, domain.KindTextTransform, "c", "three", domain.Params{})
	q.Wait()

	for _, tc := range []struct {
		id   int64
		want domain.TaskStatus
	}{
		{t1.ID, domain.StatusCompleted},
		{t2.ID, domain.StatusFailed},
		{t3.ID, domain.StatusCompleted},
	} {
		got, _ := q.Get(tc.id)
		if got.Status != tc.want {
			t.Errorf("task %d: Status = %s, want %s", tc.id, got.Status, tc.want)
		}
	}

	failed, _ := q.Get(t2.ID)
	if failed.Err == "" {
		t.Error("failed task has empty error message")
	}
	if failed.Result != nil {
		t.Error("failed task should carry no result")
	}
}

func TestQueue_BackendPanicIsConverted(t *testing.T) {
	q := newTestQueue(func(input string) (domain.Result, error) {
		panic("unexpected")
	})

	task := q.Submit(context.Background(), domain.KindTextTransform, "t", "x", domain.Params{})
	q.Wait()

	got, _ := q.Get(task.ID)
	if got.Status != domain.StatusFailed {
		t.Fatalf("Status = %s, want failed", got.Status)
	}
	if got.Err == "" {
		t.Error("panic produced empty error message")
	}
}

func TestQueue_ProgressMonotonicBelowCeiling(t *testing.T) {
	release := make(chan struct{})
	q := newTestQueue(func(input string) (domain.Result, error) {
		<-release
		return &domain.TextTransformResult{ProcessedText: input}, nil
	})

	var mu sync.Mutex
	var seen []int
	q.Subscribe(func(task *domain.Task) {
		if task.Status == domain.StatusProcessing {
			mu.Lock()
			seen = append(seen, task.Progress)
			mu.Unlock()
		}
	})

	q.Submit(context.Background(), domain.KindTextTransform, "t", "x", domain.Params{})
	time.Sleep(60 * time.Millisecond)
	close(release)
	q.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) < 2 {
		t.Fatalf("expected multiple progress updates, got %v", seen)
	}
	prev := 0
	for _, p := range seen {
		if p < prev {
			t.Errorf("progress went backwards: %v", seen)
		}
		if p >= 100 {
			t.Errorf("progress reached 100 before completion: %v", seen)
		}
		prev = p
	}
}

func TestQueue_IDsMonotonic(t *testing.T) {
	q := newTestQueue(func(input string) (domain.Result, error) {
		return &domain.TextTransformResult{ProcessedText: input}, nil
	})

	var prev int64
	for i := 0; i < 5; i++ {
		task := q.Add(domain.KindTextTransform, "t", "x", domain.Params{})
		if task.ID <= prev {
			t.Fatalf("IDs not increasing: %d after %d", task.ID, prev)
		}
		prev = task.ID
	}
}

func TestQueue_ClearCompleted(t *testing.T) {
	q := newTestQueue(func(input string) (domain.Result, error) {
		if input == "boom" {
			return nil, errors.New("nope")
		}
		return &domain.TextTransformResult{ProcessedText: input}, nil
	})

	ctx := context.Background()
	q.Submit(ctx, domain.KindTextTransform, "a", "one", domain.Params{})
	q.Submit(ctx, domain.KindTextTransform, "b", "boom", domain.Params{})
	q.Submit(ctx, domain.KindTextTransform, "c", "three", domain.Params{})
	q.Wait()

	if removed := q.ClearCompleted(); removed != 2 {
		t.Errorf("ClearCompleted removed %d, want 2", removed)
	}

	remaining := q.Snapshot()
	if len(remaining) != 1 {
		t.Fatalf("queue length = %d, want 1", len(remaining))
	}
	if remaining[0].Status != domain.StatusFailed {
		t.Errorf("remaining task status = %s, want failed", remaining[0].Status)
	}
}

func TestQueue_SnapshotOrder(t *testing.T) {
	q := newTestQueue(func(input string) (domain.Result, error) {
		return &domain.TextTransformResult{ProcessedText: input}, nil
	})

	for _, in := range []string{"a", "b", "c"} {
		q.Add(domain.KindTextTransform, in, in, domain.Params{})
	}

	snap := q.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot length = %d, want 3", len(snap))
	}
	for i, want := range []string{"a", "b", "c"} {
		if snap[i].Input != want {
			t.Errorf("snapshot[%d].Input = %q, want %q", i, snap[i].Input, want)
		}
	}
}
