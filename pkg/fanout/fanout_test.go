package fanout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSettleAllSucceed(t *testing.T) {
	tasks := []Task[int]{
		func(ctx context.Context) (int, error) { return 1, nil },
		func(ctx context.Context) (int, error) { return 2, nil },
		func(ctx context.Context) (int, error) { return 3, nil },
	}

	results := Settle(context.Background(), tasks)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("task %d: unexpected error %v", i, r.Err)
		}
		if r.Value != i+1 {
			t.Errorf("task %d: expected %d, got %d", i, i+1, r.Value)
		}
	}
}

func TestSettleOneFailureDoesNotCancelSiblings(t *testing.T) {
	sentinel := errors.New("upstream down")
	tasks := []Task[string]{
		func(ctx context.Context) (string, error) { return "", sentinel },
		func(ctx context.Context) (string, error) {
			time.Sleep(20 * time.Millisecond)
			return "slow but fine", nil
		},
	}

	results := Settle(context.Background(), tasks)
	if !errors.Is(results[0].Err, sentinel) {
		t.Errorf("expected sentinel error, got %v", results[0].Err)
	}
	if results[1].Err != nil || results[1].Value != "slow but fine" {
		t.Errorf("sibling was affected by failure: %+v", results[1])
	}
}

func TestSettleRecoversPanics(t *testing.T) {
	tasks := []Task[int]{
		func(ctx context.Context) (int, error) { panic("boom") },
		func(ctx context.Context) (int, error) { return 7, nil },
	}

	results := Settle(context.Background(), tasks)
	if results[0].Err == nil || !strings.Contains(results[0].Err.Error(), "boom") {
		t.Errorf("expected panic converted to error, got %v", results[0].Err)
	}
	if results[1].Value != 7 {
		t.Errorf("expected sibling value 7, got %d", results[1].Value)
	}
}

func TestSettleEmpty(t *testing.T) {
	results := Settle(context.Background(), []Task[int]{})
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestErrs(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	results := []Result[int]{
		{Value: 1},
		{Err: errA},
		{Value: 2},
		{Err: errB},
	}

	errs := Errs(results)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
	if !errors.Is(errs[0], errA) || !errors.Is(errs[1], errB) {
		t.Errorf("errors out of order: %v", errs)
	}
}
