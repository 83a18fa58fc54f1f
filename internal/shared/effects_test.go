package shared

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestEffectRunner_FailureDoesNotStopPipeline(t *testing.T) {
	runner := NewEffectRunner(slog.Default())

	var order []string
	runner.Run(context.Background(),
		SideEffect{Name: "first", Fn: func(ctx context.Context) error {
			order = append(order, "first")
			return errors.New("boom")
		}},
		SideEffect{Name: "second", Fn: func(ctx context.Context) error {
			order = append(order, "second")
			return nil
		}},
		SideEffect{Name: "nil-fn"},
	)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected execution order: %v", order)
	}
}

func TestEffectRunner_NilLoggerSafe(t *testing.T) {
	runner := NewEffectRunner(nil)
	runner.Run(context.Background(), SideEffect{Name: "failing", Fn: func(ctx context.Context) error {
		return errors.New("boom")
	}})
}
