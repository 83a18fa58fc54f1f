package shared

import (
	"context"
	"log/slog"
)

// SideEffect is a named consequence of a successful write: a
// notification, a binary cleanup, an audit record. Effects run after
// the primary persist and must never undo it.
type SideEffect struct {
	Name string
	Fn   func(ctx context.Context) error
}

// EffectRunner executes side effects in order, isolating failures: a
// failing effect is logged and the remaining effects still run. The
// runner never returns an error to the write path.
type EffectRunner struct {
	logger *slog.Logger
}

// NewEffectRunner constructs an EffectRunner.
func NewEffectRunner(logger *slog.Logger) *EffectRunner {
	return &EffectRunner{logger: logger}
}

// Run executes the effects sequentially.
func (r *EffectRunner) Run(ctx context.Context, effects ...SideEffect) {
	for _, effect := range effects {
		if effect.Fn == nil {
			continue
		}
		if err := effect.Fn(ctx); err != nil {
			if r != nil && r.logger != nil {
				r.logger.Error("side effect failed",
					slog.String("effect", effect.Name),
					slog.Any("error", err))
			}
		}
	}
}
