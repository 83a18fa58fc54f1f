package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

// AuditPruner removes expired audit history. Implemented by the audit
// service.
type AuditPruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// Worker wraps the asynq server processing the mail queue and, when a
// pruner is configured, a scheduler for the nightly cleanup.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// WorkerConfig collects the dependencies required to bootstrap the
// worker.
type WorkerConfig struct {
	RedisOpts      asynq.RedisClientOpt
	Logger         *slog.Logger
	Mailer         Mailer
	Pruner         AuditPruner
	AuditRetention time.Duration
	Concurrency    int
}

// NewWorker constructs a Worker with the task handlers mounted.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeSendEmail, sendEmailHandler(cfg.Logger, cfg.Mailer))

	var scheduler *asynq.Scheduler
	if cfg.Pruner != nil {
		mux.HandleFunc(TaskTypePruneAudit, pruneAuditHandler(cfg.Logger, cfg.Pruner, cfg.AuditRetention))
		scheduler = asynq.NewScheduler(cfg.RedisOpts, &asynq.SchedulerOpts{Location: time.UTC})
		if _, err := scheduler.Register("@daily", NewPruneAuditTask(), asynq.Queue(QueueDefault)); err != nil {
			return nil, err
		}
	}
	return &Worker{server: srv, mux: mux, scheduler: scheduler, logger: cfg.Logger}, nil
}

// Run processes jobs until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if w.scheduler != nil {
		if err := w.scheduler.Start(); err != nil {
			return err
		}
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.server.Run(w.mux)
	})
	g.Go(func() error {
		<-ctx.Done()
		if w.scheduler != nil {
			w.scheduler.Shutdown()
		}
		w.server.Shutdown()
		return ctx.Err()
	})
	return g.Wait()
}

func pruneAuditHandler(logger *slog.Logger, pruner AuditPruner, retention time.Duration) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		removed, err := pruner.Prune(ctx, retention)
		if err != nil {
			logger.Error("prune audit history", slog.Any("error", err))
			return err
		}
		if removed > 0 {
			logger.Info("pruned audit history", slog.Int64("removed", removed))
		}
		return nil
	}
}

// sendEmailHandler delivers a queued message. A malformed payload is
// dropped rather than retried.
func sendEmailHandler(logger *slog.Logger, mailer Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SendEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Error("malformed mail payload", slog.Any("error", err))
			return asynq.SkipRetry
		}
		if len(payload.To) == 0 {
			logger.Warn("mail task without recipients", slog.String("subject", payload.Subject))
			return nil
		}
		if err := mailer.Send(payload.From, payload.To, payload.Subject, payload.Body); err != nil {
			logger.Error("send mail",
				slog.String("subject", payload.Subject),
				slog.Int("recipients", len(payload.To)),
				slog.Any("error", err))
			return err
		}
		return nil
	}
}
