package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"Backend-Celestia-Admin/src/services/approvals"
	"Backend-Celestia-Admin/src/services/seats"
	"Backend-Celestia-Admin/src/utils"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

type TicketResender interface {
	ResendTicket(ctx context.Context, attendeeID string) (*approvals.ApprovalResult, error)
}

type SeatReconciler interface {
	Run(ctx context.Context) (*seats.Report, error)
}

func HandleTicketResendTask(resender TicketResender, log *logrus.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload TicketResendPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			log.WithError(err).Error("❌ ticket resend payload decode error")
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}

		entry := log.WithField("attendeeId", payload.AttendeeID)
		_, err := resender.ResendTicket(ctx, payload.AttendeeID)
		switch {
		case err == nil:
			entry.Info("✅ ticket resent from queue")
			return nil
		case utils.IsKind(err, utils.KindNotFound), utils.IsKind(err, utils.KindForbidden), utils.IsKind(err, utils.KindValidation):
			// attendee deleted or rejected in the meantime
			entry.WithError(err).Warn("⚠️ skipping ticket resend")
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		default:
			entry.WithError(err).Error("❌ ticket resend failed")
			return err
		}
	}
}

func HandleSeatReconcileTask(reconciler SeatReconciler, log *logrus.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		report, err := reconciler.Run(ctx)
		if err != nil {
			log.WithError(err).Error("❌ seat reconciliation failed")
			return err
		}
		if len(report.Failed) > 0 {
			return fmt.Errorf("failed to release %d seats", len(report.Failed))
		}
		return nil
	}
}

func NewServeMux(resender TicketResender, reconciler SeatReconciler, log *logrus.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTicketResend, HandleTicketResendTask(resender, log))
	mux.HandleFunc(TypeSeatReconcile, HandleSeatReconcileTask(reconciler, log))
	return mux
}

// Worker runs the task server and the periodic scheduler next to the API.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	log       *logrus.Logger
}

// NewWorker registers the reconciliation task under cronSpec, e.g. "@every 15m".
// An empty cronSpec disables the schedule.
func NewWorker(redisOpt asynq.RedisClientOpt, mux *asynq.ServeMux, cronSpec string, log *logrus.Logger) (*Worker, error) {
	w := &Worker{
		server: asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: 4,
			Logger:      log,
		}),
		mux: mux,
		log: log,
	}
	if cronSpec == "" {
		return w, nil
	}

	w.scheduler = asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Logger: log})
	entryID, err := w.scheduler.Register(cronSpec, NewSeatReconcileTask(), asynq.Unique(10*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("register seat reconciliation: %w", err)
	}
	log.WithField("entryId", entryID).WithField("spec", cronSpec).Info("✅ seat reconciliation scheduled")
	return w, nil
}

func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start asynq server: %w", err)
	}
	if w.scheduler != nil {
		if err := w.scheduler.Start(); err != nil {
			w.server.Shutdown()
			return fmt.Errorf("start asynq scheduler: %w", err)
		}
	}
	w.log.Info("✅ asynq worker started")
	return nil
}

func (w *Worker) Shutdown() {
	if w.scheduler != nil {
		w.scheduler.Shutdown()
	}
	w.server.Shutdown()
	w.log.Info("asynq worker stopped")
}
