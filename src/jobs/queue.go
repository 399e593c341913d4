package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// DefaultResendDelay gives the mail provider time to recover before the next attempt.
const DefaultResendDelay = 10 * time.Minute

// TicketQueue enqueues ticket resends. One pending resend per attendee.
type TicketQueue struct {
	client *asynq.Client
	delay  time.Duration
	log    *logrus.Logger
}

func NewTicketQueue(client *asynq.Client, delay time.Duration, log *logrus.Logger) *TicketQueue {
	if delay <= 0 {
		delay = DefaultResendDelay
	}
	return &TicketQueue{client: client, delay: delay, log: log}
}

func resendTaskID(attendeeID string) string {
	return "resend-ticket-" + attendeeID
}

func (q *TicketQueue) EnqueueTicketResend(ctx context.Context, attendeeID string) error {
	if q == nil || q.client == nil {
		return errors.New("job queue not available")
	}
	task, err := NewTicketResendTask(attendeeID)
	if err != nil {
		return err
	}

	info, err := q.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(q.delay),
		asynq.TaskID(resendTaskID(attendeeID)),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		q.log.WithField("attendeeId", attendeeID).Info("ticket resend already queued")
		return nil
	}
	if err != nil {
		return err
	}
	q.log.WithFields(logrus.Fields{
		"attendeeId": attendeeID,
		"taskId":     info.ID,
		"processAt":  info.NextProcessAt.Format(time.RFC3339),
	}).Info("✅ scheduled ticket resend")
	return nil
}
