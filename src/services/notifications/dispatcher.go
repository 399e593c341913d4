package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrGatewayNotConfigured = errors.New("mail gateway not configured")

// Outcome is the notification half of a two-phase result. It is reported next to the
// state change and never rolls it back.
type Outcome struct {
	Attempted bool     `json:"attempted"`
	Sent      bool     `json:"sent"`
	Attempts  int      `json:"attempts"`
	Provider  string   `json:"provider,omitempty"`
	Accepted  []string `json:"accepted,omitempty"`
	MessageID string   `json:"messageId,omitempty"`
	Queued    bool     `json:"queued,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Skipped is the outcome for a mail that was never attempted.
func Skipped(reason string) Outcome {
	return Outcome{Error: reason}
}

// Dispatcher sends through a Gateway with a per-attempt timeout and a fixed number of retries.
type Dispatcher struct {
	gateway Gateway
	from    Address
	timeout time.Duration
	retries int
	log     *logrus.Logger
}

func NewDispatcher(gateway Gateway, from Address, timeout time.Duration, retries int, log *logrus.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	return &Dispatcher{gateway: gateway, from: from, timeout: timeout, retries: retries, log: log}
}

// Deliver fills in the sender and sends msg. The returned error is non-nil when every
// attempt failed; the Outcome describes what happened either way.
func (d *Dispatcher) Deliver(ctx context.Context, msg Message) (Outcome, error) {
	if d == nil || d.gateway == nil {
		return Outcome{Error: ErrGatewayNotConfigured.Error()}, ErrGatewayNotConfigured
	}
	if msg.From.Email == "" {
		msg.From = d.from
	}

	out := Outcome{Attempted: true}
	var lastErr error
	for attempt := 0; attempt <= d.retries; attempt++ {
		out.Attempts++
		attemptCtx, cancel := context.WithTimeout(ctx, d.timeout)
		res, err := d.gateway.Send(attemptCtx, msg)
		cancel()
		if err == nil {
			out.Sent = true
			out.Provider = res.Provider
			out.Accepted = res.Accepted
			out.MessageID = res.MessageID
			return out, nil
		}

		lastErr = err
		d.log.WithFields(logrus.Fields{
			"subject": msg.Subject,
			"to":      recipients(msg.To),
			"attempt": out.Attempts,
		}).WithError(err).Warn("mail send failed")

		if ctx.Err() != nil {
			break
		}
	}

	out.Error = lastErr.Error()
	return out, fmt.Errorf("deliver %q: %w", msg.Subject, lastErr)
}
