package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeTicketResend  = "tickets:resend"
	TypeSeatReconcile = "seats:reconcile"
)

type TicketResendPayload struct {
	AttendeeID string `json:"attendee_id"`
}

func NewTicketResendTask(attendeeID string) (*asynq.Task, error) {
	payload, err := json.Marshal(TicketResendPayload{AttendeeID: attendeeID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTicketResend, payload, asynq.MaxRetry(5)), nil
}

func NewSeatReconcileTask() *asynq.Task {
	return asynq.NewTask(TypeSeatReconcile, nil, asynq.MaxRetry(1))
}
