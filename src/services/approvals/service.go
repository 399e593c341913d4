package approvals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Backend-Celestia-Admin/src/database"
	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/services/notifications"
	"Backend-Celestia-Admin/src/services/tickets"
	"Backend-Celestia-Admin/src/utils"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStore interface {
	FindByAttendeeID(ctx context.Context, attendeeID primitive.ObjectID) (*models.RegistrationOrder, error)
	SetAttendeeStatus(ctx context.Context, attendeeID primitive.ObjectID, status models.ApprovalStatus, at time.Time, seat string) (*models.RegistrationOrder, error)
	RemoveAttendee(ctx context.Context, attendeeID primitive.ObjectID, seat string) (*models.RegistrationOrder, error)
}

type SeatStore interface {
	Release(ctx context.Context, seatNumber string) error
}

type TicketGenerator interface {
	Generate(ctx context.Context, payload models.TicketPayload) (*tickets.Artifacts, error)
}

type Mailer interface {
	Deliver(ctx context.Context, msg notifications.Message) (notifications.Outcome, error)
}

// ResendQueue schedules a later ticket mail when every delivery attempt failed.
type ResendQueue interface {
	EnqueueTicketResend(ctx context.Context, attendeeID string) error
}

type Service struct {
	orders    OrderStore
	seats     SeatStore
	generator TicketGenerator
	mailer    Mailer
	queue     ResendQueue
	feed      notifications.OrganizerFeed
	event     string
	log       *logrus.Logger
	now       func() time.Time
}

func NewService(orders OrderStore, seats SeatStore, generator TicketGenerator, mailer Mailer, event string, log *logrus.Logger) *Service {
	return &Service{
		orders:    orders,
		seats:     seats,
		generator: generator,
		mailer:    mailer,
		event:     event,
		log:       log,
		now:       time.Now,
	}
}

// WithQueue enables deferred resends of failed ticket mails.
func (s *Service) WithQueue(q ResendQueue) *Service {
	s.queue = q
	return s
}

// WithFeed posts approval events to the organizers' channel.
func (s *Service) WithFeed(f notifications.OrganizerFeed) *Service {
	s.feed = f
	return s
}

// ParseAttendeeID validates a hex attendee id.
func ParseAttendeeID(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, utils.ValidationError("User ID is required")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.ValidationError("invalid user ID")
	}
	return oid, nil
}

// locate returns the order holding the attendee and the attendee's position.
func (s *Service) locate(ctx context.Context, oid primitive.ObjectID) (*models.RegistrationOrder, int, error) {
	order, err := s.orders.FindByAttendeeID(ctx, oid)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, -1, utils.NotFoundError("order")
		}
		return nil, -1, utils.InternalError(err)
	}
	pos := order.AttendeePosition(oid)
	if pos < 0 {
		return nil, -1, utils.NotFoundError("attendee")
	}
	return order, pos, nil
}

// commit applies the status change and returns the order as written.
func (s *Service) commit(ctx context.Context, oid primitive.ObjectID, status models.ApprovalStatus, seat string) (*models.RegistrationOrder, int, error) {
	order, err := s.orders.SetAttendeeStatus(ctx, oid, status, s.now(), seat)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, -1, utils.NotFoundError("order")
		}
		return nil, -1, utils.InternalError(err)
	}
	pos := order.AttendeePosition(oid)
	if pos < 0 {
		return nil, -1, utils.NotFoundError("attendee")
	}
	return order, pos, nil
}

func (s *Service) announce(format string, args ...any) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Announce(fmt.Sprintf(format, args...)); err != nil {
		s.log.WithError(err).Warn("organizer feed post failed")
	}
}

func (s *Service) fields(order *models.RegistrationOrder, attendeeID string) logrus.Fields {
	return logrus.Fields{
		"attendeeId": attendeeID,
		"orderId":    order.ID.Hex(),
		"index":      order.Index,
	}
}
