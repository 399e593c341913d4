package checkins

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Backend-Celestia-Admin/src/database"
	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/services/notifications"
	"Backend-Celestia-Admin/src/services/tickets"
	"Backend-Celestia-Admin/src/utils"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MsgCheckedIn   = "Check-in successful"
	MsgCheckedOut  = "Check-out successful"
	MsgNotApproved = "User is not approved for check-in"
)

type OrderStore interface {
	FindByIndex(ctx context.Context, index string) (*models.RegistrationOrder, error)
	FindByAttendeeIdentity(ctx context.Context, username, contact, department string) (*models.RegistrationOrder, error)
	SetCheckIn(ctx context.Context, orderID, attendeeID primitive.ObjectID, expectedVersion int64, checkedIn bool, at *time.Time) (*models.RegistrationOrder, error)
}

type Service struct {
	orders OrderStore
	feed   notifications.OrganizerFeed
	log    *logrus.Logger
	now    func() time.Time
}

func NewService(orders OrderStore, log *logrus.Logger) *Service {
	return &Service{orders: orders, log: log, now: time.Now}
}

func (s *Service) WithFeed(f notifications.OrganizerFeed) *Service {
	s.feed = f
	return s
}

// LookupResult is what the door page shows for an order.
type LookupResult struct {
	Users      []models.Attendee `json:"users"`
	Seats      []string          `json:"seats"`
	Index      string            `json:"index"`
	Department string            `json:"department,omitempty"`
	Email      string            `json:"email,omitempty"`
	ImageURL   string            `json:"imageURL,omitempty"`
	TotalPrice float64           `json:"totalPrice"`
}

func (s *Service) findOrder(ctx context.Context, index string) (*models.RegistrationOrder, error) {
	order, err := s.orders.FindByIndex(ctx, index)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFoundError("order")
		}
		return nil, utils.InternalError(err)
	}
	return order, nil
}

func (s *Service) Lookup(ctx context.Context, index string) (*LookupResult, error) {
	index = strings.TrimSpace(index)
	if index == "" {
		return nil, utils.ValidationError("Index is required")
	}
	order, err := s.findOrder(ctx, index)
	if err != nil {
		return nil, err
	}

	res := &LookupResult{
		Users: make([]models.Attendee, 0, len(order.Attendees)),
		Seats: order.Seats,
		Index: order.Index,
	}
	if res.Seats == nil {
		res.Seats = []string{}
	}
	for i := range order.Attendees {
		a := order.Attendees[i].Normalized()
		a.SeatNumber = order.SeatAt(i)
		res.Users = append(res.Users, a)
	}
	if p := order.Primary(); p != nil {
		res.Department = p.Department
		res.Email = p.Email
		res.ImageURL = p.ImageURL
		res.TotalPrice = p.TotalPrice
	}
	return res, nil
}

type ToggleResult struct {
	CheckedIn   bool       `json:"checkedIn"`
	CheckInTime *time.Time `json:"checkInTime"`
	Message     string     `json:"message"`
}

// ToggleCheckIn flips the primary attendee of the order between checked in and out.
// The write only succeeds if nobody else changed the attendee since it was read.
func (s *Service) ToggleCheckIn(ctx context.Context, index, seatNumber, identityKey string) (*ToggleResult, error) {
	index = strings.TrimSpace(index)
	if index == "" || strings.TrimSpace(seatNumber) == "" || strings.TrimSpace(identityKey) == "" {
		return nil, utils.ValidationError("Missing required fields")
	}
	order, err := s.findOrder(ctx, index)
	if err != nil {
		return nil, err
	}
	primary := order.Primary()
	if primary == nil {
		return nil, utils.NotFoundError("attendee")
	}
	if !primary.Approved() {
		return nil, utils.ForbiddenError(MsgNotApproved)
	}

	checkedIn := !primary.IsCheckedIn
	var at *time.Time
	if checkedIn {
		now := s.now()
		at = &now
	}

	updated, err := s.orders.SetCheckIn(ctx, order.ID, primary.ID, primary.Version, checkedIn, at)
	if err != nil {
		if errors.Is(err, database.ErrVersionConflict) {
			return nil, utils.ConflictError("check-in state changed, reload and try again")
		}
		return nil, utils.InternalError(err)
	}

	res := &ToggleResult{CheckedIn: checkedIn, CheckInTime: at, Message: MsgCheckedOut}
	if pos := updated.AttendeePosition(primary.ID); pos >= 0 {
		res.CheckedIn = updated.Attendees[pos].IsCheckedIn
		res.CheckInTime = updated.Attendees[pos].CheckInTime
	}
	if res.CheckedIn {
		res.Message = MsgCheckedIn
	}

	s.log.WithFields(logrus.Fields{
		"index":      order.Index,
		"attendeeId": primary.ID.Hex(),
		"checkedIn":  res.CheckedIn,
	}).Info("✅ " + res.Message)
	s.announce(fmt.Sprintf("🎟️ %s %s (%s)", primary.Username, strings.ToLower(res.Message), order.Index))
	return res, nil
}

func (s *Service) announce(msg string) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Announce(msg); err != nil {
		s.log.WithError(err).Warn("organizer feed post failed")
	}
}

// ScanResult reports a scanner check-in. AlreadyCheckedIn is set when the attendee
// was checked in before, in which case CheckInTime is the original time.
type ScanResult struct {
	Username         string     `json:"username"`
	Index            string     `json:"index"`
	SeatNumber       string     `json:"seatNumber"`
	CheckInTime      *time.Time `json:"checkInTime"`
	AlreadyCheckedIn bool       `json:"alreadyCheckedIn"`
	Message          string     `json:"message"`
}

// ScanCheckIn checks in the attendee printed on a ticket. It never checks anyone out.
func (s *Service) ScanCheckIn(ctx context.Context, id tickets.Identity) (*ScanResult, error) {
	id = tickets.Identity{
		Username:   strings.TrimSpace(id.Username),
		Contact:    strings.TrimSpace(id.Contact),
		Department: strings.TrimSpace(id.Department),
	}
	if !id.Complete() {
		return nil, utils.ValidationError("Missing required fields")
	}

	order, pos, err := s.findByIdentity(ctx, id)
	if err != nil {
		return nil, err
	}
	a := order.Attendees[pos]
	if !a.Approved() {
		return nil, utils.ForbiddenError(MsgNotApproved)
	}
	if a.IsCheckedIn {
		return s.scanResult(order, pos, true), nil
	}

	now := s.now()
	updated, err := s.orders.SetCheckIn(ctx, order.ID, a.ID, a.Version, true, &now)
	if errors.Is(err, database.ErrVersionConflict) {
		// another scanner got there first
		order, pos, err = s.findByIdentity(ctx, id)
		if err != nil {
			return nil, err
		}
		if order.Attendees[pos].IsCheckedIn {
			return s.scanResult(order, pos, true), nil
		}
		return nil, utils.ConflictError("check-in state changed, scan again")
	}
	if err != nil {
		return nil, utils.InternalError(err)
	}
	if p := updated.AttendeePosition(a.ID); p >= 0 {
		order, pos = updated, p
	}

	s.log.WithFields(logrus.Fields{
		"index":      order.Index,
		"attendeeId": a.ID.Hex(),
	}).Info("✅ scanned check-in")
	s.announce(fmt.Sprintf("🎟️ %s checked in (%s)", a.Username, order.Index))
	return s.scanResult(order, pos, false), nil
}

// ScanRaw parses the scanned QR text and checks the attendee in.
func (s *Service) ScanRaw(ctx context.Context, raw string) (*ScanResult, error) {
	id, err := tickets.ParseIdentity(raw)
	if err != nil {
		return nil, utils.ValidationError("unreadable ticket QR code")
	}
	return s.ScanCheckIn(ctx, id)
}

func (s *Service) findByIdentity(ctx context.Context, id tickets.Identity) (*models.RegistrationOrder, int, error) {
	order, err := s.orders.FindByAttendeeIdentity(ctx, id.Username, id.Contact, id.Department)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, -1, utils.NotFoundError("attendee")
		}
		return nil, -1, utils.InternalError(err)
	}
	for i, a := range order.Attendees {
		if a.Username == id.Username && a.Whatsapp == id.Contact && a.Department == id.Department {
			return order, i, nil
		}
	}
	return nil, -1, utils.NotFoundError("attendee")
}

func (s *Service) scanResult(order *models.RegistrationOrder, pos int, already bool) *ScanResult {
	a := order.Attendees[pos]
	msg := fmt.Sprintf("User %s checked in successfully", a.Username)
	if already {
		msg = fmt.Sprintf("User %s was already checked in", a.Username)
	}
	return &ScanResult{
		Username:         a.Username,
		Index:            order.Index,
		SeatNumber:       order.SeatOrDefault(pos),
		CheckInTime:      a.CheckInTime,
		AlreadyCheckedIn: already,
		Message:          msg,
	}
}
