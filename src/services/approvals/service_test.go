package approvals

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"Backend-Celestia-Admin/src/database"
	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/qrcode"
	"Backend-Celestia-Admin/src/services/notifications"
	"Backend-Celestia-Admin/src/services/tickets"
	"Backend-Celestia-Admin/src/utils"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	orders *MockOrderStore
	seats  *MockSeatStore
	gen    *MockGenerator
	mailer *MockMailer
	svc    *Service
}

func newFixture() *fixture {
	log := logrus.New()
	log.SetOutput(io.Discard)
	f := &fixture{
		orders: new(MockOrderStore),
		seats:  new(MockSeatStore),
		gen:    new(MockGenerator),
		mailer: new(MockMailer),
	}
	f.svc = NewService(f.orders, f.seats, f.gen, f.mailer, "Celestia 2024", log)
	return f
}

var attendeeID = primitive.NewObjectID()

func pendingOrder() *models.RegistrationOrder {
	return &models.RegistrationOrder{
		ID:    primitive.NewObjectID(),
		Index: "950001234V",
		Seats: []string{"A1"},
		Attendees: []models.Attendee{{
			ID:         attendeeID,
			Username:   "nimal",
			Email:      "nimal@example.com",
			Whatsapp:   "0771234567",
			Department: "CS",
			FoodList:   []string{"Rice"},
			TotalPrice: 2500,
			Status:     models.StatusPending,
		}},
	}
}

func withStatus(o *models.RegistrationOrder, status models.ApprovalStatus, seat string) *models.RegistrationOrder {
	cp := *o
	cp.Attendees = append([]models.Attendee(nil), o.Attendees...)
	cp.Attendees[0].Status = status
	cp.Attendees[0].IsApproved = status == models.StatusApproved
	cp.Attendees[0].IsRejected = status == models.StatusRejected
	if seat != "" {
		cp.Attendees[0].SeatNumber = seat
	}
	return &cp
}

func sentOutcome() notifications.Outcome {
	return notifications.Outcome{Attempted: true, Sent: true, Attempts: 1, Provider: "smtp", Accepted: []string{"nimal@example.com"}}
}

func TestApproveCommitsAndSendsTicket(t *testing.T) {
	f := newFixture()
	order := pendingOrder()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)
	f.orders.On("SetAttendeeStatus", mock.Anything, attendeeID, models.StatusApproved, mock.Anything, "A1").
		Return(withStatus(order, models.StatusApproved, "A1"), nil)
	f.gen.On("Generate", mock.Anything, mock.MatchedBy(func(p models.TicketPayload) bool {
		return p.SeatNumber == "A1" && p.OrderIndex == "950001234V" && p.Username == "nimal"
	})).Return(&tickets.Artifacts{QRCode: []byte("png")}, nil)
	f.mailer.On("Deliver", mock.Anything, mock.MatchedBy(func(m notifications.Message) bool {
		return len(m.Attachments) == 1 &&
			m.Attachments[0].ContentID == notifications.QRContentID &&
			strings.Contains(m.HTML, "cid:"+m.Attachments[0].ContentID)
	})).Return(sentOutcome(), nil)

	res, err := f.svc.Approve(context.Background(), attendeeID.Hex())

	require.NoError(t, err)
	assert.True(t, res.StateChanged)
	assert.True(t, res.Attendee.IsApproved)
	assert.False(t, res.Attendee.IsRejected)
	assert.Equal(t, models.StatusApproved, res.Attendee.Status)
	assert.Equal(t, "A1", res.SeatNumber)
	assert.True(t, res.Artifact.Generated)
	assert.True(t, res.Notification.Sent)
	f.orders.AssertExpectations(t)
	f.gen.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

type failingRenderer struct{}

func (failingRenderer) RenderPDF(context.Context, string) ([]byte, error) {
	return nil, errors.New("chrome not found")
}

func TestApproveMailsQRWhenPDFRenderFails(t *testing.T) {
	f := newFixture()
	log := logrus.New()
	log.SetOutput(io.Discard)
	generator := tickets.NewGenerator(qrcode.NewEncoder(128), failingRenderer{}, true)
	svc := NewService(f.orders, f.seats, generator, f.mailer, "Celestia 2024", log)

	order := pendingOrder()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)
	f.orders.On("SetAttendeeStatus", mock.Anything, attendeeID, models.StatusApproved, mock.Anything, "A1").
		Return(withStatus(order, models.StatusApproved, "A1"), nil)
	f.mailer.On("Deliver", mock.Anything, mock.MatchedBy(func(m notifications.Message) bool {
		return len(m.Attachments) == 1 && m.Attachments[0].ContentID == notifications.QRContentID
	})).Return(sentOutcome(), nil)

	res, err := svc.Approve(context.Background(), attendeeID.Hex())

	require.NoError(t, err)
	assert.True(t, res.StateChanged)
	assert.True(t, res.Artifact.Generated)
	assert.False(t, res.Artifact.PDF)
	assert.Contains(t, res.Artifact.Error, "chrome not found")
	assert.True(t, res.Notification.Sent)
	f.mailer.AssertNumberOfCalls(t, "Deliver", 1)
}

func TestApproveWithoutSeatUsesSentinel(t *testing.T) {
	f := newFixture()
	order := pendingOrder()
	order.Seats = nil
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)
	f.orders.On("SetAttendeeStatus", mock.Anything, attendeeID, models.StatusApproved, mock.Anything, "").
		Return(withStatus(order, models.StatusApproved, ""), nil)
	f.gen.On("Generate", mock.Anything, mock.MatchedBy(func(p models.TicketPayload) bool {
		return p.SeatNumber == models.SeatNotAssigned
	})).Return(&tickets.Artifacts{QRCode: []byte("png")}, nil)
	f.mailer.On("Deliver", mock.Anything, mock.Anything).Return(sentOutcome(), nil)

	res, err := f.svc.Approve(context.Background(), attendeeID.Hex())

	require.NoError(t, err)
	assert.Equal(t, models.SeatNotAssigned, res.SeatNumber)
}

func TestApproveKeepsExplicitSeat(t *testing.T) {
	f := newFixture()
	order := pendingOrder()
	order.Attendees[0].SeatNumber = "B7"
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)
	f.orders.On("SetAttendeeStatus", mock.Anything, attendeeID, models.StatusApproved, mock.Anything, "").
		Return(withStatus(order, models.StatusApproved, ""), nil)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(&tickets.Artifacts{QRCode: []byte("png")}, nil)
	f.mailer.On("Deliver", mock.Anything, mock.Anything).Return(sentOutcome(), nil)

	res, err := f.svc.Approve(context.Background(), attendeeID.Hex())

	require.NoError(t, err)
	assert.Equal(t, "B7", res.SeatNumber)
}

func TestApproveValidatesID(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Approve(context.Background(), "")
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = f.svc.Approve(context.Background(), "not-an-id")
	assert.True(t, utils.IsKind(err, utils.KindValidation))
	f.orders.AssertNotCalled(t, "FindByAttendeeID", mock.Anything, mock.Anything)
}

func TestApproveUnknownAttendee(t *testing.T) {
	f := newFixture()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(nil, database.ErrNotFound)

	res, err := f.svc.Approve(context.Background(), attendeeID.Hex())

	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	assert.Equal(t, "order not found", err.Error())
	f.orders.AssertNotCalled(t, "SetAttendeeStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestApproveOrderWithoutAttendee(t *testing.T) {
	f := newFixture()
	order := pendingOrder()
	order.Attendees[0].ID = primitive.NewObjectID()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)

	_, err := f.svc.Approve(context.Background(), attendeeID.Hex())

	require.Error(t, err)
	assert.Equal(t, "attendee not found", err.Error())
}

func TestApproveArtifactFailureKeepsApproval(t *testing.T) {
	f := newFixture()
	order := pendingOrder()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)
	f.orders.On("SetAttendeeStatus", mock.Anything, attendeeID, models.StatusApproved, mock.Anything, "A1").
		Return(withStatus(order, models.StatusApproved, "A1"), nil)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("encoder broke"))

	res, err := f.svc.Approve(context.Background(), attendeeID.Hex())

	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindArtifactGeneration))
	require.NotNil(t, res)
	assert.True(t, res.StateChanged)
	assert.True(t, res.Attendee.IsApproved)
	assert.False(t, res.Artifact.Generated)
	assert.Equal(t, "encoder broke", res.Artifact.Error)
	assert.False(t, res.Notification.Attempted)
	f.mailer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestApproveMailFailureIsQueued(t *testing.T) {
	f := newFixture()
	log, hook := logtest.NewNullLogger()
	f.svc.log = log
	queue := new(MockQueue)
	f.svc.WithQueue(queue)
	order := pendingOrder()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)
	f.orders.On("SetAttendeeStatus", mock.Anything, attendeeID, models.StatusApproved, mock.Anything, "A1").
		Return(withStatus(order, models.StatusApproved, "A1"), nil)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(&tickets.Artifacts{QRCode: []byte("png")}, nil)
	f.mailer.On("Deliver", mock.Anything, mock.Anything).
		Return(notifications.Outcome{Attempted: true, Attempts: 2, Error: "smtp down"}, errors.New("smtp down"))
	queue.On("EnqueueTicketResend", mock.Anything, attendeeID.Hex()).Return(nil)

	res, err := f.svc.Approve(context.Background(), attendeeID.Hex())

	require.NoError(t, err)
	assert.True(t, res.StateChanged)
	assert.False(t, res.Notification.Sent)
	assert.True(t, res.Notification.Queued)

	var logged error
	for _, e := range hook.AllEntries() {
		if e.Message == "⚠️ ticket mail delivery failed" {
			logged, _ = e.Data[logrus.ErrorKey].(error)
		}
	}
	assert.EqualError(t, logged, "smtp down")
	assert.Equal(t, "smtp down", res.Notification.Error)
	queue.AssertExpectations(t)
}

func TestApprovePostsToFeed(t *testing.T) {
	f := newFixture()
	feed := new(MockFeed)
	f.svc.WithFeed(feed)
	order := pendingOrder()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)
	f.orders.On("SetAttendeeStatus", mock.Anything, attendeeID, models.StatusApproved, mock.Anything, "A1").
		Return(withStatus(order, models.StatusApproved, "A1"), nil)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(&tickets.Artifacts{QRCode: []byte("png")}, nil)
	f.mailer.On("Deliver", mock.Anything, mock.Anything).Return(sentOutcome(), nil)
	feed.On("Announce", mock.MatchedBy(func(s string) bool {
		return strings.Contains(s, "nimal") && strings.Contains(s, "A1")
	})).Return(errors.New("discord unavailable"))

	_, err := f.svc.Approve(context.Background(), attendeeID.Hex())

	require.NoError(t, err)
	feed.AssertExpectations(t)
}

func TestRejectReleasesSeat(t *testing.T) {
	f := newFixture()
	order := pendingOrder()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)
	f.orders.On("SetAttendeeStatus", mock.Anything, attendeeID, models.StatusRejected, mock.Anything, "").
		Return(withStatus(order, models.StatusRejected, ""), nil)
	f.seats.On("Release", mock.Anything, "A1").Return(nil)
	f.mailer.On("Deliver", mock.Anything, mock.MatchedBy(func(m notifications.Message) bool {
		return m.Subject == notifications.SubjectRejected
	})).Return(sentOutcome(), nil)

	res, err := f.svc.Reject(context.Background(), attendeeID.Hex())

	require.NoError(t, err)
	assert.True(t, res.StateChanged)
	assert.True(t, res.Attendee.IsRejected)
	assert.False(t, res.Attendee.IsApproved)
	assert.Equal(t, "A1", res.SeatNumber)
	assert.True(t, res.SeatReleased)
	f.seats.AssertExpectations(t)
}

func TestRejectAfterApproveClearsApproval(t *testing.T) {
	f := newFixture()
	order := withStatus(pendingOrder(), models.StatusApproved, "A1")
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)
	f.orders.On("SetAttendeeStatus", mock.Anything, attendeeID, models.StatusRejected, mock.Anything, "").
		Return(withStatus(order, models.StatusRejected, ""), nil)
	f.seats.On("Release", mock.Anything, "A1").Return(nil)
	f.mailer.On("Deliver", mock.Anything, mock.Anything).Return(sentOutcome(), nil)

	res, err := f.svc.Reject(context.Background(), attendeeID.Hex())

	require.NoError(t, err)
	assert.False(t, res.Attendee.IsApproved && res.Attendee.IsRejected)
	assert.True(t, res.Attendee.IsRejected)
}

func TestRejectSeatReleaseFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	order := pendingOrder()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)
	f.orders.On("SetAttendeeStatus", mock.Anything, attendeeID, models.StatusRejected, mock.Anything, "").
		Return(withStatus(order, models.StatusRejected, ""), nil)
	f.seats.On("Release", mock.Anything, "A1").Return(database.ErrNotFound)
	f.mailer.On("Deliver", mock.Anything, mock.Anything).
		Return(notifications.Outcome{Attempted: true, Attempts: 2, Error: "timeout"}, errors.New("timeout"))

	res, err := f.svc.Reject(context.Background(), attendeeID.Hex())

	require.NoError(t, err)
	assert.True(t, res.StateChanged)
	assert.False(t, res.SeatReleased)
	assert.False(t, res.Notification.Sent)
}

func TestRejectWithoutSeat(t *testing.T) {
	f := newFixture()
	order := pendingOrder()
	order.Seats = nil
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)
	f.orders.On("SetAttendeeStatus", mock.Anything, attendeeID, models.StatusRejected, mock.Anything, "").
		Return(withStatus(order, models.StatusRejected, ""), nil)
	f.mailer.On("Deliver", mock.Anything, mock.Anything).Return(sentOutcome(), nil)

	res, err := f.svc.Reject(context.Background(), attendeeID.Hex())

	require.NoError(t, err)
	assert.Equal(t, models.SeatNotAssigned, res.SeatNumber)
	assert.False(t, res.SeatReleased)
	f.seats.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestRejectUnknownAttendee(t *testing.T) {
	f := newFixture()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(nil, database.ErrNotFound)

	_, err := f.svc.Reject(context.Background(), attendeeID.Hex())

	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	f.seats.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestDeletePullsAttendeeAndSeat(t *testing.T) {
	f := newFixture()
	order := pendingOrder()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(order, nil)
	after := *order
	after.Attendees = nil
	after.Seats = nil
	f.orders.On("RemoveAttendee", mock.Anything, attendeeID, "A1").Return(&after, nil)
	f.seats.On("Release", mock.Anything, "A1").Return(nil)

	res, err := f.svc.Delete(context.Background(), attendeeID.Hex())

	require.NoError(t, err)
	assert.Equal(t, "A1", res.SeatNumber)
	assert.True(t, res.SeatReleased)
	assert.Equal(t, "950001234V", res.Index)
	f.orders.AssertExpectations(t)
	f.seats.AssertExpectations(t)
}

func TestResendTicketRequiresApproval(t *testing.T) {
	f := newFixture()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).Return(pendingOrder(), nil)

	_, err := f.svc.ResendTicket(context.Background(), attendeeID.Hex())

	assert.True(t, utils.IsKind(err, utils.KindForbidden))
	f.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestResendTicketReportsDeliveryFailure(t *testing.T) {
	f := newFixture()
	f.orders.On("FindByAttendeeID", mock.Anything, attendeeID).
		Return(withStatus(pendingOrder(), models.StatusApproved, "A1"), nil)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(&tickets.Artifacts{QRCode: []byte("png")}, nil)
	f.mailer.On("Deliver", mock.Anything, mock.Anything).
		Return(notifications.Outcome{Attempted: true, Attempts: 2, Error: "smtp down"}, errors.New("smtp down"))

	res, err := f.svc.ResendTicket(context.Background(), attendeeID.Hex())

	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindNotification))
	assert.Equal(t, "A1", res.SeatNumber)
	assert.False(t, res.StateChanged)
}
