package controllers

import (
	"context"

	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/services/approvals"
	"Backend-Celestia-Admin/src/services/auth"
	"Backend-Celestia-Admin/src/services/checkins"
	"Backend-Celestia-Admin/src/services/tickets"
	"Backend-Celestia-Admin/src/services/visitors"
	"Backend-Celestia-Admin/src/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type ApprovalService interface {
	Approve(ctx context.Context, attendeeID string) (*approvals.ApprovalResult, error)
	Reject(ctx context.Context, attendeeID string) (*approvals.RejectionResult, error)
	Delete(ctx context.Context, attendeeID string) (*approvals.DeleteResult, error)
	ResendTicket(ctx context.Context, attendeeID string) (*approvals.ApprovalResult, error)
}

type CheckInService interface {
	Lookup(ctx context.Context, index string) (*checkins.LookupResult, error)
	ToggleCheckIn(ctx context.Context, index, seatNumber, identityKey string) (*checkins.ToggleResult, error)
	ScanCheckIn(ctx context.Context, id tickets.Identity) (*checkins.ScanResult, error)
	ScanRaw(ctx context.Context, raw string) (*checkins.ScanResult, error)
}

type ReportService interface {
	ComputeCheckInStats(ctx context.Context) (*models.CheckInStats, error)
	ComputeApprovalStats(ctx context.Context) (*models.ApprovalStats, error)
	ListAttendees(ctx context.Context) ([]models.FlatAttendee, error)
}

type VisitorService interface {
	Create(ctx context.Context, v *models.Visitor) (*visitors.CreateResult, error)
	List(ctx context.Context) ([]models.Visitor, error)
	DeleteByIndex(ctx context.Context, index string) (*models.Visitor, error)
	Approve(ctx context.Context, visitorID string) (*visitors.ApprovalResult, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

// Handlers holds every HTTP handler of the admin API.
type Handlers struct {
	Approvals ApprovalService
	CheckIns  CheckInService
	Reports   ReportService
	Visitors  VisitorService
	Auth      AuthService
	Validate  *validator.Validate
}

// parseBody decodes the JSON body into req and validates it.
func (h *Handlers) parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return utils.ValidationError("Invalid input: " + err.Error())
	}
	return utils.ValidateStruct(h.Validate, req)
}
