package visitors

import (
	"context"
	"errors"
	"strings"

	"Backend-Celestia-Admin/src/database"
	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/services/notifications"
	"Backend-Celestia-Admin/src/utils"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VisitorStore interface {
	Insert(ctx context.Context, v *models.Visitor) error
	FindAll(ctx context.Context) ([]models.Visitor, error)
	Approve(ctx context.Context, id primitive.ObjectID) (*models.Visitor, error)
	DeleteByIndex(ctx context.Context, index string) (*models.Visitor, error)
}

// Artifacts is the part of tickets.Generator used for walk-in visitors.
type Artifacts interface {
	VisitorQRCode(v *models.Visitor) ([]byte, error)
	VisitorPass(ctx context.Context, v *models.Visitor, event string) ([]byte, error)
}

type Mailer interface {
	Deliver(ctx context.Context, msg notifications.Message) (notifications.Outcome, error)
}

type Service struct {
	store     VisitorStore
	artifacts Artifacts
	mailer    Mailer
	validate  *validator.Validate
	event     string
	log       *logrus.Logger
}

func NewService(store VisitorStore, artifacts Artifacts, mailer Mailer, validate *validator.Validate, event string, log *logrus.Logger) *Service {
	return &Service{
		store:     store,
		artifacts: artifacts,
		mailer:    mailer,
		validate:  validate,
		event:     event,
		log:       log,
	}
}

type CreateResult struct {
	Visitor      *models.Visitor       `json:"visitor"`
	PassError    string                `json:"passError,omitempty"`
	Notification notifications.Outcome `json:"notification"`
}

// Create stores the visitor and mails the PDF pass to its first user. The pass and
// the mail are best-effort once the visitor is stored.
func (s *Service) Create(ctx context.Context, v *models.Visitor) (*CreateResult, error) {
	if err := utils.ValidateStruct(s.validate, v); err != nil {
		return nil, err
	}
	v.IsApproves = false
	if err := s.store.Insert(ctx, v); err != nil {
		return nil, utils.InternalError(err)
	}

	log := s.log.WithField("visitorId", v.ID.Hex()).WithField("index", v.Index)
	log.Info("✅ visitor created")
	res := &CreateResult{Visitor: v}

	pass, err := s.artifacts.VisitorPass(ctx, v, s.event)
	if err != nil {
		log.WithError(err).Warn("⚠️ visitor pass not rendered")
		res.PassError = err.Error()
	}

	msg, err := notifications.VisitorWelcomeMail(s.event, v, pass)
	if err != nil {
		res.Notification = notifications.Skipped(err.Error())
		return res, nil
	}
	res.Notification, err = s.mailer.Deliver(ctx, msg)
	if err != nil {
		log.WithError(err).Warn("⚠️ visitor welcome mail not delivered")
	}
	return res, nil
}

func (s *Service) List(ctx context.Context) ([]models.Visitor, error) {
	visitors, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, utils.InternalError(err)
	}
	return visitors, nil
}

func (s *Service) DeleteByIndex(ctx context.Context, index string) (*models.Visitor, error) {
	index = strings.TrimSpace(index)
	if index == "" {
		return nil, utils.ValidationError("Index is required")
	}
	v, err := s.store.DeleteByIndex(ctx, index)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFoundError("visitor")
		}
		return nil, utils.InternalError(err)
	}
	s.log.WithField("index", index).Info("✅ visitor deleted")
	return v, nil
}

type ApprovalResult struct {
	Visitor      *models.Visitor       `json:"visitor"`
	StateChanged bool                  `json:"stateChanged"`
	Notification notifications.Outcome `json:"notification"`
}

// Approve flags the visitor approved and mails the group's QR code. A QR failure is
// returned as an ArtifactGenerationError next to the committed result.
func (s *Service) Approve(ctx context.Context, visitorID string) (*ApprovalResult, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return nil, utils.ValidationError("Visitor ID is required")
	}
	oid, err := primitive.ObjectIDFromHex(visitorID)
	if err != nil {
		return nil, utils.ValidationError("invalid visitor ID")
	}

	v, err := s.store.Approve(ctx, oid)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFoundError("visitor")
		}
		return nil, utils.InternalError(err)
	}
	log := s.log.WithField("visitorId", visitorID).WithField("index", v.Index)
	log.Info("✅ visitor approved")
	res := &ApprovalResult{Visitor: v, StateChanged: true}

	qr, err := s.artifacts.VisitorQRCode(v)
	if err != nil {
		log.WithError(err).Error("❌ visitor QR generation failed")
		res.Notification = notifications.Skipped("QR code was not generated")
		return res, utils.ArtifactGenerationError(err)
	}

	msg, err := notifications.VisitorApprovedMail(v, qr)
	if err != nil {
		res.Notification = notifications.Skipped(err.Error())
		return res, nil
	}
	res.Notification, err = s.mailer.Deliver(ctx, msg)
	if err != nil {
		log.WithError(err).Warn("⚠️ visitor approval mail not delivered")
	}
	return res, nil
}
