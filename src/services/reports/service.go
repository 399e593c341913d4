package reports

import (
	"context"
	"math"
	"sort"

	"Backend-Celestia-Admin/src/models"
	"Backend-Celestia-Admin/src/utils"

	"github.com/sirupsen/logrus"
)

type OrderStore interface {
	FindAll(ctx context.Context) ([]models.RegistrationOrder, error)
}

// Service computes dashboard numbers from a full scan of the orders. Each call reads
// a fresh snapshot; nothing is cached.
type Service struct {
	orders OrderStore
	log    *logrus.Logger
}

func NewService(orders OrderStore, log *logrus.Logger) *Service {
	return &Service{orders: orders, log: log}
}

func (s *Service) scan(ctx context.Context) ([]models.RegistrationOrder, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		s.log.WithError(err).Error("❌ failed to scan orders")
		return nil, utils.InternalError(err)
	}
	return orders, nil
}

func (s *Service) ComputeCheckInStats(ctx context.Context) (*models.CheckInStats, error) {
	orders, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	stats := BuildCheckInStats(orders)
	return &stats, nil
}

func (s *Service) ComputeApprovalStats(ctx context.Context) (*models.ApprovalStats, error) {
	orders, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	stats := BuildApprovalStats(orders)
	return &stats, nil
}

func (s *Service) ListAttendees(ctx context.Context) ([]models.FlatAttendee, error) {
	orders, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	return Flatten(orders), nil
}

// Flatten lists every attendee with its order's id and index and its derived seat.
func Flatten(orders []models.RegistrationOrder) []models.FlatAttendee {
	out := []models.FlatAttendee{}
	for i := range orders {
		o := &orders[i]
		index := o.Index
		if index == "" {
			index = models.SeatNotAssigned
		}
		for pos := range o.Attendees {
			out = append(out, models.FlatAttendee{
				Attendee:   o.Attendees[pos].Normalized(),
				OrderID:    o.ID,
				SeatNumber: o.SeatOrDefault(pos),
				Index:      index,
			})
		}
	}
	return out
}

// BuildCheckInStats counts approved attendees and the checked-in share of them.
// Checked-in users are ordered by check-in time, earliest first.
func BuildCheckInStats(orders []models.RegistrationOrder) models.CheckInStats {
	stats := models.CheckInStats{
		Users:          []models.FlatAttendee{},
		CheckedInUsers: []models.CheckedInUser{},
	}
	for _, a := range Flatten(orders) {
		if !a.Approved() {
			continue
		}
		stats.Users = append(stats.Users, a)
		if a.IsCheckedIn {
			stats.CheckedInUsers = append(stats.CheckedInUsers, models.CheckedInUser{
				Username:    a.Username,
				NIC:         a.Index,
				CheckInTime: a.CheckInTime,
			})
		}
	}

	sort.SliceStable(stats.CheckedInUsers, func(i, j int) bool {
		ti, tj := stats.CheckedInUsers[i].CheckInTime, stats.CheckedInUsers[j].CheckInTime
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		}
		return ti.Before(*tj)
	})

	stats.TotalCount = len(stats.Users)
	stats.CheckedInCount = len(stats.CheckedInUsers)
	if stats.TotalCount > 0 {
		pct := float64(stats.CheckedInCount) / float64(stats.TotalCount) * 100
		stats.CheckedInPercentage = math.Round(pct*100) / 100
	}
	return stats
}

func BuildApprovalStats(orders []models.RegistrationOrder) models.ApprovalStats {
	var stats models.ApprovalStats
	for i := range orders {
		for _, a := range orders[i].Attendees {
			stats.TotalUsers++
			switch a.ApprovalState() {
			case models.StatusApproved:
				stats.ApprovedUsers++
				stats.TotalApprovedPrice += a.TotalPrice
			case models.StatusRejected:
				stats.RejectedUsers++
			default:
				stats.PendingUsers++
			}
		}
	}
	return stats
}
