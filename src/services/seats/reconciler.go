package seats

import (
	"context"
	"sort"
	"time"

	"Backend-Celestia-Admin/src/models"

	"github.com/sirupsen/logrus"
)

type OrderStore interface {
	FindAll(ctx context.Context) ([]models.RegistrationOrder, error)
}

type SeatStore interface {
	ListBookedBefore(ctx context.Context, cutoff time.Time) ([]string, error)
	Release(ctx context.Context, seatNumber string) error
}

const DefaultReleaseGrace = 30 * time.Minute

// Reconciler frees seats that are booked but no longer held by any live attendee.
// Only seats untouched for at least grace are considered, so a seat booked by the
// registration site before its order document is written is left alone.
type Reconciler struct {
	orders OrderStore
	seats  SeatStore
	grace  time.Duration
	log    *logrus.Logger
	now    func() time.Time
}

func NewReconciler(orders OrderStore, seats SeatStore, grace time.Duration, log *logrus.Logger) *Reconciler {
	if grace <= 0 {
		grace = DefaultReleaseGrace
	}
	return &Reconciler{orders: orders, seats: seats, grace: grace, log: log, now: time.Now}
}

type Report struct {
	Booked   int      `json:"booked"`
	Released []string `json:"released"`
	Failed   []string `json:"failed,omitempty"`
}

// HeldSeats returns every seat still claimed by an order. A seat stops being held
// once the attendee it maps to is rejected.
func HeldSeats(orders []models.RegistrationOrder) map[string]bool {
	held := map[string]bool{}
	for i := range orders {
		o := &orders[i]
		released := map[string]bool{}
		for pos := range o.Attendees {
			seat := o.SeatAt(pos)
			if seat == "" {
				continue
			}
			if o.Attendees[pos].ApprovalState() == models.StatusRejected {
				released[seat] = true
				continue
			}
			held[seat] = true
		}
		for _, seat := range o.Seats {
			if !released[seat] {
				held[seat] = true
			}
		}
	}
	return held
}

// OrphanedSeats lists the booked seats no order holds, sorted.
func OrphanedSeats(orders []models.RegistrationOrder, booked []string) []string {
	held := HeldSeats(orders)
	out := []string{}
	for _, seat := range booked {
		if !held[seat] {
			out = append(out, seat)
		}
	}
	sort.Strings(out)
	return out
}

func (r *Reconciler) Run(ctx context.Context) (*Report, error) {
	cutoff := r.now().Add(-r.grace)
	orders, err := r.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	booked, err := r.seats.ListBookedBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	report := &Report{Booked: len(booked), Released: []string{}}
	for _, seat := range OrphanedSeats(orders, booked) {
		if err := r.seats.Release(ctx, seat); err != nil {
			r.log.WithField("seatNumber", seat).WithError(err).Error("❌ failed to release orphaned seat")
			report.Failed = append(report.Failed, seat)
			continue
		}
		report.Released = append(report.Released, seat)
	}

	r.log.WithFields(logrus.Fields{
		"booked":   report.Booked,
		"released": len(report.Released),
		"failed":   len(report.Failed),
	}).Info("seat reconciliation finished")
	return report, nil
}
