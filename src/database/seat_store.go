package database

import (
	"context"
	"fmt"
	"time"

	"Backend-Celestia-Admin/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SeatStore is the seat availability collection keyed by seatNumber.
type SeatStore struct {
	coll *mongo.Collection
}

func NewSeatStore(coll *mongo.Collection) *SeatStore {
	return &SeatStore{coll: coll}
}

// Release marks the seat free. It returns ErrNotFound when no such seat exists.
func (s *SeatStore) Release(ctx context.Context, seatNumber string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"seatNumber": seatNumber},
		bson.M{"$set": bson.M{"isBooked": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("release seat %s: %w", seatNumber, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBookedBefore lists booked seats last written before cutoff. Seats without an
// updatedAt are left out.
func (s *SeatStore) ListBookedBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"isBooked": true, "updatedAt": bson.M{"$lt": cutoff}},
		options.Find().SetProjection(bson.M{"seatNumber": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("find booked seats: %w", err)
	}
	defer cursor.Close(ctx)

	var seats []models.Seat
	if err := cursor.All(ctx, &seats); err != nil {
		return nil, fmt.Errorf("decode seats: %w", err)
	}
	out := make([]string, 0, len(seats))
	for _, seat := range seats {
		out = append(out, seat.SeatNumber)
	}
	return out, nil
}

// Upsert inserts missing seats. Existing seats keep their booking state.
func (s *SeatStore) Upsert(ctx context.Context, seats []models.Seat) (int64, error) {
	if len(seats) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(seats))
	now := time.Now()
	for _, seat := range seats {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"seatNumber": seat.SeatNumber}).
			SetUpdate(bson.M{"$setOnInsert": bson.M{
				"seatNumber": seat.SeatNumber,
				"isBooked":   seat.IsBooked,
				"updatedAt":  now,
			}}).
			SetUpsert(true))
	}

	res, err := s.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("upsert seats: %w", err)
	}
	return res.UpsertedCount, nil
}
