package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Backend-Celestia-Admin/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderStore reads and mutates RegistrationOrder documents. Every mutation is a single
// find-and-update on one document.
type OrderStore struct {
	coll *mongo.Collection
}

func NewOrderStore(coll *mongo.Collection) *OrderStore {
	return &OrderStore{coll: coll}
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func (s *OrderStore) FindAll(ctx context.Context) ([]models.RegistrationOrder, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.RegistrationOrder{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (s *OrderStore) findOne(ctx context.Context, filter bson.M) (*models.RegistrationOrder, error) {
	var order models.RegistrationOrder
	if err := s.coll.FindOne(ctx, filter).Decode(&order); err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (s *OrderStore) FindByIndex(ctx context.Context, index string) (*models.RegistrationOrder, error) {
	return s.findOne(ctx, bson.M{"index": index})
}

func (s *OrderStore) FindByAttendeeID(ctx context.Context, attendeeID primitive.ObjectID) (*models.RegistrationOrder, error) {
	return s.findOne(ctx, bson.M{"users._id": attendeeID})
}

// FindByAttendeeIdentity matches the fields printed on a ticket QR code.
func (s *OrderStore) FindByAttendeeIdentity(ctx context.Context, username, contact, department string) (*models.RegistrationOrder, error) {
	return s.findOne(ctx, bson.M{
		"users": bson.M{"$elemMatch": bson.M{
			"username":   username,
			"whatsapp":   contact,
			"department": department,
		}},
	})
}

// SetAttendeeStatus writes the status and its two legacy mirrors in one $set,
// so isApproved and isRejected can never both end up true. A non-empty seat is
// stored on the attendee in the same update.
func (s *OrderStore) SetAttendeeStatus(ctx context.Context, attendeeID primitive.ObjectID, status models.ApprovalStatus, at time.Time, seat string) (*models.RegistrationOrder, error) {
	set := bson.M{
		"users.$.status":     status,
		"users.$.isApproved": status == models.StatusApproved,
		"users.$.isRejected": status == models.StatusRejected,
	}
	if seat != "" {
		set["users.$.seatNumber"] = seat
	}
	switch status {
	case models.StatusApproved:
		set["users.$.approvedAt"] = at
	case models.StatusRejected:
		set["users.$.rejectedAt"] = at
	}

	var order models.RegistrationOrder
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"users._id": attendeeID},
		bson.M{"$set": set},
		returnAfter(),
	).Decode(&order)
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

// RemoveAttendee pulls the attendee and, when given, its seat from the order.
func (s *OrderStore) RemoveAttendee(ctx context.Context, attendeeID primitive.ObjectID, seat string) (*models.RegistrationOrder, error) {
	pull := bson.M{"users": bson.M{"_id": attendeeID}}
	if seat != "" {
		pull["seats"] = seat
	}

	var order models.RegistrationOrder
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"users._id": attendeeID},
		bson.M{"$pull": pull},
		returnAfter(),
	).Decode(&order)
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

// SetCheckIn is a compare-and-swap on the attendee's version. It returns
// ErrVersionConflict when the attendee changed since it was read.
func (s *OrderStore) SetCheckIn(ctx context.Context, orderID, attendeeID primitive.ObjectID, expectedVersion int64, checkedIn bool, at *time.Time) (*models.RegistrationOrder, error) {
	var version interface{} = expectedVersion
	if expectedVersion == 0 {
		// documents created by the registration site have no version yet
		version = bson.M{"$in": bson.A{int64(0), nil}}
	}

	filter := bson.M{
		"_id": orderID,
		"users": bson.M{"$elemMatch": bson.M{
			"_id":     attendeeID,
			"version": version,
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"users.$.isCheckedIn": checkedIn,
			"users.$.checkInTime": at,
		},
		"$inc": bson.M{"users.$.version": 1},
	}

	var order models.RegistrationOrder
	err := s.coll.FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVersionConflict
		}
		return nil, err
	}
	return &order, nil
}
