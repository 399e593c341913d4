package database

import (
	"context"
	"fmt"

	"Backend-Celestia-Admin/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type VisitorStore struct {
	coll *mongo.Collection
}

func NewVisitorStore(coll *mongo.Collection) *VisitorStore {
	return &VisitorStore{coll: coll}
}

func (s *VisitorStore) Insert(ctx context.Context, v *models.Visitor) error {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("insert visitor: %w", err)
	}
	return nil
}

func (s *VisitorStore) FindAll(ctx context.Context) ([]models.Visitor, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find visitors: %w", err)
	}
	defer cursor.Close(ctx)

	visitors := []models.Visitor{}
	if err := cursor.All(ctx, &visitors); err != nil {
		return nil, fmt.Errorf("decode visitors: %w", err)
	}
	return visitors, nil
}

func (s *VisitorStore) Approve(ctx context.Context, id primitive.ObjectID) (*models.Visitor, error) {
	var v models.Visitor
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isApproves": true}},
		returnAfter(),
	).Decode(&v)
	if err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

func (s *VisitorStore) DeleteByIndex(ctx context.Context, index string) (*models.Visitor, error) {
	var v models.Visitor
	if err := s.coll.FindOneAndDelete(ctx, bson.M{"index": index}).Decode(&v); err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}
