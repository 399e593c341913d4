package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names match the documents the registration site already writes.
const (
	OrdersCollection   = "users"
	VisitorsCollection = "visitors"
	SeatsCollection    = "seats"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrVersionConflict = errors.New("document changed concurrently")
)

// Database owns the Mongo client for the lifetime of the process.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database

	Orders   *mongo.Collection
	Visitors *mongo.Collection
	Seats    *mongo.Collection
}

// ConnectMongoDB connects and pings the primary before handing the client out.
func ConnectMongoDB(ctx context.Context, uri, dbName string, log *logrus.Logger) (*Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	log.WithField("database", dbName).Info("✅ MongoDB connected successfully")

	db := client.Database(dbName)
	return &Database{
		Client:   client,
		DB:       db,
		Orders:   db.Collection(OrdersCollection),
		Visitors: db.Collection(VisitorsCollection),
		Seats:    db.Collection(SeatsCollection),
	}, nil
}

// EnsureIndexes creates the lookup indexes every hot path relies on.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := d.Orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "index", Value: 1}}},
		{Keys: bson.D{{Key: "users._id", Value: 1}}},
		{Keys: bson.D{{Key: "users.username", Value: 1}, {Key: "users.whatsapp", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create order indexes: %w", err)
	}

	_, err = d.Seats.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "seatNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create seat index: %w", err)
	}

	_, err = d.Visitors.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "index", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create visitor index: %w", err)
	}
	return nil
}

func (d *Database) Disconnect(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
