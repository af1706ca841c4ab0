package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uncountedbug0615/delivery-app-otp-verifier/models"
)

// OrderStore reads order documents and performs the one mutation this
// service owns: flipping an order to delivered.
type OrderStore interface {
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	MarkDelivered(ctx context.Context, orderID string) error
	// FindConfirmedSince returns orders with timestamp >= since (inclusive)
	// whose status equals "confirmed" ignoring case. Snapshot, not a stream.
	FindConfirmedSince(ctx context.Context, since time.Time) ([]models.Order, error)
}

type MongoOrderStore struct {
	DB *mongo.Database
}

func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{DB: db}
}

func (s *MongoOrderStore) collection() *mongo.Collection {
	return s.DB.Collection("orders")
}

func (s *MongoOrderStore) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := s.collection().FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoOrderStore) MarkDelivered(ctx context.Context, orderID string) error {
	update := bson.M{"$set": bson.M{
		"delivered":     true,
		"orderStatus":   models.OrderStatusDelivered,
		"paymentStatus": models.PaymentStatusConfirmed,
	}}
	res, err := s.collection().UpdateOne(ctx, bson.M{"_id": orderID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("order %s not found", orderID)
	}
	return nil
}

func (s *MongoOrderStore) FindConfirmedSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	// The query only bounds the timestamp; the status comparison happens
	// here so "Confirmed" and "confirmed" both match.
	cursor, err := s.collection().Find(ctx, bson.M{"timestamp": bson.M{"$gte": since}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var confirmed []models.Order
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			return nil, err
		}
		if strings.EqualFold(order.OrderStatus, models.OrderStatusConfirmed) {
			confirmed = append(confirmed, order)
		}
	}
	return confirmed, cursor.Err()
}
