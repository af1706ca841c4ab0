package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uncountedbug0615/delivery-app-otp-verifier/models"
)

// OTPStore is keyed storage for pending delivery OTPs.
type OTPStore interface {
	// Put writes the record, replacing any existing record for the same
	// order. Reissue-overwrites-pending-verify is deliberate: last writer
	// wins, there is no per-order locking.
	Put(ctx context.Context, otp models.DeliveryOTP) error
	// Get returns nil (no error) when no record exists for the order.
	Get(ctx context.Context, orderID string) (*models.DeliveryOTP, error)
	Delete(ctx context.Context, orderID string) error
}

type MongoOTPStore struct {
	DB *mongo.Database
}

func NewMongoOTPStore(db *mongo.Database) *MongoOTPStore {
	return &MongoOTPStore{DB: db}
}

func (s *MongoOTPStore) collection() *mongo.Collection {
	return s.DB.Collection("otps")
}

func (s *MongoOTPStore) Put(ctx context.Context, otp models.DeliveryOTP) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection().ReplaceOne(ctx, bson.M{"_id": otp.OrderID}, otp, opts)
	return err
}

func (s *MongoOTPStore) Get(ctx context.Context, orderID string) (*models.DeliveryOTP, error) {
	var record models.DeliveryOTP
	err := s.collection().FindOne(ctx, bson.M{"_id": orderID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *MongoOTPStore) Delete(ctx context.Context, orderID string) error {
	_, err := s.collection().DeleteOne(ctx, bson.M{"_id": orderID})
	return err
}
