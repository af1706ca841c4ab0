package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uncountedbug0615/delivery-app-otp-verifier/models"
)

// DeviceStore lists the registered admin push tokens.
type DeviceStore interface {
	ListTokens(ctx context.Context) ([]string, error)
}

type MongoDeviceStore struct {
	DB *mongo.Database
}

func NewMongoDeviceStore(db *mongo.Database) *MongoDeviceStore {
	return &MongoDeviceStore{DB: db}
}

func (s *MongoDeviceStore) ListTokens(ctx context.Context) ([]string, error) {
	cursor, err := s.DB.Collection("adminTokens").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tokens []string
	for cursor.Next(ctx) {
		var device models.AdminDevice
		if err := cursor.Decode(&device); err != nil {
			return nil, err
		}
		if device.Token != "" {
			tokens = append(tokens, device.Token)
		}
	}
	return tokens, cursor.Err()
}
