package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var DB *mongo.Database

func InitDB(cfg Config) {
	DB = ConnectDB(cfg)
}

// ConnectDB connects to MongoDB and returns a *mongo.Database handle.
func ConnectDB(cfg Config) *mongo.Database {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerSelectionTimeout(10 * time.Second)
	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		log.Fatalf("Cannot connect to MongoDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("MongoDB ping failed: %v", err)
	}

	log.Printf("Connected to MongoDB database %q", cfg.DBName)
	db := client.Database(cfg.DBName)

	// Expired OTP docs are reaped by Mongo itself; code still re-checks
	// expires_at on every verify.
	otpCollection := db.Collection("otps")
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"expires_at": 1},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	if _, err := otpCollection.Indexes().CreateOne(context.Background(), indexModel); err != nil {
		log.Printf("Cannot create TTL index for otps: %v", err)
	}

	{
		_, err := db.Collection("orders").Indexes().CreateOne(context.Background(), mongo.IndexModel{
			Keys:    bson.D{{Key: "timestamp", Value: 1}, {Key: "orderStatus", Value: 1}},
			Options: options.Index().SetName("byTimestamp_status"),
		})
		if err != nil {
			log.Printf("Cannot create index for orders: %v", err)
		}

		_, err = db.Collection("adminTokens").Indexes().CreateOne(context.Background(), mongo.IndexModel{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("byToken").SetUnique(true),
		})
		if err != nil {
			log.Printf("Cannot create index for adminTokens: %v", err)
		}
	}

	return db
}
