package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminDevice is one registered push destination for the admin app.
type AdminDevice struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Token string             `bson:"token" json:"token"`
}
