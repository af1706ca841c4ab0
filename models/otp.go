package models

import (
	"time"
)

// DeliveryOTP is a pending one-time passcode for an order delivery.
// There is at most one live record per order: the document is keyed by the
// order id, and a reissue overwrites whatever was there before.
type DeliveryOTP struct {
	OrderID   string    `bson:"_id" json:"orderId"`
	Code      string    `bson:"code" json:"code"`
	Email     string    `bson:"email" json:"email"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Expired reports whether the code is past its validity window.
func (o DeliveryOTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
