package models

import (
	"time"
)

const (
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"

	PaymentStatusConfirmed = "confirmed"
)

// OrderItem is a single line of an order.
type OrderItem struct {
	Name     string  `bson:"name" json:"name"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
}

// Address is the customer/delivery info attached to an order.
type Address struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	Pincode string `bson:"pincode" json:"pincode"`
}

// Order is owned by the order-management side; this service only reads it
// and flips the delivered fields after a successful OTP verification.
type Order struct {
	ID            string      `bson:"_id" json:"id"`
	OrderStatus   string      `bson:"orderStatus" json:"orderStatus"`
	Delivered     bool        `bson:"delivered" json:"delivered"`
	PaymentStatus string      `bson:"paymentStatus" json:"paymentStatus"`
	Timestamp     time.Time   `bson:"timestamp" json:"timestamp"`
	Items         []OrderItem `bson:"items" json:"items"`
	Total         float64     `bson:"total" json:"total"`
	Address       Address     `bson:"address" json:"address"`
}
