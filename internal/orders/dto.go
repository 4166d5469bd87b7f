package orders

import (
	"time"

	"github.com/balasre/pharmacare-backend/pkg/enums"
)

// PlaceOrderItem is one requested line of a new order.
type PlaceOrderItem struct {
	Name  string `json:"name" validate:"required,max=200"`
	Qty   int    `json:"qty" validate:"required,min=1"`
	Price int    `json:"price" validate:"min=0"`
}

// PlaceOrderInput carries everything needed to place an order.
type PlaceOrderInput struct {
	CustomerName   string           `json:"customer_name" validate:"required,max=120"`
	Phone          string           `json:"phone" validate:"required,max=20"`
	StreetAddress  string           `json:"streetAddress" validate:"required,max=250"`
	City           string           `json:"city" validate:"required,max=120"`
	DeliveryType   string           `json:"delivery_type" validate:"required"`
	PaymentMethod  string           `json:"payment_method" validate:"required,max=50"`
	Items          []PlaceOrderItem `json:"items" validate:"required,min=1,dive"`
	PrescriptionID *int64           `json:"prescription_id,omitempty"`
}

// PlaceOrderResult is returned once the order transaction commits.
type PlaceOrderResult struct {
	OrderID     int64 `json:"order_id"`
	Total       int   `json:"total"`
	DeliveryFee int   `json:"delivery_fee"`
}

// ItemView is the read shape for an order line.
type ItemView struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Qty         int    `json:"qty"`
	Price       int    `json:"price"`
}

// View is the read shape for a full order.
type View struct {
	ID             int64              `json:"id"`
	UserID         int64              `json:"user_id"`
	Total          int                `json:"total"`
	Status         enums.OrderStatus  `json:"status"`
	DeliveryType   enums.DeliveryType `json:"delivery_type"`
	PaymentMethod  string             `json:"payment_method"`
	DeliveryFee    int                `json:"delivery_fee"`
	PrescriptionID *int64             `json:"prescription_id,omitempty"`
	Street         string             `json:"street,omitempty"`
	City           string             `json:"city,omitempty"`
	Items          []ItemView         `json:"items"`
	CreatedAt      time.Time          `json:"created_at"`
}
