package models

import (
	"time"

	"github.com/balasre/pharmacare-backend/pkg/enums"
)

// Order is a confirmed purchase. The total is computed once at creation
// and never recomputed; only the status mutates afterwards.
type Order struct {
	ID             int64              `gorm:"column:id;primaryKey;autoIncrement"`
	UserID         int64              `gorm:"column:user_id;not null;index"`
	Total          int                `gorm:"column:total;not null"`
	Status         enums.OrderStatus  `gorm:"column:status;not null;default:'pending'"`
	DeliveryType   enums.DeliveryType `gorm:"column:delivery_type;not null"`
	PaymentMethod  string             `gorm:"column:payment_method;not null"`
	AddressID      int64              `gorm:"column:address_id;not null;index"`
	DeliveryFee    int                `gorm:"column:delivery_fee;not null;default:0"`
	PrescriptionID *int64             `gorm:"column:prescription_id"`
	Address        *Address           `gorm:"foreignKey:AddressID;constraint:OnDelete:RESTRICT"`
	Items          []OrderItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
}
