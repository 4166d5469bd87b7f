package models

import "time"

// Address is a saved shipping destination. Uniqueness is scoped by
// (user_id, street, city); lookups reuse the first match.
type Address struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID        *int64    `gorm:"column:user_id;index;uniqueIndex:idx_addresses_user_street_city"`
	Label         string    `gorm:"column:label;not null;default:'Home'"`
	RecipientName string    `gorm:"column:recipient_name;not null"`
	Phone         string    `gorm:"column:phone;not null"`
	Street        string    `gorm:"column:street;not null;uniqueIndex:idx_addresses_user_street_city"`
	City          string    `gorm:"column:city;not null;uniqueIndex:idx_addresses_user_street_city"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
