package models

import "time"

// User represents a customer account.
type User struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;not null"`
	Username     string    `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash *string   `gorm:"column:password_hash"`
	Addresses    []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
