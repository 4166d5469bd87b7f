package models

import "time"

// Admin represents a back-office account.
type Admin struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Name         *string   `gorm:"column:name"`
	IsSuper      bool      `gorm:"column:is_super;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
