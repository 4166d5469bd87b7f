package models

import (
	"time"

	"github.com/balasre/pharmacare-backend/pkg/enums"
)

// Product represents a catalog entry. Stock never goes negative and
// is_active is cleared whenever stock reaches zero.
type Product struct {
	ID          int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string                `gorm:"column:name;not null;uniqueIndex"`
	Category    enums.ProductCategory `gorm:"column:category;not null;index"`
	Price       int                   `gorm:"column:price;not null"`
	Stock       int                   `gorm:"column:stock;not null;default:0"`
	IsActive    bool                  `gorm:"column:is_active;not null;default:true"`
	Description *string               `gorm:"column:description"`
	Image       *string               `gorm:"column:image"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
