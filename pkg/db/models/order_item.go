package models

// OrderItem captures a line-item snapshot. ProductName and Price are
// historical facts frozen at order time; later catalog edits never touch them.
type OrderItem struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     int64  `gorm:"column:order_id;not null;index"`
	ProductID   int64  `gorm:"column:product_id;not null;index"`
	ProductName string `gorm:"column:product_name;not null"`
	Qty         int    `gorm:"column:qty;not null;default:1"`
	Price       int    `gorm:"column:price;not null"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}
