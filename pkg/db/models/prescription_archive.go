package models

import "time"

// PrescriptionArchive preserves a delivered order's prescription after the
// live record is removed.
type PrescriptionArchive struct {
	ID                 int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OriginalID         int64     `gorm:"column:original_id;not null"`
	UserID             int64     `gorm:"column:user_id;not null;index"`
	OrderID            int64     `gorm:"column:order_id;not null;index"`
	PrescriptionNumber string    `gorm:"column:prescription_number"`
	Filename           string    `gorm:"column:filename;not null"`
	DoctorName         *string   `gorm:"column:doctor_name"`
	UploadedAt         time.Time `gorm:"column:uploaded_at"`
	ArchivedAt         time.Time `gorm:"column:archived_at;autoCreateTime"`
}
