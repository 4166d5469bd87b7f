package models

import (
	"time"

	"github.com/balasre/pharmacare-backend/pkg/enums"
)

// Prescription tracks an uploaded prescription's metadata; the file itself
// lives behind the prescriptions.FileStore boundary.
type Prescription struct {
	ID                 int64                    `gorm:"column:id;primaryKey;autoIncrement"`
	UserID             int64                    `gorm:"column:user_id;not null;index"`
	PrescriptionNumber string                   `gorm:"column:prescription_number;uniqueIndex"`
	Filename           string                   `gorm:"column:filename;not null"`
	UploadedAt         time.Time                `gorm:"column:uploaded_at;not null;autoCreateTime"`
	DoctorName         *string                  `gorm:"column:doctor_name"`
	Status             enums.PrescriptionStatus `gorm:"column:status;not null;default:'pending'"`
	Type               enums.PrescriptionType   `gorm:"column:type;not null;default:'upload'"`
}
