package enums

import "fmt"

// PrescriptionStatus follows the pharmacist review lifecycle.
type PrescriptionStatus string

const (
	PrescriptionStatusPending    PrescriptionStatus = "pending"
	PrescriptionStatusProcessing PrescriptionStatus = "processing"
	PrescriptionStatusReady      PrescriptionStatus = "ready"
	PrescriptionStatusCompleted  PrescriptionStatus = "completed"
	PrescriptionStatusRejected   PrescriptionStatus = "rejected"
)

var validPrescriptionStatuses = []PrescriptionStatus{
	PrescriptionStatusPending,
	PrescriptionStatusProcessing,
	PrescriptionStatusReady,
	PrescriptionStatusCompleted,
	PrescriptionStatusRejected,
}

// String implements fmt.Stringer.
func (s PrescriptionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PrescriptionStatus.
func (s PrescriptionStatus) IsValid() bool {
	for _, candidate := range validPrescriptionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePrescriptionStatus converts raw input into a PrescriptionStatus.
func ParsePrescriptionStatus(value string) (PrescriptionStatus, error) {
	for _, candidate := range validPrescriptionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid prescription status %q", value)
}

// PrescriptionType distinguishes how the prescription entered the system.
type PrescriptionType string

const (
	PrescriptionTypeUpload   PrescriptionType = "upload"
	PrescriptionTypeRefill   PrescriptionType = "refill"
	PrescriptionTypeTransfer PrescriptionType = "transfer"
)

var validPrescriptionTypes = []PrescriptionType{
	PrescriptionTypeUpload,
	PrescriptionTypeRefill,
	PrescriptionTypeTransfer,
}

// String implements fmt.Stringer.
func (t PrescriptionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known PrescriptionType.
func (t PrescriptionType) IsValid() bool {
	for _, candidate := range validPrescriptionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}
