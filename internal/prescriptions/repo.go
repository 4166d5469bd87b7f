package prescriptions

import (
	"context"

	"github.com/balasre/pharmacare-backend/pkg/db/models"
	"github.com/balasre/pharmacare-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes prescription persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a prescriptions repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new prescription record.
func (r *Repository) Create(ctx context.Context, prescription *models.Prescription) (*models.Prescription, error) {
	if err := r.db.WithContext(ctx).Create(prescription).Error; err != nil {
		return nil, err
	}
	return prescription, nil
}

// FindByID loads a prescription by its numeric ID.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Prescription, error) {
	var prescription models.Prescription
	if err := r.db.WithContext(ctx).First(&prescription, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &prescription, nil
}

// ListByUser returns the user's prescriptions, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]models.Prescription, error) {
	var list []models.Prescription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListAll returns every prescription, newest first. Admin surface only.
func (r *Repository) ListAll(ctx context.Context) ([]models.Prescription, error) {
	var list []models.Prescription
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// SearchByNumber returns prescriptions whose number contains the query.
func (r *Repository) SearchByNumber(ctx context.Context, query string) ([]models.Prescription, error) {
	var list []models.Prescription
	err := r.db.WithContext(ctx).
		Where("prescription_number LIKE ?", "%"+query+"%").
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatus overwrites the prescription status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status enums.PrescriptionStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Prescription{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// Delete removes the prescription row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Prescription{}, "id = ?", id).Error
}

// CreateArchive inserts an archive copy of a prescription.
func (r *Repository) CreateArchive(ctx context.Context, archive *models.PrescriptionArchive) (*models.PrescriptionArchive, error) {
	if err := r.db.WithContext(ctx).Create(archive).Error; err != nil {
		return nil, err
	}
	return archive, nil
}

// ListArchivesByUser returns the user's archived prescriptions, newest first.
func (r *Repository) ListArchivesByUser(ctx context.Context, userID int64) ([]models.PrescriptionArchive, error) {
	var list []models.PrescriptionArchive
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
