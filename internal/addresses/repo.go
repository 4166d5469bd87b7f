package addresses

import (
	"context"
	"errors"
	"strings"

	"github.com/balasre/pharmacare-backend/pkg/db"
	"github.com/balasre/pharmacare-backend/pkg/db/models"
	"gorm.io/gorm"
)

const defaultLabel = "Home"

// Repository exposes address persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an addresses repo bound to the provided GORM DB.
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

// FindOrCreateInput carries the fields used for address lookup and creation.
type FindOrCreateInput struct {
	UserID        int64
	RecipientName string
	Phone         string
	Street        string
	City          string
}

// FindOrCreate returns the user's address matching (street, city), creating it
// when absent. An existing row is reused as-is; recipient and phone on the
// stored row are never overwritten.
func (r *Repository) FindOrCreate(ctx context.Context, input FindOrCreateInput) (*models.Address, error) {
	street := strings.TrimSpace(input.Street)
	city := strings.TrimSpace(input.City)

	var existing models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND street = ? AND city = ?", input.UserID, street, city).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	userID := input.UserID
	address := models.Address{
		UserID:        &userID,
		Label:         defaultLabel,
		RecipientName: input.RecipientName,
		Phone:         input.Phone,
		Street:        street,
		City:          city,
	}
	if createErr := r.db.WithContext(ctx).Create(&address).Error; createErr != nil {
		// A concurrent request may have inserted the same (user, street, city);
		// fall back to the winning row.
		if db.IsUniqueViolation(createErr) {
			var winner models.Address
			if lookupErr := r.db.WithContext(ctx).
				Where("user_id = ? AND street = ? AND city = ?", input.UserID, street, city).
				First(&winner).Error; lookupErr == nil {
				return &winner, nil
			}
		}
		return nil, createErr
	}
	return &address, nil
}

// ListByUser returns the user's saved addresses, oldest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

// FindByID loads an address by its numeric ID.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}
