package products

import (
	"context"
	"errors"
	"strings"

	"github.com/balasre/pharmacare-backend/pkg/db"
	"github.com/balasre/pharmacare-backend/pkg/db/models"
	"github.com/balasre/pharmacare-backend/pkg/enums"
	"gorm.io/gorm"
)

// Defaults applied when an order references a product the catalog has
// never seen.
const (
	autoCreateStock    = 100
	autoCreateCategory = enums.ProductCategoryOther
)

// Repository wires together product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
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

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save persists the full product row.
func (r *Repository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product row. Foreign keys from order items make this
// fail once the product has been sold.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByName loads a product by its exact name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns catalog entries matching the filters, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if q := strings.TrimSpace(filters.Query); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}

	var list []models.Product
	if err := query.Order("id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ResolveOrCreate returns the product with the exact name, creating a
// placeholder entry priced at the supplied amount when the catalog has no
// match. Existing products keep their stored price.
func (r *Repository) ResolveOrCreate(ctx context.Context, name string, price int) (*models.Product, error) {
	existing, err := r.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := models.Product{
		Name:     name,
		Category: autoCreateCategory,
		Price:    price,
		Stock:    autoCreateStock,
		IsActive: true,
	}
	if createErr := r.db.WithContext(ctx).Create(&product).Error; createErr != nil {
		// Lost a race on the unique name index; use the winner.
		if db.IsUniqueViolation(createErr) {
			return r.FindByName(ctx, name)
		}
		return nil, createErr
	}
	return &product, nil
}

// DecrementStock subtracts qty from the product's stock only when enough
// remains, deactivating the product if the decrement empties it. Returns
// false when stock was insufficient.
func (r *Repository) DecrementStock(ctx context.Context, productID int64, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock = 0", productID).
		UpdateColumn("is_active", false).Error
	if err != nil {
		return false, err
	}
	return true, nil
}
