package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/balasre/pharmacare-backend/pkg/db"
	"github.com/balasre/pharmacare-backend/pkg/db/models"
	"github.com/balasre/pharmacare-backend/pkg/enums"
	pkgerrors "github.com/balasre/pharmacare-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes catalog reads plus the admin mutations.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	return s.repo.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, err
	}
	return product, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	category, err := enums.ParseProductCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	price, err := parseAmount("price", input.Price)
	if err != nil {
		return nil, err
	}
	stock, err := parseAmount("stock", input.Stock)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		Name:        name,
		Category:    category,
		Price:       price,
		Stock:       stock,
		IsActive:    stock > 0,
		Description: input.Description,
		Image:       input.Image,
	}
	created, err := s.repo.Create(ctx, &product)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product name already exists")
		}
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		product.Name = name
	}
	if input.Category != nil {
		category, parseErr := enums.ParseProductCategory(*input.Category)
		if parseErr != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
		}
		product.Category = category
	}
	if input.Price != nil {
		price, parseErr := parseAmount("price", *input.Price)
		if parseErr != nil {
			return nil, parseErr
		}
		product.Price = price
	}
	if input.Stock != nil {
		stock, parseErr := parseAmount("stock", *input.Stock)
		if parseErr != nil {
			return nil, parseErr
		}
		product.Stock = stock
		if stock == 0 {
			product.IsActive = false
		}
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Image != nil {
		product.Image = input.Image
	}

	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product name already exists")
		}
		return nil, err
	}
	return saved, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "product has been ordered and cannot be deleted")
		}
		return err
	}
	return nil
}
