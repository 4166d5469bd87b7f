package products

import (
	"strings"

	"github.com/balasre/pharmacare-backend/pkg/enums"
	pkgerrors "github.com/balasre/pharmacare-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// CreateProductInput carries admin-supplied fields for a new catalog entry.
// Price and Stock arrive as text so the admin form can submit them verbatim.
type CreateProductInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Category    string  `json:"category" validate:"required"`
	Price       string  `json:"price" validate:"required"`
	Stock       string  `json:"stock" validate:"required"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// UpdateProductInput carries optional admin edits; nil fields are untouched.
type UpdateProductInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Category    *string `json:"category,omitempty"`
	Price       *string `json:"price,omitempty"`
	Stock       *string `json:"stock,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// ListFilters describe the catalog list inputs.
type ListFilters struct {
	Category   *enums.ProductCategory
	Query      string
	ActiveOnly bool
}

// parseAmount converts decimal text into a non-negative whole amount.
// Fractional input like "12.50" is accepted and rounded to the nearest unit.
func parseAmount(field, value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+field)
	}
	dec, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+field)
	}
	if dec.IsNegative() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, field+" must not be negative")
	}
	return int(dec.Round(0).IntPart()), nil
}
