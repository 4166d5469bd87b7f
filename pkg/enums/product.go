package enums

import "fmt"

// ProductCategory represents the catalog shelves offered by the pharmacy.
type ProductCategory string

const (
	ProductCategoryOTC       ProductCategory = "otc"
	ProductCategoryNutrition ProductCategory = "nutrition"
	ProductCategoryBaby      ProductCategory = "baby"
	ProductCategoryPersonal  ProductCategory = "personal"
	ProductCategoryWomen     ProductCategory = "women"
	ProductCategoryAyurveda  ProductCategory = "ayurveda"
	ProductCategoryOther     ProductCategory = "other"
)

var validProductCategories = []ProductCategory{
	ProductCategoryOTC,
	ProductCategoryNutrition,
	ProductCategoryBaby,
	ProductCategoryPersonal,
	ProductCategoryWomen,
	ProductCategoryAyurveda,
	ProductCategoryOther,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
