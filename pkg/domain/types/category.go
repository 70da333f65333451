package types

import "fmt"

// Category classifies a regulatory requirement.
type Category string

const (
	CategoryDataProtection Category = "data_protection"
	CategoryUserConsent    Category = "user_consent"
	CategoryTransparency   Category = "transparency"
	CategorySecurity       Category = "security"
	CategoryAudit          Category = "audit"
)

// AllCategories returns all valid requirement categories
func AllCategories() []Category {
	return []Category{
		CategoryDataProtection,
		CategoryUserConsent,
		CategoryTransparency,
		CategorySecurity,
		CategoryAudit,
	}
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryDataProtection,
		CategoryUserConsent,
		CategoryTransparency,
		CategorySecurity,
		CategoryAudit:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	cat := Category(s)
	if !cat.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return cat, nil
}
