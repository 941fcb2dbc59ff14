package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether the type is one of income/expense.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category is a named bucket for transactions, scoped to a user or global
// (owned by GlobalOwnerID). (user_id, name, type) is unique; creation is
// idempotent against that key. A category cannot be deleted while any
// transaction references it.
type Category struct {
	Base
	UserID uint         `gorm:"not null;uniqueIndex:idx_categories_owner_name_type" json:"user_id"`
	Name   string       `gorm:"size:50;not null;uniqueIndex:idx_categories_owner_name_type" json:"name"`
	Type   CategoryType `gorm:"size:10;not null;uniqueIndex:idx_categories_owner_name_type" json:"type"`
	Icon   string       `gorm:"size:50" json:"icon"`
	Sort   int          `gorm:"default:0" json:"sort"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
