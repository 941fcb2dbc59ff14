package services

import (
	"github.com/shopspring/decimal"

	"moneynote/internal/models"
	"moneynote/internal/pagination"
)

// AuthServicer defines the contract for the one-time-code authentication and
// session lifecycle.
type AuthServicer interface {
	// RequestCode generates a 6-digit code for the email, stores it with a
	// fixed expiry window, and dispatches it by mail. Prior unexpired codes
	// for the same email are left in place; verification reads the most
	// recent row.
	RequestCode(email string) error
	// VerifyCode checks the most recently issued code for the email. On
	// success it looks up or creates the user and issues a fresh session
	// token. Mismatch, absence, and expiry all fail identically.
	VerifyCode(email, code string) (string, *models.User, error)
	// ValidateToken resolves a bearer token to its owning user. An unknown
	// or expired token yields (nil, nil): unauthenticated, not an error.
	ValidateToken(token string) (*models.User, error)
	// Logout deletes the token row. Idempotent.
	Logout(token string) error
	GetUserByID(id uint) (*models.User, error)
}

// CategoryUpdate holds the partial fields of a category update. Nil means
// leave unchanged.
type CategoryUpdate struct {
	Name *string
	Type *models.CategoryType
	Icon *string
	Sort *int
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	// ListCategories returns the union of user-owned and global categories,
	// ordered by sort ascending then creation time descending.
	ListCategories(userID uint) ([]models.Category, error)
	// CreateCategory resolves-or-creates idempotently: when a visible
	// category with the same (name, type) exists, the existing row is
	// returned instead of a duplicate.
	CreateCategory(userID uint, name string, categoryType models.CategoryType, icon string, sort int) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, update CategoryUpdate) (*models.Category, error)
	// DeleteCategory fails with a conflict while any transaction references
	// the category.
	DeleteCategory(userID, categoryID uint) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
// Type filters on the joined category's type, not a stored column.
type TransactionFilter struct {
	Type       *models.CategoryType
	CategoryID *uint
	StartDate  *models.Date
	EndDate    *models.Date
}

// TransactionInput describes a transaction to create. Exactly one of
// CategoryID or CategoryName must be set; a name is resolved-or-created via
// the category service using TypeHint.
type TransactionInput struct {
	CategoryID   uint
	CategoryName string
	TypeHint     models.CategoryType
	Amount       decimal.Decimal
	Date         models.Date
	Note         *string
}

// TransactionUpdate holds the partial fields of a transaction update.
type TransactionUpdate struct {
	CategoryID *uint
	Amount     *decimal.Decimal
	Note       *string
	Date       *models.Date
}

// Summary aggregates a user's transactions by the joined category type.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetSummary(userID uint) (*Summary, error)
	CreateTransaction(userID uint, input TransactionInput) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}
