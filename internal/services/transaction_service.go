package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneynote/internal/errors"
	"moneynote/internal/models"
	"moneynote/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		categoryService: categoryService,
	}
}

// ListTransactions retrieves a paginated, filtered list of the user's
// transactions with their categories, ordered by transaction date descending
// then creation time descending. The type filter goes through the joined
// category because polarity is never stored on the transaction row.
func (s *transactionService) ListTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.
		Select("transactions.*").
		Preload("Category").
		Scopes(pagination.Paginate(page)).
		Order("transactions.transaction_date DESC").
		Order("transactions.created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PerPage, total)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Type != nil {
		q = q.Where("categories.type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("transactions.category_id = ?", *f.CategoryID)
	}
	if f.StartDate != nil {
		q = q.Where("transactions.transaction_date >= ?", f.StartDate.Time)
	}
	if f.EndDate != nil {
		q = q.Where("transactions.transaction_date <= ?", f.EndDate.Time)
	}
	return q
}

// GetSummary sums the user's transactions grouped by the joined category
// type. Computed from the rows on every call; there is no running total to
// drift out of sync with the listing.
func (s *transactionService) GetSummary(userID uint) (*Summary, error) {
	income, err := s.sumByType(userID, models.CategoryTypeIncome)
	if err != nil {
		return nil, err
	}
	expense, err := s.sumByType(userID, models.CategoryTypeExpense)
	if err != nil {
		return nil, err
	}
	return &Summary{TotalIncome: income, TotalExpense: expense}, nil
}

func (s *transactionService) sumByType(userID uint, categoryType models.CategoryType) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := s.db.Model(&models.Transaction{}).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND categories.type = ?", userID, categoryType).
		Select("COALESCE(SUM(transactions.amount), 0) AS total").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row.Total, nil
}

// CreateTransaction validates and persists a transaction. A category name in
// the input (the natural-language path) is resolved-or-created through the
// category service's idempotent create before the row is written.
func (s *transactionService) CreateTransaction(userID uint, input TransactionInput) (*models.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a positive number")
	}
	if input.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction date is required")
	}

	categoryID := input.CategoryID
	if input.CategoryName != "" {
		category, err := s.categoryService.CreateCategory(userID, input.CategoryName, input.TypeHint, "", 0)
		if err != nil {
			return nil, err
		}
		categoryID = category.ID
	} else {
		if categoryID == 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
		}
		if _, err := s.visibleCategory(userID, categoryID); err != nil {
			return nil, err
		}
	}

	transaction := &models.Transaction{
		UserID:          userID,
		CategoryID:      categoryID,
		Amount:          input.Amount,
		Note:            input.Note,
		TransactionDate: input.Date,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Preload("Category").First(transaction, transaction.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// UpdateTransaction applies a partial update to a transaction the user owns.
// A supplied amount is revalidated; a supplied category must be visible.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.getOwnedTransaction(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if update.Amount != nil && !update.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a positive number")
	}
	if update.CategoryID != nil {
		if _, err := s.visibleCategory(userID, *update.CategoryID); err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if update.CategoryID != nil {
		updates["category_id"] = *update.CategoryID
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Note != nil {
		updates["note"] = *update.Note
	}
	if update.Date != nil {
		updates["transaction_date"] = update.Date.Time
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	if err := s.db.Preload("Category").First(transaction, transaction.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// DeleteTransaction deletes a transaction the user owns. Unlike category
// deletion there are no restrict conditions.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	transaction, err := s.getOwnedTransaction(userID, transactionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// getOwnedTransaction retrieves a transaction owned by the user. Other users'
// transactions are reported as not found, never as forbidden.
func (s *transactionService) getOwnedTransaction(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// visibleCategory checks that a category exists and is either owned by the
// user or global.
func (s *transactionService) visibleCategory(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	err := s.db.
		Where("id = ? AND user_id IN ?", categoryID, []uint{userID, models.GlobalOwnerID}).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}
