package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "moneynote/internal/errors"
	"moneynote/internal/models"
	"moneynote/internal/pagination"
	"moneynote/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("with_category_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		note := "lunch"
		tx, err := svc.CreateTransaction(user.ID, TransactionInput{
			CategoryID: cat.ID,
			Amount:     decimal.RequireFromString("25.50"),
			Date:       models.NewDate(time.Now()),
			Note:       &note,
		})
		testutil.AssertNoError(t, err)

		if tx.ID == 0 {
			t.Fatal("expected non-zero transaction ID")
		}
		if !tx.Amount.Equal(decimal.RequireFromString("25.50")) {
			t.Errorf("expected amount 25.50, got %s", tx.Amount)
		}
		if tx.Category.ID != cat.ID {
			t.Errorf("expected preloaded category %d, got %d", cat.ID, tx.Category.ID)
		}
	})

	t.Run("with_global_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		global := testutil.CreateTestCategory(t, db, models.GlobalOwnerID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, TransactionInput{
			CategoryID: global.ID,
			Amount:     decimal.NewFromInt(10),
			Date:       models.NewDate(time.Now()),
		})
		testutil.AssertNoError(t, err)
	})

	t.Run("with_category_name_resolves_or_creates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		first, err := svc.CreateTransaction(user.ID, TransactionInput{
			CategoryName: "餐饮",
			TypeHint:     models.CategoryTypeExpense,
			Amount:       decimal.NewFromInt(50),
			Date:         models.NewDate(time.Now()),
		})
		testutil.AssertNoError(t, err)

		second, err := svc.CreateTransaction(user.ID, TransactionInput{
			CategoryName: "餐饮",
			TypeHint:     models.CategoryTypeExpense,
			Amount:       decimal.NewFromInt(30),
			Date:         models.NewDate(time.Now()),
		})
		testutil.AssertNoError(t, err)

		if first.CategoryID != second.CategoryID {
			t.Errorf("expected both transactions on the same category, got %d and %d", first.CategoryID, second.CategoryID)
		}

		var count int64
		db.Model(&models.Category{}).Where("name = ?", "餐饮").Count(&count)
		if count != 1 {
			t.Errorf("expected a single 餐饮 category, got %d", count)
		}
	})

	t.Run("zero_amount_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, TransactionInput{
			CategoryID: cat.ID,
			Amount:     decimal.Zero,
			Date:       models.NewDate(time.Now()),
		})
		testutil.AssertAppError(t, err, apperrors.CodeBadRequest)
	})

	t.Run("negative_amount_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, TransactionInput{
			CategoryID: cat.ID,
			Amount:     decimal.NewFromInt(-5),
			Date:       models.NewDate(time.Now()),
		})
		testutil.AssertAppError(t, err, apperrors.CodeBadRequest)
	})

	t.Run("missing_date_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user.ID, TransactionInput{
			CategoryID: cat.ID,
			Amount:     decimal.NewFromInt(5),
		})
		testutil.AssertAppError(t, err, apperrors.CodeBadRequest)
	})

	t.Run("missing_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, TransactionInput{
			Amount: decimal.NewFromInt(5),
			Date:   models.NewDate(time.Now()),
		})
		testutil.AssertAppError(t, err, apperrors.CodeBadRequest)
	})

	t.Run("foreign_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		foreign := testutil.CreateTestCategory(t, db, user1.ID, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(user2.ID, TransactionInput{
			CategoryID: foreign.ID,
			Amount:     decimal.NewFromInt(5),
			Date:       models.NewDate(time.Now()),
		})
		testutil.AssertAppError(t, err, apperrors.CodeNotFound)
	})
}

func TestListTransactions(t *testing.T) {
	t.Run("owner_scoped_with_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		otherCat := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, decimal.NewFromInt(10))
		testutil.CreateTestTransaction(t, db, other.ID, otherCat.ID, decimal.NewFromInt(99))

		result, err := svc.ListTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if result.Pagination.Total != 1 {
			t.Errorf("expected 1 transaction, got %d", result.Pagination.Total)
		}
		if len(result.Data) != 1 {
			t.Fatalf("expected 1 transaction in data, got %d", len(result.Data))
		}
		if result.Data[0].Category.ID != cat.ID {
			t.Errorf("expected category preloaded, got %+v", result.Data[0].Category)
		}
	})

	t.Run("ordered_newest_date_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		old := mustDate(t, "2024-01-01")
		recent := mustDate(t, "2024-06-01")
		testutil.CreateTestTransactionOnDate(t, db, user.ID, cat.ID, decimal.NewFromInt(1), old)
		newest := testutil.CreateTestTransactionOnDate(t, db, user.ID, cat.ID, decimal.NewFromInt(2), recent)

		result, err := svc.ListTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(result.Data))
		}
		if result.Data[0].ID != newest.ID {
			t.Errorf("expected newest transaction first, got %d", result.Data[0].ID)
		}
	})

	t.Run("filters_by_joined_category_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		income := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		expense := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, user.ID, income.ID, decimal.NewFromInt(100))
		testutil.CreateTestTransaction(t, db, user.ID, expense.ID, decimal.NewFromInt(40))

		incomeType := models.CategoryTypeIncome
		result, err := svc.ListTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Type: &incomeType})
		testutil.AssertNoError(t, err)

		if result.Pagination.Total != 1 {
			t.Fatalf("expected 1 income transaction, got %d", result.Pagination.Total)
		}
		if result.Data[0].CategoryID != income.ID {
			t.Errorf("expected income transaction, got category %d", result.Data[0].CategoryID)
		}
	})

	t.Run("filters_by_category_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		catA := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		catB := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, user.ID, catA.ID, decimal.NewFromInt(1))
		testutil.CreateTestTransaction(t, db, user.ID, catB.ID, decimal.NewFromInt(2))

		result, err := svc.ListTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{CategoryID: &catA.ID})
		testutil.AssertNoError(t, err)

		if result.Pagination.Total != 1 {
			t.Errorf("expected 1 transaction for category %d, got %d", catA.ID, result.Pagination.Total)
		}
	})

	t.Run("filters_by_date_range_inclusive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransactionOnDate(t, db, user.ID, cat.ID, decimal.NewFromInt(1), mustDate(t, "2024-02-28"))
		inside := testutil.CreateTestTransactionOnDate(t, db, user.ID, cat.ID, decimal.NewFromInt(2), mustDate(t, "2024-03-01"))
		testutil.CreateTestTransactionOnDate(t, db, user.ID, cat.ID, decimal.NewFromInt(3), mustDate(t, "2024-04-01"))

		start := mustDate(t, "2024-03-01")
		end := mustDate(t, "2024-03-31")
		result, err := svc.ListTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{StartDate: &start, EndDate: &end})
		testutil.AssertNoError(t, err)

		if result.Pagination.Total != 1 {
			t.Fatalf("expected 1 transaction in range, got %d", result.Pagination.Total)
		}
		if result.Data[0].ID != inside.ID {
			t.Errorf("expected boundary transaction %d, got %d", inside.ID, result.Data[0].ID)
		}
	})

	t.Run("empty_list_pagination_metadata", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		result, err := svc.ListTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if result.Data == nil {
			t.Error("expected empty slice, got nil data")
		}
		meta := result.Pagination
		if meta.CurrentPage != 1 || meta.PerPage != 20 || meta.Total != 0 || meta.LastPage != 1 {
			t.Errorf("unexpected pagination metadata: %+v", meta)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		for i := 0; i < 5; i++ {
			testutil.CreateTestTransaction(t, db, user.ID, cat.ID, decimal.NewFromInt(int64(i+1)))
		}

		result, err := svc.ListTransactions(user.ID, pagination.PageRequest{Page: 1, PerPage: 2}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if result.Pagination.Total != 5 {
			t.Errorf("expected total 5, got %d", result.Pagination.Total)
		}
		if len(result.Data) != 2 {
			t.Errorf("expected 2 items on page 1, got %d", len(result.Data))
		}
		if result.Pagination.LastPage != 3 {
			t.Errorf("expected last page 3, got %d", result.Pagination.LastPage)
		}
	})
}

func TestGetSummary(t *testing.T) {
	t.Run("matches_listing_grouped_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		income := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		expense := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransaction(t, db, user.ID, income.ID, decimal.RequireFromString("1000.00"))
		testutil.CreateTestTransaction(t, db, user.ID, income.ID, decimal.RequireFromString("250.50"))
		testutil.CreateTestTransaction(t, db, user.ID, expense.ID, decimal.RequireFromString("99.99"))

		summary, err := svc.GetSummary(user.ID)
		testutil.AssertNoError(t, err)

		if !summary.TotalIncome.Equal(decimal.RequireFromString("1250.50")) {
			t.Errorf("expected total income 1250.50, got %s", summary.TotalIncome)
		}
		if !summary.TotalExpense.Equal(decimal.RequireFromString("99.99")) {
			t.Errorf("expected total expense 99.99, got %s", summary.TotalExpense)
		}
	})

	t.Run("empty_is_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		summary, err := svc.GetSummary(user.ID)
		testutil.AssertNoError(t, err)

		if !summary.TotalIncome.IsZero() || !summary.TotalExpense.IsZero() {
			t.Errorf("expected zero totals, got %+v", summary)
		}
	})

	t.Run("excludes_other_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		otherCat := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeIncome)
		testutil.CreateTestTransaction(t, db, other.ID, otherCat.ID, decimal.NewFromInt(500))

		summary, err := svc.GetSummary(user.ID)
		testutil.AssertNoError(t, err)

		if !summary.TotalIncome.IsZero() {
			t.Errorf("expected zero income for user without transactions, got %s", summary.TotalIncome)
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, user.ID, cat.ID, decimal.NewFromInt(10))

		amount := decimal.RequireFromString("42.00")
		updated, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdate{Amount: &amount})
		testutil.AssertNoError(t, err)

		if !updated.Amount.Equal(amount) {
			t.Errorf("expected amount 42.00, got %s", updated.Amount)
		}
		if updated.CategoryID != cat.ID {
			t.Errorf("expected category unchanged, got %d", updated.CategoryID)
		}
	})

	t.Run("invalid_amount_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, user.ID, cat.ID, decimal.NewFromInt(10))

		amount := decimal.Zero
		_, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdate{Amount: &amount})
		testutil.AssertAppError(t, err, apperrors.CodeBadRequest)
	})

	t.Run("foreign_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		foreign := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, user.ID, cat.ID, decimal.NewFromInt(10))

		_, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdate{CategoryID: &foreign.ID})
		testutil.AssertAppError(t, err, apperrors.CodeNotFound)
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user1.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, user1.ID, cat.ID, decimal.NewFromInt(10))

		amount := decimal.NewFromInt(5)
		_, err := svc.UpdateTransaction(user2.ID, tx.ID, TransactionUpdate{Amount: &amount})
		testutil.AssertAppError(t, err, apperrors.CodeNotFound)
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, user.ID, cat.ID, decimal.NewFromInt(10))

		testutil.AssertNoError(t, svc.DeleteTransaction(user.ID, tx.ID))

		var count int64
		db.Model(&models.Transaction{}).Where("id = ?", tx.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected transaction row gone, got count %d", count)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteTransaction(user.ID, 99999)
		testutil.AssertAppError(t, err, apperrors.CodeNotFound)
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db))

		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user1.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, user1.ID, cat.ID, decimal.NewFromInt(10))

		err := svc.DeleteTransaction(user2.ID, tx.ID)
		testutil.AssertAppError(t, err, apperrors.CodeNotFound)
	})
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("invalid date %q: %v", s, err)
	}
	return d
}
