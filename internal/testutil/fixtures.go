package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"moneynote/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email: email,
		Name:  fmt.Sprintf("Test User %d", nextID()),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestToken creates a valid session token for the user.
func CreateTestToken(t *testing.T, db *gorm.DB, userID uint) *models.UserToken {
	t.Helper()
	return CreateTestTokenWithExpiry(t, db, userID, time.Now().Add(24*time.Hour))
}

// CreateTestTokenWithExpiry creates a session token with the given expiry.
func CreateTestTokenWithExpiry(t *testing.T, db *gorm.DB, userID uint, expiresAt time.Time) *models.UserToken {
	t.Helper()

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	token := &models.UserToken{
		UserID:    userID,
		Token:     hex.EncodeToString(raw),
		ExpiresAt: expiresAt,
	}
	if err := db.Create(token).Error; err != nil {
		t.Fatalf("failed to create test token: %v", err)
	}
	return token
}

// CreateTestVerificationCode stores a verification code for the email.
func CreateTestVerificationCode(t *testing.T, db *gorm.DB, email, code string, expiresAt time.Time) *models.VerificationCode {
	t.Helper()

	vc := &models.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
	}
	if err := db.Create(vc).Error; err != nil {
		t.Fatalf("failed to create test verification code: %v", err)
	}
	return vc
}

// CreateTestCategory creates a category of the given type owned by the user.
// Use models.GlobalOwnerID as userID for a global default category.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Type:   categoryType,
		Icon:   "tag",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction dated today with the given amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, categoryID uint, amount decimal.Decimal) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOnDate(t, db, userID, categoryID, amount, models.NewDate(time.Now()))
}

// CreateTestTransactionOnDate creates a transaction on the given date.
func CreateTestTransactionOnDate(t *testing.T, db *gorm.DB, userID, categoryID uint, amount decimal.Decimal, date models.Date) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:          userID,
		CategoryID:      categoryID,
		Amount:          amount,
		TransactionDate: date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
