package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "moneynote/internal/errors"
	"moneynote/internal/mail"
	"moneynote/internal/models"
)

// authService implements the one-time-code login and bearer-token session
// lifecycle against the relational store.
type authService struct {
	db          *gorm.DB
	mailer      mail.Mailer
	codeExpiry  time.Duration
	tokenExpiry time.Duration
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(db *gorm.DB, mailer mail.Mailer, codeExpiry, tokenExpiry time.Duration) AuthServicer {
	return &authService{
		db:          db,
		mailer:      mailer,
		codeExpiry:  codeExpiry,
		tokenExpiry: tokenExpiry,
	}
}

// RequestCode generates and stores a 6-digit code, then emails it. The code
// is never echoed in the response. Older codes for the same email stay in
// place; only the newest one is accepted at verification time.
func (s *authService) RequestCode(email string) error {
	code, err := generateCode()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	record := &models.VerificationCode{
		Email:     strings.ToLower(email),
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeExpiry),
	}
	if err := s.db.Create(record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.mailer.SendVerificationCode(record.Email, code, s.codeExpiry); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// VerifyCode checks the given code against the most recently issued one for
// the email. Absence, expiry, and mismatch all return the same error so the
// response does not reveal which check failed. On success the user is looked
// up or created and a fresh session token is issued, atomically: no token is
// handed out if user creation fails.
func (s *authService) VerifyCode(email, code string) (string, *models.User, error) {
	email = strings.ToLower(email)

	var record models.VerificationCode
	err := s.db.Where("email = ?", email).Order("created_at DESC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrVerificationCode
		}
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if record.Code != code || time.Now().After(record.ExpiresAt) {
		return "", nil, apperrors.ErrVerificationCode
	}

	var token string
	var user *models.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		user, txErr = getOrCreateUser(tx, email)
		if txErr != nil {
			return txErr
		}
		token, txErr = issueToken(tx, user.ID, s.tokenExpiry)
		return txErr
	})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken resolves a bearer token to its owning user. Unknown or
// expired tokens are unauthenticated, not errors.
func (s *authService) ValidateToken(token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	var user models.User
	err := s.db.
		Joins("JOIN user_tokens ON user_tokens.user_id = users.id").
		Where("user_tokens.token = ? AND user_tokens.expires_at > ?", token, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// Logout deletes the token row. Deleting an already-invalid token is a no-op.
func (s *authService) Logout(token string) error {
	if err := s.db.Where("token = ?", token).Delete(&models.UserToken{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *authService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// getOrCreateUser fetches the user for an email, creating one with the email
// local-part as the default display name on first login.
func getOrCreateUser(tx *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := tx.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user = models.User{
		Email: email,
		Name:  strings.SplitN(email, "@", 2)[0],
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// issueToken creates a new random bearer token row with a fresh expiry window.
func issueToken(tx *gorm.DB, userID uint, expiry time.Duration) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	record := &models.UserToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(expiry),
	}
	if err := tx.Create(record).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return token, nil
}

// generateCode returns a zero-padded 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// generateToken returns 32 random bytes hex-encoded (64 characters).
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
