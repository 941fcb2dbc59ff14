package models

import "time"

// GlobalOwnerID is the sentinel user ID that owns system-provided default
// categories visible to every user.
const GlobalOwnerID uint = 0

// User represents the user model in the database. Users are created on the
// first successful verification of an email never seen before; there is no
// password credential in this system.
type User struct {
	Base
	Email  string  `gorm:"uniqueIndex;not null" json:"email"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`

	Categories   []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}

// VerificationCode is an ephemeral emailed credential. Rows are append-only:
// verification always reads the most recently created row for an email, so a
// newer request supersedes older codes without deleting them.
type VerificationCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"index;not null" json:"email"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// UserToken is an opaque bearer session credential. A request carrying an
// unexpired token row is authenticated as the owning user; logout deletes
// the row.
type UserToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
