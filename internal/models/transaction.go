package models

import "github.com/shopspring/decimal"

// Transaction is a single money movement. Amount is always positive; whether
// it counts as income or expense is derived from the referenced category's
// type at read time and is never stored on the row, so retyping a category
// retroactively changes the polarity of its transactions.
type Transaction struct {
	Base
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	CategoryID      uint            `gorm:"index;not null" json:"category_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Note            *string         `json:"note"`
	TransactionDate Date            `gorm:"type:date;not null" json:"transaction_date"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
