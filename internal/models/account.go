package models

import "time"

// Currency is one of the fixed set of supported account currencies.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	RUB Currency = "RUB"
)

// DefaultCurrencies returns the supported currencies in the fixed order
// accounts are created for a new user.
func DefaultCurrencies() []Currency {
	return []Currency{USD, EUR, RUB}
}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	switch c {
	case USD, EUR, RUB:
		return true
	}
	return false
}

// Account holds a single-currency balance owned by exactly one user.
// Balance is in minor currency units (cents, kopecks) and never negative.
// Owner and currency are immutable after creation; balance changes only
// through the ledger and transfer services.
type Account struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Currency  Currency  `gorm:"type:varchar(3);not null" json:"currency"`
	Balance   int64     `gorm:"not null;default:0" json:"amount"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
