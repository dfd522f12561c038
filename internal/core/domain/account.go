package domain

import "errors"

// Currency is the closed set of currencies an account can be denominated in.
type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Currencies lists every supported currency. A new user gets one starter
// account per entry.
var Currencies = []Currency{CurrencyRUB, CurrencyUSD, CurrencyEUR}

// ParseCurrency validates a currency code against the supported set.
func ParseCurrency(code string) (Currency, error) {
	for _, c := range Currencies {
		if string(c) == code {
			return c, nil
		}
	}
	return "", ErrUnknownCurrency
}

var ErrAccountNotFound = errors.New("account not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidAmount = errors.New("amount must be positive")
var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrCurrencyMismatch = errors.New("account currencies do not match")
var ErrInvalidDestination = errors.New("destination account does not belong to the given user")
var ErrSameAccount = errors.New("source and destination accounts are the same")
var ErrUnknownCurrency = errors.New("unknown currency")
var ErrConflict = errors.New("operation aborted due to contention")

// Account holds a balance in a single currency, permanently owned by one user.
// Balance is in minor units (kopecks, cents) and never goes below zero.
type Account struct {
	ID       string   `json:"id" bson:"_id"`
	UserID   string   `json:"user_id" bson:"user_id"`
	Currency Currency `json:"currency" bson:"currency"`
	Balance  int64    `json:"balance" bson:"balance"`
}
