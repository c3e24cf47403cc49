package wallet

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
)

// Asset kinds. The kind selects the conversion path: cash converts through a
// currency rate, gold is a weight in grams priced at the gold rate.
const (
	KindCash = "cash"
	KindGold = "gold"
)

// Debt directions. Only debts owed by the user reduce the zakat-relevant net
// assets; debts owed to the user are tracked but never subtracted.
const (
	OwedByMe = "owed_by_me"
	OwedToMe = "owed_to_me"
)

// currencies the conversion function understands, base currency first.
var supportedCurrencies = []string{"YER", "USD", "SAR"}

// Asset is one monetary holding. For gold assets Value is a weight in grams
// and Currency is ignored by the conversion.
type Asset struct {
	ID       int64   `json:"id,omitempty"`
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
	Type     string  `json:"type"`
}

// Debt is one owed amount, in either direction.
type Debt struct {
	ID       int64   `json:"id,omitempty"`
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
	Type     string  `json:"type"`
}

// Validate rejects an asset before any write happens.
func (a Asset) Validate() error {
	if err := validateAmount(a.Value); err != nil {
		return err
	}
	switch a.Type {
	case KindGold:
		// Weight in grams, no currency involved.
		return nil
	case KindCash:
		return validateCurrency(a.Currency)
	default:
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("must be %q or %q", KindCash, KindGold)}
	}
}

// Validate rejects a debt before any write happens.
func (d Debt) Validate() error {
	if err := validateAmount(d.Value); err != nil {
		return err
	}
	if d.Type != OwedByMe && d.Type != OwedToMe {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("must be %q or %q", OwedByMe, OwedToMe)}
	}
	return validateCurrency(d.Currency)
}

func validateAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &ValidationError{Field: "value", Reason: "must be a positive number"}
	}
	return nil
}

func validateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return &ValidationError{Field: "currency", Reason: fmt.Sprintf("unknown currency code %q", code)}
	}
	for _, c := range supportedCurrencies {
		if c == code {
			return nil
		}
	}
	return &ValidationError{Field: "currency", Reason: fmt.Sprintf("must be one of %v", supportedCurrencies)}
}
