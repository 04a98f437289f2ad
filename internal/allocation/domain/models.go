// Package domain defines the allocation engine contract: how a shared
// electricity bill is split across tenant meter readings.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TenantResult is one tenant's line in a computed statement.
type TenantResult struct {
	TenantID   string          `json:"tenant_id"`
	Name       string          `json:"name"`
	Usage      decimal.Decimal `json:"usage"`
	Bonus      decimal.Decimal `json:"bonus"`
	FinalUnits decimal.Decimal `json:"final_units"`
	Percent    decimal.Decimal `json:"percent"`
	Amount     decimal.Decimal `json:"amount"`
}

// Statement is a fully computed allocation snapshot. It is derived, never
// stored: every read recomputes it from the reading store.
//
// When TotalUnits is zero the unit price is undefined; PriceDefined is
// false and UnitPrice, Amount and Percent are all zero rather than NaN or
// infinity.
type Statement struct {
	GeneratedAt      time.Time       `json:"generated_at"`
	Currency         string          `json:"currency"`
	TotalUnits       decimal.Decimal `json:"total_units"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	PriceDefined     bool            `json:"price_defined"`
	TotalUsage       decimal.Decimal `json:"total_usage"`
	UnaccountedUnits decimal.Decimal `json:"unaccounted_units"`
	Bonus            decimal.Decimal `json:"bonus"`
	Results          []TenantResult  `json:"results"`
}

// SumFinalUnits adds up the final billed units across all tenants. Within
// rounding tolerance it equals TotalUnits.
func (s Statement) SumFinalUnits() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range s.Results {
		sum = sum.Add(r.FinalUnits)
	}
	return sum
}

// SumAmounts adds up the per-tenant amounts. Within rounding tolerance it
// equals TotalAmount when the unit price is defined.
func (s Statement) SumAmounts() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range s.Results {
		sum = sum.Add(r.Amount)
	}
	return sum
}

// SumPercents adds up the per-tenant percentage shares.
func (s Statement) SumPercents() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range s.Results {
		sum = sum.Add(r.Percent)
	}
	return sum
}

type Service interface {
	Compute(ctx context.Context) (*Statement, error)
}

var ErrNoTenants = errors.New("no_tenants")
