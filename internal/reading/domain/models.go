package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// TenantReading is one tenant's meter record: the previous and current
// cumulative meter values for the billing period.
type TenantReading struct {
	ID        snowflake.ID    `json:"id"`
	Name      string          `json:"name"`
	Previous  decimal.Decimal `json:"previous"`
	Current   decimal.Decimal `json:"current"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Usage is the metered consumption for the period.
func (r TenantReading) Usage() decimal.Decimal {
	return r.Current.Sub(r.Previous)
}

// BillParameters are the two process-wide scalars of the shared bill.
type BillParameters struct {
	TotalUnits  decimal.Decimal `json:"total_units"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// Snapshot is a consistent copy of the store handed to the allocation
// engine; mutating it never affects the live store.
type Snapshot struct {
	Readings []TenantReading
	Params   BillParameters
}
