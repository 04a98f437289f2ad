package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	AddTenant(ctx context.Context) (*TenantView, error)
	UpdateTenant(ctx context.Context, req UpdateRequest) (*TenantView, error)
	RemoveTenant(ctx context.Context, id string) error
	ListTenants(ctx context.Context) ([]TenantView, error)
	SetBillParameters(ctx context.Context, req SetBillParametersRequest) (*BillParameters, error)
	GetBillParameters(ctx context.Context) (*BillParameters, error)
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type UpdateRequest struct {
	ID       string           `json:"id"`
	Name     *string          `json:"name,omitempty"`
	Previous *decimal.Decimal `json:"previous,omitempty"`
	Current  *decimal.Decimal `json:"current,omitempty"`
}

type SetBillParametersRequest struct {
	TotalUnits  decimal.Decimal `json:"total_units"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type TenantView struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Previous  decimal.Decimal `json:"previous"`
	Current   decimal.Decimal `json:"current"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

var (
	ErrNotFound      = errors.New("not_found")
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidName   = errors.New("invalid_name")
	ErrLastTenant    = errors.New("last_tenant")
	ErrInvalidMeter  = errors.New("invalid_meter_value")
	ErrInvalidUnits  = errors.New("invalid_total_units")
	ErrInvalidAmount = errors.New("invalid_total_amount")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}

// DefaultName yields the letter-sequence tenant label for a zero-based
// position: A..Z, then AA, AB, and so on.
func DefaultName(index int) string {
	name := ""
	for index >= 0 {
		name = string(rune('A'+index%26)) + name
		index = index/26 - 1
	}
	return name
}
