package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wattsplit/wattsplit/internal/clock"
	readingdomain "github.com/wattsplit/wattsplit/internal/reading/domain"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) readingdomain.Service {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	})
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func TestStoreSeedsOneTenant(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tenants, err := svc.ListTenants(ctx)
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "A", tenants[0].Name)
	assert.True(t, tenants[0].Previous.IsZero())
	assert.True(t, tenants[0].Current.IsZero())
}

func TestAddTenantFollowsLetterSequence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	second, err := svc.AddTenant(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B", second.Name)

	third, err := svc.AddTenant(ctx)
	require.NoError(t, err)
	assert.Equal(t, "C", third.Name)

	tenants, err := svc.ListTenants(ctx)
	require.NoError(t, err)
	assert.Len(t, tenants, 3)
}

func TestUpdateTenantFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tenants, err := svc.ListTenants(ctx)
	require.NoError(t, err)

	name := "Ground floor"
	previous := mustDecimal(t, "97.87")
	current := mustDecimal(t, "126.95")

	updated, err := svc.UpdateTenant(ctx, readingdomain.UpdateRequest{
		ID:       tenants[0].ID,
		Name:     &name,
		Previous: &previous,
		Current:  &current,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ground floor", updated.Name)
	assert.True(t, updated.Previous.Equal(previous))
	assert.True(t, updated.Current.Equal(current))
}

func TestUpdateTenantValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tenants, err := svc.ListTenants(ctx)
	require.NoError(t, err)
	id := tenants[0].ID

	empty := "   "
	_, err = svc.UpdateTenant(ctx, readingdomain.UpdateRequest{ID: id, Name: &empty})
	assert.ErrorIs(t, err, readingdomain.ErrInvalidName)

	negative := mustDecimal(t, "-1")
	_, err = svc.UpdateTenant(ctx, readingdomain.UpdateRequest{ID: id, Previous: &negative})
	assert.ErrorIs(t, err, readingdomain.ErrInvalidMeter)

	_, err = svc.UpdateTenant(ctx, readingdomain.UpdateRequest{ID: "not-a-snowflake", Name: &empty})
	assert.ErrorIs(t, err, readingdomain.ErrInvalidID)

	_, err = svc.UpdateTenant(ctx, readingdomain.UpdateRequest{ID: "424242"})
	assert.ErrorIs(t, err, readingdomain.ErrNotFound)
}

func TestCurrentBelowPreviousIsAccepted(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tenants, err := svc.ListTenants(ctx)
	require.NoError(t, err)

	previous := mustDecimal(t, "100")
	current := mustDecimal(t, "40")
	updated, err := svc.UpdateTenant(ctx, readingdomain.UpdateRequest{
		ID:       tenants[0].ID,
		Previous: &previous,
		Current:  &current,
	})
	require.NoError(t, err)
	assert.True(t, updated.Current.LessThan(updated.Previous))
}

func TestRemoveLastTenantRefused(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tenants, err := svc.ListTenants(ctx)
	require.NoError(t, err)

	err = svc.RemoveTenant(ctx, tenants[0].ID)
	assert.ErrorIs(t, err, readingdomain.ErrLastTenant)

	// store unchanged
	after, err := svc.ListTenants(ctx)
	require.NoError(t, err)
	assert.Len(t, after, 1)
	assert.Equal(t, tenants[0].ID, after[0].ID)
}

func TestRemoveTenant(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddTenant(ctx)
	require.NoError(t, err)

	err = svc.RemoveTenant(ctx, added.ID)
	require.NoError(t, err)

	tenants, err := svc.ListTenants(ctx)
	require.NoError(t, err)
	assert.Len(t, tenants, 1)

	err = svc.RemoveTenant(ctx, added.ID)
	assert.ErrorIs(t, err, readingdomain.ErrNotFound)
}

func TestSetBillParameters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	params, err := svc.SetBillParameters(ctx, readingdomain.SetBillParametersRequest{
		TotalUnits:  mustDecimal(t, "52.8"),
		TotalAmount: mustDecimal(t, "12000"),
	})
	require.NoError(t, err)
	assert.True(t, params.TotalUnits.Equal(mustDecimal(t, "52.8")))

	stored, err := svc.GetBillParameters(ctx)
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(mustDecimal(t, "12000")))

	_, err = svc.SetBillParameters(ctx, readingdomain.SetBillParametersRequest{
		TotalUnits: mustDecimal(t, "-5"),
	})
	assert.ErrorIs(t, err, readingdomain.ErrInvalidUnits)

	_, err = svc.SetBillParameters(ctx, readingdomain.SetBillParametersRequest{
		TotalAmount: mustDecimal(t, "-5"),
	})
	assert.ErrorIs(t, err, readingdomain.ErrInvalidAmount)
}

func TestSnapshotIsIsolated(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Readings, 1)

	// mutating the snapshot must not leak into the store
	snapshot.Readings[0].Name = "mutated"

	tenants, err := svc.ListTenants(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", tenants[0].Name)
}
