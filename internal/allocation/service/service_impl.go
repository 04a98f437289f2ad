package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	allocationdomain "github.com/wattsplit/wattsplit/internal/allocation/domain"
	"github.com/wattsplit/wattsplit/internal/clock"
	"github.com/wattsplit/wattsplit/internal/config"
	readingdomain "github.com/wattsplit/wattsplit/internal/reading/domain"
	"github.com/wattsplit/wattsplit/internal/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

type Service struct {
	log     *zap.Logger
	clock   clock.Clock
	metrics *telemetry.Metrics
	display *config.DisplayConfigHolder
	store   readingdomain.Service
}

type ServiceParam struct {
	fx.In

	Log     *zap.Logger
	Clock   clock.Clock
	Display *config.DisplayConfigHolder
	Store   readingdomain.Service
	Metrics *telemetry.Metrics `optional:"true"`
}

func NewService(p ServiceParam) allocationdomain.Service {
	return &Service{
		log:     p.Log.Named("allocation.service"),
		clock:   p.Clock,
		metrics: p.Metrics,
		display: p.Display,
		store:   p.Store,
	}
}

// Compute derives a statement from the current store contents. It has no
// side effects on the store; identical inputs always produce identical
// output.
func (s *Service) Compute(ctx context.Context) (*allocationdomain.Statement, error) {
	snapshot, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	statement, err := Calculate(*snapshot, s.display.Get().CurrencyCode, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.metrics.StatementComputed()
	s.log.Debug("statement computed",
		zap.Int("tenants", len(statement.Results)),
		zap.String("total_units", statement.TotalUnits.String()),
		zap.Bool("price_defined", statement.PriceDefined),
	)
	return statement, nil
}

// Calculate splits the shared bill across the snapshot's tenants.
//
// Per-tenant usage, the unaccounted remainder and the equal bonus share are
// each rounded to 2 decimal places, half away from zero. Final units is the
// exact sum of two already-rounded terms and is not rounded again; amount
// and percent are rounded once at the end. This keeps both reconciliation
// sums (final units vs. purchased units, amounts vs. billed amount) within
// one cent per tenant.
//
// Negative values are propagated, not rejected: a tenant whose current
// reading is below the previous one contributes negative usage, and when
// the tenants collectively report more than was purchased the bonus is
// negative for everyone.
func Calculate(snapshot readingdomain.Snapshot, currency string, at time.Time) (*allocationdomain.Statement, error) {
	n := len(snapshot.Readings)
	if n == 0 {
		return nil, allocationdomain.ErrNoTenants
	}

	usages := make([]decimal.Decimal, n)
	totalUsage := decimal.Zero
	for i, r := range snapshot.Readings {
		usages[i] = r.Usage().Round(2)
		totalUsage = totalUsage.Add(usages[i])
	}

	totalUnits := snapshot.Params.TotalUnits
	totalAmount := snapshot.Params.TotalAmount

	unaccounted := totalUnits.Sub(totalUsage).Round(2)
	bonus := unaccounted.Div(decimal.NewFromInt(int64(n))).Round(2)

	priceDefined := !totalUnits.IsZero()
	unitPrice := decimal.Zero
	if priceDefined {
		unitPrice = totalAmount.Div(totalUnits).Round(2)
	}

	results := make([]allocationdomain.TenantResult, 0, n)
	for i, r := range snapshot.Readings {
		finalUnits := usages[i].Add(bonus)

		amount := decimal.Zero
		percent := decimal.Zero
		if priceDefined {
			share := finalUnits.Div(totalUnits)
			amount = share.Mul(totalAmount).Round(2)
			percent = share.Mul(hundred).Round(2)
		}

		results = append(results, allocationdomain.TenantResult{
			TenantID:   r.ID.String(),
			Name:       r.Name,
			Usage:      usages[i],
			Bonus:      bonus,
			FinalUnits: finalUnits,
			Percent:    percent,
			Amount:     amount,
		})
	}

	return &allocationdomain.Statement{
		GeneratedAt:      at,
		Currency:         currency,
		TotalUnits:       totalUnits,
		TotalAmount:      totalAmount,
		UnitPrice:        unitPrice,
		PriceDefined:     priceDefined,
		TotalUsage:       totalUsage,
		UnaccountedUnits: unaccounted,
		Bonus:            bonus,
		Results:          results,
	}, nil
}
