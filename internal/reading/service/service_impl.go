package service

import (
	"context"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/wattsplit/wattsplit/internal/clock"
	readingdomain "github.com/wattsplit/wattsplit/internal/reading/domain"
	"github.com/wattsplit/wattsplit/internal/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Service is the in-memory Reading Store. All state is per-process; the
// mutex keeps HTTP handlers from observing a half-applied mutation.
type Service struct {
	mu sync.RWMutex

	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	metrics *telemetry.Metrics

	readings []readingdomain.TenantReading
	params   readingdomain.BillParameters
}

type ServiceParam struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Metrics *telemetry.Metrics `optional:"true"`
}

func NewService(p ServiceParam) readingdomain.Service {
	s := &Service{
		log:     p.Log.Named("reading.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		metrics: p.Metrics,
	}

	// The store must never be empty: seed one tenant with zero readings.
	s.readings = append(s.readings, s.newTenant(0))
	s.metrics.SetTenantCount(1)

	return s
}

func (s *Service) newTenant(index int) readingdomain.TenantReading {
	now := s.clock.Now()
	return readingdomain.TenantReading{
		ID:        s.genID.Generate(),
		Name:      readingdomain.DefaultName(index),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Service) AddTenant(ctx context.Context) (*readingdomain.TenantView, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	tenant := s.newTenant(len(s.readings))
	s.readings = append(s.readings, tenant)
	s.metrics.SetTenantCount(len(s.readings))

	s.log.Info("tenant added",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("name", tenant.Name),
	)

	view := toView(tenant)
	return &view, nil
}

func (s *Service) UpdateTenant(ctx context.Context, req readingdomain.UpdateRequest) (*readingdomain.TenantView, error) {
	_ = ctx

	id, err := readingdomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, readingdomain.ErrInvalidID
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, readingdomain.ErrInvalidName
	}
	if req.Previous != nil && req.Previous.IsNegative() {
		return nil, readingdomain.ErrInvalidMeter
	}
	if req.Current != nil && req.Current.IsNegative() {
		return nil, readingdomain.ErrInvalidMeter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, readingdomain.ErrNotFound
	}

	tenant := &s.readings[idx]
	if req.Name != nil {
		tenant.Name = strings.TrimSpace(*req.Name)
	}
	if req.Previous != nil {
		tenant.Previous = *req.Previous
	}
	if req.Current != nil {
		tenant.Current = *req.Current
	}
	tenant.UpdatedAt = s.clock.Now()

	view := toView(*tenant)
	return &view, nil
}

func (s *Service) RemoveTenant(ctx context.Context, rawID string) error {
	_ = ctx

	id, err := readingdomain.ParseID(strings.TrimSpace(rawID))
	if err != nil {
		return readingdomain.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return readingdomain.ErrNotFound
	}
	if len(s.readings) == 1 {
		return readingdomain.ErrLastTenant
	}

	removed := s.readings[idx]
	s.readings = append(s.readings[:idx], s.readings[idx+1:]...)
	s.metrics.SetTenantCount(len(s.readings))

	s.log.Info("tenant removed",
		zap.String("tenant_id", removed.ID.String()),
		zap.String("name", removed.Name),
	)
	return nil
}

func (s *Service) ListTenants(ctx context.Context) ([]readingdomain.TenantView, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]readingdomain.TenantView, 0, len(s.readings))
	for _, tenant := range s.readings {
		views = append(views, toView(tenant))
	}
	return views, nil
}

func (s *Service) SetBillParameters(ctx context.Context, req readingdomain.SetBillParametersRequest) (*readingdomain.BillParameters, error) {
	_ = ctx

	if req.TotalUnits.IsNegative() {
		return nil, readingdomain.ErrInvalidUnits
	}
	if req.TotalAmount.IsNegative() {
		return nil, readingdomain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = readingdomain.BillParameters{
		TotalUnits:  req.TotalUnits,
		TotalAmount: req.TotalAmount,
	}

	params := s.params
	return &params, nil
}

func (s *Service) GetBillParameters(ctx context.Context) (*readingdomain.BillParameters, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	params := s.params
	return &params, nil
}

func (s *Service) Snapshot(ctx context.Context) (*readingdomain.Snapshot, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	readings := make([]readingdomain.TenantReading, len(s.readings))
	copy(readings, s.readings)

	return &readingdomain.Snapshot{
		Readings: readings,
		Params:   s.params,
	}, nil
}

// indexOf must be called with the mutex held.
func (s *Service) indexOf(id snowflake.ID) int {
	for i := range s.readings {
		if s.readings[i].ID == id {
			return i
		}
	}
	return -1
}

func toView(tenant readingdomain.TenantReading) readingdomain.TenantView {
	return readingdomain.TenantView{
		ID:        tenant.ID.String(),
		Name:      tenant.Name,
		Previous:  tenant.Previous,
		Current:   tenant.Current,
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}
}
