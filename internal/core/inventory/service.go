package inventory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/aerostock/aerostock/config"
	"github.com/aerostock/aerostock/internal/core/blueprint"
	"github.com/aerostock/aerostock/internal/core/validation"
	"github.com/aerostock/aerostock/internal/logger"
	"github.com/aerostock/aerostock/internal/metrics"
)

// Source supplies the two record collections and the facility list, and accepts new records.
type Source interface {
	ListAirplanes(ctx context.Context) ([]Record, error)
	ListComponents(ctx context.Context) ([]Record, error)
	ListFacilities(ctx context.Context) ([]Facility, error)
	Create(ctx context.Context, endpoint string, data map[string]interface{}) error
}

type Service struct {
	source          Source
	blueprintSvc    *blueprint.Service
	validator       *validation.Validator
	pageSize        int
	refreshInterval time.Duration
	fetchTimeout    time.Duration
	now             func() time.Time

	refresh singleflight.Group

	mu         sync.RWMutex
	snapshot   *Snapshot
	generation uint64
}

func NewService(source Source, blueprintSvc *blueprint.Service, validator *validation.Validator, cfg *config.InventoryConfig) *Service {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		source:          source,
		blueprintSvc:    blueprintSvc,
		validator:       validator,
		pageSize:        pageSize,
		refreshInterval: cfg.RefreshInterval,
		fetchTimeout:    cfg.FetchTimeout,
		now:             time.Now,
	}
}

// Refresh fetches both collections concurrently and publishes the merged
// snapshot once both have arrived. Concurrent callers share one fetch.
// On failure the previous snapshot stays in place.
//
// The shared fetch keeps ctx's values but not its cancellation, so one caller
// giving up does not fail the others. It is bounded by the fetch timeout instead.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	v, err, _ := s.refresh.Do("refresh", func() (interface{}, error) {
		fetchCtx := context.WithoutCancel(ctx)
		if s.fetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, s.fetchTimeout)
			defer cancel()
		}
		return s.fetch(fetchCtx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (s *Service) fetch(ctx context.Context) (*Snapshot, error) {
	start := s.now()

	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	var airplanes, components []Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := s.source.ListAirplanes(gctx)
		if err != nil {
			return fmt.Errorf("failed to list airplanes: %w", err)
		}
		airplanes = records
		return nil
	})
	g.Go(func() error {
		records, err := s.source.ListComponents(gctx)
		if err != nil {
			return fmt.Errorf("failed to list components: %w", err)
		}
		components = records
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		logger.Error("Failed to refresh inventory", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	snap := &Snapshot{
		ID:         uuid.New(),
		FetchedAt:  s.now(),
		Records:    Merge(airplanes, components),
		Airplanes:  len(airplanes),
		Components: len(components),
		generation: gen,
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	metrics.RefreshTotal.WithLabelValues("ok").Inc()
	metrics.SnapshotRecords.WithLabelValues(string(TypeAirplane)).Set(float64(snap.Airplanes))
	metrics.SnapshotRecords.WithLabelValues(string(TypeComponent)).Set(float64(snap.Components))
	logger.Info("Inventory refreshed",
		"snapshot_id", snap.ID,
		"airplanes", snap.Airplanes,
		"components", snap.Components,
		"duration", s.now().Sub(start),
	)

	return snap, nil
}

// Invalidate forces the next Current call to refetch.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()
}

// Current returns the published snapshot, refreshing it first when there is
// none or it has gone stale. A stale snapshot is still served if the refresh fails.
func (s *Service) Current(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	snap, gen := s.snapshot, s.generation
	s.mu.RUnlock()

	if snap != nil && !s.stale(snap, gen) {
		return snap, nil
	}

	fresh, err := s.Refresh(ctx)
	if err != nil {
		if snap != nil {
			logger.Warn("Serving stale inventory snapshot", "snapshot_id", snap.ID, "fetched_at", snap.FetchedAt)
			return snap, nil
		}
		return nil, err
	}
	return fresh, nil
}

func (s *Service) stale(snap *Snapshot, gen uint64) bool {
	if snap.generation != gen {
		return true
	}
	return s.refreshInterval > 0 && s.now().Sub(snap.FetchedAt) >= s.refreshInterval
}

// Query evaluates q against the current snapshot. A zero PageSize uses the configured one.
func (s *Service) Query(ctx context.Context, q Query) (*QueryResponse, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	if q.PageSize <= 0 {
		q.PageSize = s.pageSize
	}

	res := Evaluate(snap.Records, q)
	metrics.EvaluationsTotal.Inc()

	return &QueryResponse{
		Records:    res.Records,
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
		Sort:       q.Sort,
		NextSort:   q.Sort.NextStates(),
		SnapshotID: snap.ID,
		FetchedAt:  snap.FetchedAt,
	}, nil
}

func (s *Service) Get(ctx context.Context, key Key) (*Record, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	r, ok := Find(snap.Records, key)
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

// Create validates data against the blueprint of t and forwards it to the source.
func (s *Service) Create(ctx context.Context, t Type, data map[string]interface{}) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, t)
	}

	bp, err := s.blueprintSvc.Get(string(t))
	if err != nil {
		if errors.Is(err, blueprint.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrUnknownType, t)
		}
		return err
	}

	if err := s.validator.Validate(data, bp.Schema); err != nil {
		return err
	}

	payload := maps.Clone(data)
	if payload == nil {
		payload = make(map[string]interface{})
	}
	payload["type"] = t.String()

	if err := s.source.Create(ctx, bp.Endpoint, payload); err != nil {
		logger.Error("Failed to create record", "type", t, "error", err)
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	s.Invalidate()
	return nil
}

// Facilities lists every facility with the snapshot records built there.
// The facility list is read from the source on each call.
func (s *Service) Facilities(ctx context.Context) ([]FacilityInventory, error) {
	var facilities []Facility
	var snap *Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.source.ListFacilities(gctx)
		if err != nil {
			logger.Error("Failed to list facilities", "error", err)
			return fmt.Errorf("%w: failed to list facilities: %w", ErrSourceUnavailable, err)
		}
		facilities = list
		return nil
	})
	g.Go(func() error {
		current, err := s.Current(gctx)
		if err != nil {
			return err
		}
		snap = current
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]FacilityInventory, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, InventoryAt(f, snap.Records))
	}
	return out, nil
}

func (s *Service) Facility(ctx context.Context, id int64) (*FacilityInventory, error) {
	all, err := s.Facilities(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Facility.ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}
