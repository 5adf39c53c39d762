package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"acme-ice-cream/flavors/internal/constants"
	"acme-ice-cream/flavors/internal/db/repositories"
	"acme-ice-cream/flavors/internal/logging"
	"acme-ice-cream/flavors/internal/metrics"
	"acme-ice-cream/flavors/internal/models/entities"
)

// ErrFlavorNotFound is returned by Update in strict mode when no row matches.
var ErrFlavorNotFound = errors.New("flavor not found")

// ValidationError is raised in strict mode for input the database would
// otherwise have to reject.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// FlavorService forwards each operation to the store. In strict mode it
// validates ids first and reports update misses as ErrFlavorNotFound.
type FlavorService struct {
	repo    repositories.FlavorStore
	strict  bool
	metrics *metrics.MetricsRegistry
}

func NewFlavorService(repo repositories.FlavorStore, strict bool, m *metrics.MetricsRegistry) *FlavorService {
	return &FlavorService{
		repo:    repo,
		strict:  strict,
		metrics: m,
	}
}

func (s *FlavorService) Strict() bool {
	return s.strict
}

// Init prepares the table before the listener starts. reseed discards all
// existing rows.
func (s *FlavorService) Init(ctx context.Context, reseed bool) error {
	if err := s.repo.Reset(ctx, reseed); err != nil {
		return fmt.Errorf("failed to initialize flavor table: %w", err)
	}
	if reseed {
		logging.Info("Flavor table recreated and seeded", "seed_rows", len(constants.SeedFlavors))
	} else {
		logging.Info("Flavor table ready, existing rows kept")
	}
	return nil
}

func (s *FlavorService) CreateFlavor(ctx context.Context, in entities.FlavorInput) (*entities.Flavor, error) {
	flavor, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.FlavorsCreatedTotal.Inc()
	}
	return flavor, nil
}

func (s *FlavorService) ListFlavors(ctx context.Context) ([]entities.Flavor, error) {
	return s.repo.List(ctx)
}

// GetFlavor returns zero or one rows; a miss is not an error in either mode.
func (s *FlavorService) GetFlavor(ctx context.Context, id string) ([]entities.Flavor, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// UpdateFlavor overwrites both writable columns. A miss yields nil, nil in
// permissive mode and ErrFlavorNotFound in strict mode.
func (s *FlavorService) UpdateFlavor(ctx context.Context, id string, in entities.FlavorInput) (*entities.Flavor, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	flavor, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if flavor == nil && s.strict {
		return nil, ErrFlavorNotFound
	}
	return flavor, nil
}

// DeleteFlavor succeeds whether or not a row was removed.
func (s *FlavorService) DeleteFlavor(ctx context.Context, id string) error {
	if err := s.checkID(id); err != nil {
		return err
	}
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.FlavorsDeletedTotal.Inc()
	}
	logging.Debug("Flavor delete executed", "id", id, "rows_affected", n)
	return nil
}

func (s *FlavorService) checkID(id string) error {
	if !s.strict {
		return nil
	}
	n, err := strconv.ParseInt(id, 10, 32)
	if err != nil || n <= 0 {
		return &ValidationError{Field: "id", Message: constants.MsgInvalidFlavorID}
	}
	return nil
}
