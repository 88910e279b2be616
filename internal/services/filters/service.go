package filters

import (
	"context"
	"time"

	"schooldb/internal/schoolsapi"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Fetcher is the part of the registry client the filter lists need
type Fetcher interface {
	FetchRegions(ctx context.Context) ([]schoolsapi.Region, error)
	FetchFederalDistricts(ctx context.Context) ([]schoolsapi.FederalDistrict, error)
}

// Catalog is the set of values a UI offers as listing filters
type Catalog struct {
	Regions          []schoolsapi.Region          `json:"regions" yaml:"regions"`
	FederalDistricts []schoolsapi.FederalDistrict `json:"federal_districts" yaml:"federal_districts"`
}

// Service loads filter dictionaries from the registry
type Service struct {
	fetcher Fetcher
}

// NewService creates a filters service
func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Regions returns all regions
func (s *Service) Regions(ctx context.Context) ([]schoolsapi.Region, error) {
	regions, err := s.fetcher.FetchRegions(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "regions", Err: err}
	}
	return nonNil(regions), nil
}

// FederalDistricts returns all federal districts
func (s *Service) FederalDistricts(ctx context.Context) ([]schoolsapi.FederalDistrict, error) {
	districts, err := s.fetcher.FetchFederalDistricts(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "federal_districts", Err: err}
	}
	return nonNil(districts), nil
}

// Load fetches both dictionaries concurrently. The first failure cancels
// the other request.
func (s *Service) Load(ctx context.Context) (*Catalog, error) {
	start := time.Now()
	cat := &Catalog{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		regions, err := s.Regions(gctx)
		cat.Regions = regions
		return err
	})
	g.Go(func() error {
		districts, err := s.FederalDistricts(gctx)
		cat.FederalDistricts = districts
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load filter catalog")
		return nil, err
	}

	log.Debug().
		Int("regions", len(cat.Regions)).
		Int("federal_districts", len(cat.FederalDistricts)).
		Dur("took", time.Since(start)).
		Msg("filter catalog loaded")
	return cat, nil
}

// ServiceError represents a filters service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "filters " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
