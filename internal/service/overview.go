package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"sampletrack/internal/domain"
)

// Overview holds per-kind record counts within the caller's scope.
type Overview struct {
	Families     int64
	Participants int64
	Datasets     int64
	Analyses     int64
}

// OverviewService aggregates scoped counts across the hierarchy.
type OverviewService struct {
	resolver     *VisibilityResolver
	families     domain.FamilyRepository
	participants domain.ParticipantRepository
	datasets     domain.DatasetRepository
	analyses     domain.AnalysisRepository
}

// NewOverviewService creates a new OverviewService.
func NewOverviewService(resolver *VisibilityResolver, families domain.FamilyRepository, participants domain.ParticipantRepository, datasets domain.DatasetRepository, analyses domain.AnalysisRepository) *OverviewService {
	return &OverviewService{
		resolver:     resolver,
		families:     families,
		participants: participants,
		datasets:     datasets,
		analyses:     analyses,
	}
}

// Counts returns how many records of each kind the caller can see. The four
// counts run concurrently against the read pool.
func (s *OverviewService) Counts(ctx context.Context, opts domain.ScopeOptions) (*Overview, error) {
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, err
	}
	o := &Overview{}
	if scope.None() {
		return o, nil
	}

	page := domain.PageRequest{Limit: 1}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, n, err := s.families.List(gctx, scope, domain.FamilyFilter{Page: page})
		o.Families = n
		return err
	})
	g.Go(func() error {
		_, n, err := s.participants.List(gctx, scope, domain.ParticipantFilter{Page: page})
		o.Participants = n
		return err
	})
	g.Go(func() error {
		_, n, err := s.datasets.List(gctx, scope, domain.DatasetFilter{Page: page})
		o.Datasets = n
		return err
	})
	g.Go(func() error {
		_, n, err := s.analyses.List(gctx, scope, domain.AnalysisFilter{Page: page})
		o.Analyses = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return o, nil
}
