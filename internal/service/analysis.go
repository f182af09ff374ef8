package service

import (
	"context"
	"time"

	"sampletrack/internal/domain"
)

// AnalysisService provides scope-checked operations over analyses.
type AnalysisService struct {
	resolver *VisibilityResolver
	analyses domain.AnalysisRepository
	users    domain.UserRepository
	compat   *CompatibilityValidator
	audit    *AuditService
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(resolver *VisibilityResolver, analyses domain.AnalysisRepository, users domain.UserRepository, compat *CompatibilityValidator, audit *AuditService) *AnalysisService {
	return &AnalysisService{resolver: resolver, analyses: analyses, users: users, compat: compat, audit: audit}
}

// Create requests a new analysis over one or more datasets. Every dataset
// must be visible to the caller and the whole set must be compatible with the
// pipeline. The analysis row and its dataset links are persisted in a single
// transaction; nothing remains if any part fails.
func (s *AnalysisService) Create(ctx context.Context, req *domain.CreateAnalysisRequest) (*domain.Analysis, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if d := Authorize(p, ActionCreate, domain.KindAnalysis); !d.Allowed {
		s.audit.Record(ctx, "CREATE_ANALYSIS", domain.KindAnalysis, nil, AuditDenied, d.Reason)
		return nil, d.Err()
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	scope, err := s.resolver.Resolve(ctx, domain.ScopeOptions{})
	if err != nil {
		return nil, err
	}
	if scope.None() {
		return nil, domain.ErrNotFound("dataset %d not found", req.DatasetIDs[0])
	}
	if err := s.compat.Validate(ctx, scope, req.DatasetIDs, req.PipelineID); err != nil {
		return nil, err
	}
	a := &domain.Analysis{
		PipelineID:  req.PipelineID,
		State:       domain.AnalysisRequested,
		RequesterID: p.ID,
		DatasetIDs:  req.DatasetIDs,
		UpdatedBy:   p.ID,
	}
	result, err := s.analyses.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "CREATE_ANALYSIS", domain.KindAnalysis, &result.ID, AuditAllowed, "")
	return result, nil
}

// CompatiblePipelines returns the pipelines able to run over the given
// visible datasets.
func (s *AnalysisService) CompatiblePipelines(ctx context.Context, opts domain.ScopeOptions, datasetIDs []int64) ([]domain.Pipeline, error) {
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, err
	}
	if scope.None() && len(datasetIDs) > 0 {
		return nil, domain.ErrNotFound("dataset %d not found", datasetIDs[0])
	}
	return s.compat.CompatiblePipelines(ctx, scope, datasetIDs)
}

// Get returns one analysis if any of its datasets is reachable from the
// caller's scope.
func (s *AnalysisService) Get(ctx context.Context, opts domain.ScopeOptions, id int64) (*domain.Analysis, error) {
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, err
	}
	if scope.None() {
		return nil, domain.ErrNotFound("analysis %d not found", id)
	}
	return s.analyses.GetByID(ctx, scope, id)
}

// List returns the analyses reachable from the caller's scope.
func (s *AnalysisService) List(ctx context.Context, opts domain.ScopeOptions, filter domain.AnalysisFilter) ([]domain.Analysis, int64, error) {
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	if scope.None() {
		return []domain.Analysis{}, 0, nil
	}
	return s.analyses.List(ctx, scope, filter)
}

// Update patches a visible analysis. State changes go through the transition
// rules: non-admins may only cancel. The assignee is resolved by username; an
// empty username clears it.
func (s *AnalysisService) Update(ctx context.Context, id int64, req *domain.UpdateAnalysisRequest) (*domain.Analysis, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if d := Authorize(p, ActionUpdate, domain.KindAnalysis); !d.Allowed {
		s.audit.Record(ctx, "UPDATE_ANALYSIS", domain.KindAnalysis, &id, AuditDenied, d.Reason)
		return nil, d.Err()
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	scope, err := s.resolver.Resolve(ctx, domain.ScopeOptions{})
	if err != nil {
		return nil, err
	}
	if scope.None() {
		return nil, domain.ErrNotFound("analysis %d not found", id)
	}
	a, err := s.analyses.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.State != nil {
		to := domain.AnalysisState(*req.State)
		if d := AuthorizeStateTransition(p, a.State, to); !d.Allowed {
			s.audit.Record(ctx, "UPDATE_ANALYSIS", domain.KindAnalysis, &id, AuditDenied, d.Reason)
			return nil, d.Err()
		}
		a.State = to
		s.stampStateTimes(a, to)
	}
	if req.AssigneeUsername != nil {
		if *req.AssigneeUsername == "" {
			a.AssigneeID = nil
		} else {
			u, err := s.users.GetByUsername(ctx, *req.AssigneeUsername)
			if err != nil {
				return nil, err
			}
			a.AssigneeID = &u.ID
		}
	}
	if req.QsubID != nil {
		a.QsubID = req.QsubID
	}
	if req.ResultPath != nil {
		a.ResultPath = req.ResultPath
	}
	if req.StartedAt != nil {
		a.StartedAt = req.StartedAt
	}
	if req.FinishedAt != nil {
		a.FinishedAt = req.FinishedAt
	}
	if req.Notes != nil {
		a.Notes = req.Notes
	}
	a.UpdatedBy = p.ID
	result, err := s.analyses.Update(ctx, a)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "UPDATE_ANALYSIS", domain.KindAnalysis, &id, AuditAllowed, "")
	return result, nil
}

// stampStateTimes records wall-clock markers for transitions the caller did
// not set explicitly.
func (s *AnalysisService) stampStateTimes(a *domain.Analysis, to domain.AnalysisState) {
	now := time.Now().UTC()
	switch to {
	case domain.AnalysisRunning:
		if a.StartedAt == nil {
			a.StartedAt = &now
		}
	case domain.AnalysisDone, domain.AnalysisError, domain.AnalysisCancelled:
		if a.FinishedAt == nil {
			a.FinishedAt = &now
		}
	}
}

// Delete removes an analysis. Requires admin privileges.
func (s *AnalysisService) Delete(ctx context.Context, id int64) error {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return err
	}
	if d := Authorize(p, ActionDelete, domain.KindAnalysis); !d.Allowed {
		s.audit.Record(ctx, "DELETE_ANALYSIS", domain.KindAnalysis, &id, AuditDenied, d.Reason)
		return d.Err()
	}
	if _, err := s.analyses.GetByID(ctx, domain.FullScope(), id); err != nil {
		return err
	}
	if err := s.analyses.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "DELETE_ANALYSIS", domain.KindAnalysis, &id, AuditAllowed, "")
	return nil
}
