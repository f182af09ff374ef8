package service

import (
	"context"

	"sampletrack/internal/domain"
)

// TissueSampleService provides scope-checked operations over tissue samples.
type TissueSampleService struct {
	resolver     *VisibilityResolver
	samples      domain.TissueSampleRepository
	participants domain.ParticipantRepository
	audit        *AuditService
}

// NewTissueSampleService creates a new TissueSampleService.
func NewTissueSampleService(resolver *VisibilityResolver, samples domain.TissueSampleRepository, participants domain.ParticipantRepository, audit *AuditService) *TissueSampleService {
	return &TissueSampleService{resolver: resolver, samples: samples, participants: participants, audit: audit}
}

// Create records a tissue sample under a participant the caller can see.
func (s *TissueSampleService) Create(ctx context.Context, req *domain.CreateTissueSampleRequest) (*domain.TissueSample, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if d := Authorize(p, ActionCreate, domain.KindTissueSample); !d.Allowed {
		s.audit.Record(ctx, "CREATE_TISSUE_SAMPLE", domain.KindTissueSample, nil, AuditDenied, d.Reason)
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
		return nil, domain.ErrNotFound("participant %d not found", req.ParticipantID)
	}
	if _, err := s.participants.GetByID(ctx, scope, req.ParticipantID); err != nil {
		return nil, err
	}
	sample := &domain.TissueSample{
		ParticipantID:  req.ParticipantID,
		Type:           domain.TissueSampleType(req.Type),
		ExtractionDate: req.ExtractionDate,
		Notes:          req.Notes,
		CreatedBy:      p.ID,
		UpdatedBy:      p.ID,
	}
	if req.Processing != nil {
		proc := domain.TissueProcessing(*req.Processing)
		sample.Processing = &proc
	}
	result, err := s.samples.Create(ctx, sample)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "CREATE_TISSUE_SAMPLE", domain.KindTissueSample, &result.ID, AuditAllowed, "")
	return result, nil
}

// Get returns one tissue sample if it is reachable from the caller's scope.
func (s *TissueSampleService) Get(ctx context.Context, opts domain.ScopeOptions, id int64) (*domain.TissueSample, error) {
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, err
	}
	if scope.None() {
		return nil, domain.ErrNotFound("tissue sample %d not found", id)
	}
	return s.samples.GetByID(ctx, scope, id)
}

// ListByParticipant returns the samples of one participant that are reachable
// from the caller's scope. The participant itself must also be visible.
func (s *TissueSampleService) ListByParticipant(ctx context.Context, opts domain.ScopeOptions, participantID int64, page domain.PageRequest) ([]domain.TissueSample, int64, error) {
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	if scope.None() {
		return nil, 0, domain.ErrNotFound("participant %d not found", participantID)
	}
	if _, err := s.participants.GetByID(ctx, scope, participantID); err != nil {
		return nil, 0, err
	}
	return s.samples.ListByParticipant(ctx, scope, participantID, page)
}

// Update patches a visible tissue sample and stamps the caller as editor.
func (s *TissueSampleService) Update(ctx context.Context, id int64, req *domain.UpdateTissueSampleRequest) (*domain.TissueSample, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if d := Authorize(p, ActionUpdate, domain.KindTissueSample); !d.Allowed {
		s.audit.Record(ctx, "UPDATE_TISSUE_SAMPLE", domain.KindTissueSample, &id, AuditDenied, d.Reason)
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
		return nil, domain.ErrNotFound("tissue sample %d not found", id)
	}
	sample, err := s.samples.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Type != nil {
		sample.Type = domain.TissueSampleType(*req.Type)
	}
	if req.Processing != nil {
		proc := domain.TissueProcessing(*req.Processing)
		sample.Processing = &proc
	}
	if req.ExtractionDate != nil {
		sample.ExtractionDate = req.ExtractionDate
	}
	if req.Notes != nil {
		sample.Notes = req.Notes
	}
	sample.UpdatedBy = p.ID
	result, err := s.samples.Update(ctx, sample)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "UPDATE_TISSUE_SAMPLE", domain.KindTissueSample, &id, AuditAllowed, "")
	return result, nil
}

// Delete removes a tissue sample. Refuses samples that still have datasets.
func (s *TissueSampleService) Delete(ctx context.Context, id int64) error {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return err
	}
	if d := Authorize(p, ActionDelete, domain.KindTissueSample); !d.Allowed {
		s.audit.Record(ctx, "DELETE_TISSUE_SAMPLE", domain.KindTissueSample, &id, AuditDenied, d.Reason)
		return d.Err()
	}
	scope, err := s.resolver.Resolve(ctx, domain.ScopeOptions{})
	if err != nil {
		return err
	}
	if scope.None() {
		return domain.ErrNotFound("tissue sample %d not found", id)
	}
	if _, err := s.samples.GetByID(ctx, scope, id); err != nil {
		return err
	}
	n, err := s.samples.CountDatasets(ctx, id)
	if err != nil {
		return err
	}
	if d := AuthorizeDelete(p, domain.KindTissueSample, n); !d.Allowed {
		s.audit.Record(ctx, "DELETE_TISSUE_SAMPLE", domain.KindTissueSample, &id, AuditDenied, d.Reason)
		return d.Err()
	}
	if err := s.samples.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "DELETE_TISSUE_SAMPLE", domain.KindTissueSample, &id, AuditAllowed, "")
	return nil
}
