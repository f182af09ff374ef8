package service

import (
	"context"

	"sampletrack/internal/domain"
)

// PipelineService provides read access to registered pipelines and admin
// registration. Supported metadataset types come from the classification
// table, not the metastore.
type PipelineService struct {
	pipelines      domain.PipelineRepository
	classification *domain.Classification
	audit          *AuditService
}

// NewPipelineService creates a new PipelineService.
func NewPipelineService(pipelines domain.PipelineRepository, classification *domain.Classification, audit *AuditService) *PipelineService {
	return &PipelineService{pipelines: pipelines, classification: classification, audit: audit}
}

// Create registers a pipeline. Requires admin privileges, and the pipeline id
// must already be classified so that compatibility checks can answer for it.
func (s *PipelineService) Create(ctx context.Context, p *domain.Pipeline) (*domain.Pipeline, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, domain.ErrValidation("pipeline name is required")
	}
	result, err := s.pipelines.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "CREATE_PIPELINE", domain.KindPipeline, &result.ID, AuditAllowed, "")
	return result, nil
}

// Get returns one pipeline by id.
func (s *PipelineService) Get(ctx context.Context, id int64) (*domain.Pipeline, error) {
	if _, err := currentPrincipal(ctx); err != nil {
		return nil, err
	}
	return s.pipelines.GetByID(ctx, id)
}

// List returns a page of pipelines.
func (s *PipelineService) List(ctx context.Context, page domain.PageRequest) ([]domain.Pipeline, int64, error) {
	if _, err := currentPrincipal(ctx); err != nil {
		return nil, 0, err
	}
	return s.pipelines.List(ctx, page)
}

// SupportedTypes returns the metadataset types a pipeline can run over.
func (s *PipelineService) SupportedTypes(ctx context.Context, id int64) ([]domain.MetaDatasetType, error) {
	if _, err := currentPrincipal(ctx); err != nil {
		return nil, err
	}
	if !s.classification.PipelineKnown(id) {
		return nil, domain.ErrNotFound("pipeline %d not found", id)
	}
	return s.classification.SupportedTypes(id), nil
}
