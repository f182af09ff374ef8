package service

import (
	"context"
	"slices"

	"sampletrack/internal/domain"
)

// DatasetService provides scope-checked operations over datasets and their
// group links.
type DatasetService struct {
	resolver *VisibilityResolver
	datasets domain.DatasetRepository
	samples  domain.TissueSampleRepository
	audit    *AuditService
}

// NewDatasetService creates a new DatasetService.
func NewDatasetService(resolver *VisibilityResolver, datasets domain.DatasetRepository, samples domain.TissueSampleRepository, audit *AuditService) *DatasetService {
	return &DatasetService{resolver: resolver, datasets: datasets, samples: samples, audit: audit}
}

// Create registers a dataset under a tissue sample the caller can see and
// links it to the requested groups in the same transaction. Non-admins may
// only link groups they belong to.
func (s *DatasetService) Create(ctx context.Context, req *domain.CreateDatasetRequest) (*domain.Dataset, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if d := Authorize(p, ActionCreate, domain.KindDataset); !d.Allowed {
		s.audit.Record(ctx, "CREATE_DATASET", domain.KindDataset, nil, AuditDenied, d.Reason)
		return nil, d.Err()
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !p.IsAdmin {
		for _, gid := range req.GroupIDs {
			if !slices.Contains(p.GroupIDs, gid) {
				s.audit.Record(ctx, "CREATE_DATASET", domain.KindDataset, nil, AuditDenied, "group not held by caller")
				return nil, domain.ErrAccessDenied("cannot share dataset with group %d", gid)
			}
		}
	}
	scope, err := s.resolver.Resolve(ctx, domain.ScopeOptions{})
	if err != nil {
		return nil, err
	}
	if scope.None() {
		return nil, domain.ErrNotFound("tissue sample %d not found", req.TissueSampleID)
	}
	if _, err := s.samples.GetByID(ctx, scope, req.TissueSampleID); err != nil {
		return nil, err
	}
	ds := &domain.Dataset{
		TissueSampleID:   req.TissueSampleID,
		Type:             domain.DatasetType(req.Type),
		Condition:        domain.DatasetCondition(req.Condition),
		InputPath:        req.InputPath,
		SequencingCentre: req.SequencingCentre,
		Notes:            req.Notes,
		GroupIDs:         req.GroupIDs,
		EnteredBy:        p.ID,
		UpdatedBy:        p.ID,
	}
	result, err := s.datasets.Create(ctx, ds)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "CREATE_DATASET", domain.KindDataset, &result.ID, AuditAllowed, "")
	return result, nil
}

// Get returns one dataset if it is reachable from the caller's scope.
func (s *DatasetService) Get(ctx context.Context, opts domain.ScopeOptions, id int64) (*domain.Dataset, error) {
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, err
	}
	if scope.None() {
		return nil, domain.ErrNotFound("dataset %d not found", id)
	}
	return s.datasets.GetByID(ctx, scope, id)
}

// List returns the datasets reachable from the caller's scope.
func (s *DatasetService) List(ctx context.Context, opts domain.ScopeOptions, filter domain.DatasetFilter) ([]domain.Dataset, int64, error) {
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	if scope.None() {
		return []domain.Dataset{}, 0, nil
	}
	return s.datasets.List(ctx, scope, filter)
}

// ListUngrouped returns datasets with no group links. Such rows are invisible
// to every non-admin, so only admins can audit them. Requires admin
// privileges.
func (s *DatasetService) ListUngrouped(ctx context.Context, page domain.PageRequest) ([]domain.Dataset, int64, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	return s.datasets.ListUngrouped(ctx, page)
}

// Update patches a visible dataset and stamps the caller as editor. Group
// links are changed through SetGroups, not here.
func (s *DatasetService) Update(ctx context.Context, id int64, req *domain.UpdateDatasetRequest) (*domain.Dataset, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if d := Authorize(p, ActionUpdate, domain.KindDataset); !d.Allowed {
		s.audit.Record(ctx, "UPDATE_DATASET", domain.KindDataset, &id, AuditDenied, d.Reason)
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
		return nil, domain.ErrNotFound("dataset %d not found", id)
	}
	ds, err := s.datasets.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Type != nil {
		ds.Type = domain.DatasetType(*req.Type)
	}
	if req.Condition != nil {
		ds.Condition = domain.DatasetCondition(*req.Condition)
	}
	if req.InputPath != nil {
		ds.InputPath = *req.InputPath
	}
	if req.SequencingCentre != nil {
		ds.SequencingCentre = *req.SequencingCentre
	}
	if req.Notes != nil {
		ds.Notes = req.Notes
	}
	ds.UpdatedBy = p.ID
	result, err := s.datasets.Update(ctx, ds)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "UPDATE_DATASET", domain.KindDataset, &id, AuditAllowed, "")
	return result, nil
}

// SetGroups replaces a dataset's group links. Requires admin privileges
// because regrouping changes who can see the whole chain above the dataset.
func (s *DatasetService) SetGroups(ctx context.Context, id int64, groupIDs []int64) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if len(groupIDs) == 0 {
		return domain.ErrValidation("a dataset must be shared with at least one group")
	}
	if _, err := s.datasets.GetByID(ctx, domain.FullScope(), id); err != nil {
		return err
	}
	if err := s.datasets.SetGroups(ctx, id, groupIDs); err != nil {
		return err
	}
	s.audit.Record(ctx, "SET_DATASET_GROUPS", domain.KindDataset, &id, AuditAllowed, "")
	return nil
}

// Delete removes a dataset. Requires admin privileges, and refuses datasets
// that are inputs to any analysis.
func (s *DatasetService) Delete(ctx context.Context, id int64) error {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return err
	}
	if d := Authorize(p, ActionDelete, domain.KindDataset); !d.Allowed {
		s.audit.Record(ctx, "DELETE_DATASET", domain.KindDataset, &id, AuditDenied, d.Reason)
		return d.Err()
	}
	scope, err := s.resolver.Resolve(ctx, domain.ScopeOptions{})
	if err != nil {
		return err
	}
	if scope.None() {
		return domain.ErrNotFound("dataset %d not found", id)
	}
	if _, err := s.datasets.GetByID(ctx, scope, id); err != nil {
		return err
	}
	n, err := s.datasets.CountAnalyses(ctx, id)
	if err != nil {
		return err
	}
	if d := AuthorizeDelete(p, domain.KindDataset, n); !d.Allowed {
		s.audit.Record(ctx, "DELETE_DATASET", domain.KindDataset, &id, AuditDenied, d.Reason)
		return d.Err()
	}
	if err := s.datasets.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "DELETE_DATASET", domain.KindDataset, &id, AuditAllowed, "")
	return nil
}
