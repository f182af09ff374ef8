package service

import (
	"context"

	"sampletrack/internal/domain"
)

// FamilyService provides scope-checked operations over families.
type FamilyService struct {
	resolver *VisibilityResolver
	families domain.FamilyRepository
	audit    *AuditService
}

// NewFamilyService creates a new FamilyService.
func NewFamilyService(resolver *VisibilityResolver, families domain.FamilyRepository, audit *AuditService) *FamilyService {
	return &FamilyService{resolver: resolver, families: families, audit: audit}
}

// Create registers a new family. Requires admin privileges.
func (s *FamilyService) Create(ctx context.Context, req *domain.CreateFamilyRequest) (*domain.Family, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if d := Authorize(p, ActionCreate, domain.KindFamily); !d.Allowed {
		s.audit.Record(ctx, "CREATE_FAMILY", domain.KindFamily, nil, AuditDenied, d.Reason)
		return nil, d.Err()
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	f := &domain.Family{
		Codename:  req.Codename,
		CreatedBy: p.ID,
		UpdatedBy: p.ID,
	}
	result, err := s.families.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "CREATE_FAMILY", domain.KindFamily, &result.ID, AuditAllowed, "")
	return result, nil
}

// Get returns one family if it is reachable from the caller's scope. An
// invisible family is indistinguishable from an absent one.
func (s *FamilyService) Get(ctx context.Context, opts domain.ScopeOptions, id int64) (*domain.Family, error) {
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, err
	}
	if scope.None() {
		return nil, domain.ErrNotFound("family %d not found", id)
	}
	return s.families.GetByID(ctx, scope, id)
}

// List returns the families reachable from the caller's scope.
func (s *FamilyService) List(ctx context.Context, opts domain.ScopeOptions, filter domain.FamilyFilter) ([]domain.Family, int64, error) {
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	if scope.None() {
		return []domain.Family{}, 0, nil
	}
	return s.families.List(ctx, scope, filter)
}

// Update patches a visible family and stamps the caller as editor.
func (s *FamilyService) Update(ctx context.Context, id int64, req *domain.UpdateFamilyRequest) (*domain.Family, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if d := Authorize(p, ActionUpdate, domain.KindFamily); !d.Allowed {
		s.audit.Record(ctx, "UPDATE_FAMILY", domain.KindFamily, &id, AuditDenied, d.Reason)
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
		return nil, domain.ErrNotFound("family %d not found", id)
	}
	f, err := s.families.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Codename != nil {
		f.Codename = *req.Codename
	}
	f.UpdatedBy = p.ID
	result, err := s.families.Update(ctx, f)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "UPDATE_FAMILY", domain.KindFamily, &id, AuditAllowed, "")
	return result, nil
}

// Delete removes a family. Requires admin privileges and refuses families
// that still have participants.
func (s *FamilyService) Delete(ctx context.Context, id int64) error {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return err
	}
	if d := Authorize(p, ActionDelete, domain.KindFamily); !d.Allowed {
		s.audit.Record(ctx, "DELETE_FAMILY", domain.KindFamily, &id, AuditDenied, d.Reason)
		return d.Err()
	}
	if _, err := s.families.GetByID(ctx, domain.FullScope(), id); err != nil {
		return err
	}
	n, err := s.families.CountParticipants(ctx, id)
	if err != nil {
		return err
	}
	if d := AuthorizeDelete(p, domain.KindFamily, n); !d.Allowed {
		s.audit.Record(ctx, "DELETE_FAMILY", domain.KindFamily, &id, AuditDenied, d.Reason)
		return d.Err()
	}
	if err := s.families.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "DELETE_FAMILY", domain.KindFamily, &id, AuditAllowed, "")
	return nil
}
