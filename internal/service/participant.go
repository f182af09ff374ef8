package service

import (
	"context"

	"sampletrack/internal/domain"
)

// ParticipantService provides scope-checked operations over participants.
type ParticipantService struct {
	resolver     *VisibilityResolver
	participants domain.ParticipantRepository
	families     domain.FamilyRepository
	audit        *AuditService
}

// NewParticipantService creates a new ParticipantService.
func NewParticipantService(resolver *VisibilityResolver, participants domain.ParticipantRepository, families domain.FamilyRepository, audit *AuditService) *ParticipantService {
	return &ParticipantService{resolver: resolver, participants: participants, families: families, audit: audit}
}

// Create enrols a participant under an existing family. Requires admin
// privileges.
func (s *ParticipantService) Create(ctx context.Context, req *domain.CreateParticipantRequest) (*domain.Participant, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if d := Authorize(p, ActionCreate, domain.KindParticipant); !d.Allowed {
		s.audit.Record(ctx, "CREATE_PARTICIPANT", domain.KindParticipant, nil, AuditDenied, d.Reason)
		return nil, d.Err()
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.families.GetByID(ctx, domain.FullScope(), req.FamilyID); err != nil {
		return nil, err
	}
	participant := &domain.Participant{
		FamilyID:  req.FamilyID,
		Codename:  req.Codename,
		Sex:       domain.Sex(req.Sex),
		Type:      domain.ParticipantType(req.Type),
		Affected:  req.Affected,
		Solved:    req.Solved,
		Notes:     req.Notes,
		CreatedBy: p.ID,
		UpdatedBy: p.ID,
	}
	result, err := s.participants.Create(ctx, participant)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "CREATE_PARTICIPANT", domain.KindParticipant, &result.ID, AuditAllowed, "")
	return result, nil
}

// Get returns one participant if it is reachable from the caller's scope.
func (s *ParticipantService) Get(ctx context.Context, opts domain.ScopeOptions, id int64) (*domain.Participant, error) {
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, err
	}
	if scope.None() {
		return nil, domain.ErrNotFound("participant %d not found", id)
	}
	return s.participants.GetByID(ctx, scope, id)
}

// List returns the participants reachable from the caller's scope.
func (s *ParticipantService) List(ctx context.Context, opts domain.ScopeOptions, filter domain.ParticipantFilter) ([]domain.Participant, int64, error) {
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	if scope.None() {
		return []domain.Participant{}, 0, nil
	}
	return s.participants.List(ctx, scope, filter)
}

// Update patches a visible participant and stamps the caller as editor.
func (s *ParticipantService) Update(ctx context.Context, id int64, req *domain.UpdateParticipantRequest) (*domain.Participant, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if d := Authorize(p, ActionUpdate, domain.KindParticipant); !d.Allowed {
		s.audit.Record(ctx, "UPDATE_PARTICIPANT", domain.KindParticipant, &id, AuditDenied, d.Reason)
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
		return nil, domain.ErrNotFound("participant %d not found", id)
	}
	participant, err := s.participants.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Codename != nil {
		participant.Codename = *req.Codename
	}
	if req.Sex != nil {
		participant.Sex = domain.Sex(*req.Sex)
	}
	if req.Type != nil {
		participant.Type = domain.ParticipantType(*req.Type)
	}
	if req.Affected != nil {
		participant.Affected = *req.Affected
	}
	if req.Solved != nil {
		participant.Solved = req.Solved
	}
	if req.Notes != nil {
		participant.Notes = req.Notes
	}
	participant.UpdatedBy = p.ID
	result, err := s.participants.Update(ctx, participant)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "UPDATE_PARTICIPANT", domain.KindParticipant, &id, AuditAllowed, "")
	return result, nil
}

// Delete removes a participant. Requires admin privileges and refuses
// participants that still have tissue samples.
func (s *ParticipantService) Delete(ctx context.Context, id int64) error {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return err
	}
	if d := Authorize(p, ActionDelete, domain.KindParticipant); !d.Allowed {
		s.audit.Record(ctx, "DELETE_PARTICIPANT", domain.KindParticipant, &id, AuditDenied, d.Reason)
		return d.Err()
	}
	if _, err := s.participants.GetByID(ctx, domain.FullScope(), id); err != nil {
		return err
	}
	n, err := s.participants.CountTissueSamples(ctx, id)
	if err != nil {
		return err
	}
	if d := AuthorizeDelete(p, domain.KindParticipant, n); !d.Allowed {
		s.audit.Record(ctx, "DELETE_PARTICIPANT", domain.KindParticipant, &id, AuditDenied, d.Reason)
		return d.Err()
	}
	if err := s.participants.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "DELETE_PARTICIPANT", domain.KindParticipant, &id, AuditAllowed, "")
	return nil
}
