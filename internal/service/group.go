package service

import (
	"context"
	"slices"

	"sampletrack/internal/domain"
)

// GroupService provides group and membership administration. Non-admins can
// only read the groups they belong to.
type GroupService struct {
	groups domain.GroupRepository
	audit  *AuditService
}

// NewGroupService creates a new GroupService.
func NewGroupService(groups domain.GroupRepository, audit *AuditService) *GroupService {
	return &GroupService{groups: groups, audit: audit}
}

// Create registers a new permission group. Requires admin privileges.
func (s *GroupService) Create(ctx context.Context, req *domain.CreateGroupRequest) (*domain.Group, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	g := &domain.Group{Code: req.Code, Name: req.Name}
	result, err := s.groups.Create(ctx, g)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "CREATE_GROUP", domain.KindGroup, &result.ID, AuditAllowed, "")
	return result, nil
}

// Get returns one group. Non-admins can only fetch groups they belong to; a
// foreign group is reported as absent.
func (s *GroupService) Get(ctx context.Context, id int64) (*domain.Group, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin && !slices.Contains(p.GroupIDs, id) {
		return nil, domain.ErrNotFound("group %d not found", id)
	}
	return s.groups.GetByID(ctx, id)
}

// List returns a page of groups for admins, or the caller's own groups for
// everyone else.
func (s *GroupService) List(ctx context.Context, page domain.PageRequest) ([]domain.Group, int64, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, 0, err
	}
	if p.IsAdmin {
		return s.groups.List(ctx, page)
	}
	out := make([]domain.Group, 0, len(p.GroupIDs))
	for _, id := range p.GroupIDs {
		g, err := s.groups.GetByID(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

// AddMember joins a user to a group. Requires admin privileges.
func (s *GroupService) AddMember(ctx context.Context, groupID, userID int64) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := s.groups.AddMember(ctx, groupID, userID); err != nil {
		return err
	}
	s.audit.Record(ctx, "ADD_GROUP_MEMBER", domain.KindGroup, &groupID, AuditAllowed, "")
	return nil
}

// RemoveMember detaches a user from a group. Requires admin privileges.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID int64) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := s.groups.RemoveMember(ctx, groupID, userID); err != nil {
		return err
	}
	s.audit.Record(ctx, "REMOVE_GROUP_MEMBER", domain.KindGroup, &groupID, AuditAllowed, "")
	return nil
}

// MemberIDs returns the user ids of a group's members. Requires admin
// privileges.
func (s *GroupService) MemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.groups.MemberIDs(ctx, groupID)
}

// Delete removes a group. Requires admin privileges and refuses groups that
// still hold datasets.
func (s *GroupService) Delete(ctx context.Context, id int64) error {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return err
	}
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if _, err := s.groups.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.groups.CountDatasets(ctx, id)
	if err != nil {
		return err
	}
	if d := AuthorizeDelete(p, domain.KindGroup, n); !d.Allowed {
		s.audit.Record(ctx, "DELETE_GROUP", domain.KindGroup, &id, AuditDenied, d.Reason)
		return d.Err()
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "DELETE_GROUP", domain.KindGroup, &id, AuditAllowed, "")
	return nil
}
