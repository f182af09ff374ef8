package service

import (
	"context"

	"sampletrack/internal/domain"
)

// UserService provides account administration. All operations require admin
// privileges except Self.
type UserService struct {
	users domain.UserRepository
	audit *AuditService
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, audit *AuditService) *UserService {
	return &UserService{users: users, audit: audit}
}

// Create provisions a new account.
func (s *UserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	u := &domain.User{
		Username: req.Username,
		Email:    req.Email,
		IsAdmin:  req.IsAdmin,
	}
	result, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "CREATE_USER", domain.KindUser, &result.ID, AuditAllowed, "")
	return result, nil
}

// Self returns the caller's own account with group memberships resolved.
func (s *UserService) Self(ctx context.Context) (*domain.User, error) {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, p.ID)
}

// Get returns one account by id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// List returns a page of accounts.
func (s *UserService) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	return s.users.List(ctx, page)
}

// SetAdmin grants or revokes admin privileges on an account.
func (s *UserService) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := s.users.SetAdmin(ctx, id, isAdmin); err != nil {
		return err
	}
	s.audit.Record(ctx, "SET_USER_ADMIN", domain.KindUser, &id, AuditAllowed, "")
	return nil
}

// Delete removes an account. The caller cannot delete itself.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	p, err := currentPrincipal(ctx)
	if err != nil {
		return err
	}
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if p.ID == id {
		return domain.ErrValidation("cannot delete own account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "DELETE_USER", domain.KindUser, &id, AuditAllowed, "")
	return nil
}
