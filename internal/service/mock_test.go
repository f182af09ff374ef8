package service

import (
	"context"

	"sampletrack/internal/domain"
)

// === User Repository Mock ===

type mockUserRepo struct {
	createFn        func(ctx context.Context, u *domain.User) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	listFn          func(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error)
	deleteFn        func(ctx context.Context, id int64) error
	setAdminFn      func(ctx context.Context, id int64, isAdmin bool) error
	groupIDsFn      func(ctx context.Context, userID int64) ([]int64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	panic("unexpected call to mockUserRepo.Create")
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	panic("unexpected call to mockUserRepo.GetByID")
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	panic("unexpected call to mockUserRepo.GetByUsername")
}

func (m *mockUserRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	panic("unexpected call to mockUserRepo.List")
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	panic("unexpected call to mockUserRepo.Delete")
}

func (m *mockUserRepo) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	if m.setAdminFn != nil {
		return m.setAdminFn(ctx, id, isAdmin)
	}
	panic("unexpected call to mockUserRepo.SetAdmin")
}

func (m *mockUserRepo) GroupIDs(ctx context.Context, userID int64) ([]int64, error) {
	if m.groupIDsFn != nil {
		return m.groupIDsFn(ctx, userID)
	}
	panic("unexpected call to mockUserRepo.GroupIDs")
}

// === Dataset Repository Mock ===

// mockDatasetRepo embeds the interface so compatibility tests only implement
// the resolution method they exercise.
type mockDatasetRepo struct {
	domain.DatasetRepository

	typesByIDsFn func(ctx context.Context, scope domain.Scope, ids []int64) (map[int64]domain.DatasetType, error)
}

func (m *mockDatasetRepo) TypesByIDs(ctx context.Context, scope domain.Scope, ids []int64) (map[int64]domain.DatasetType, error) {
	if m.typesByIDsFn != nil {
		return m.typesByIDsFn(ctx, scope, ids)
	}
	panic("unexpected call to mockDatasetRepo.TypesByIDs")
}

// === Pipeline Repository Mock ===

type mockPipelineRepo struct {
	createFn  func(ctx context.Context, p *domain.Pipeline) (*domain.Pipeline, error)
	getByIDFn func(ctx context.Context, id int64) (*domain.Pipeline, error)
	listFn    func(ctx context.Context, page domain.PageRequest) ([]domain.Pipeline, int64, error)
}

func (m *mockPipelineRepo) Create(ctx context.Context, p *domain.Pipeline) (*domain.Pipeline, error) {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	panic("unexpected call to mockPipelineRepo.Create")
}

func (m *mockPipelineRepo) GetByID(ctx context.Context, id int64) (*domain.Pipeline, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	panic("unexpected call to mockPipelineRepo.GetByID")
}

func (m *mockPipelineRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Pipeline, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	panic("unexpected call to mockPipelineRepo.List")
}
