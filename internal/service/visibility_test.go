package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sampletrack/internal/domain"
)

func resolverWithGroups(groups map[int64][]int64) *VisibilityResolver {
	return NewVisibilityResolver(&mockUserRepo{
		getByIDFn: func(_ context.Context, id int64) (*domain.User, error) {
			if _, ok := groups[id]; !ok {
				return nil, domain.ErrNotFound("user %d not found", id)
			}
			return &domain.User{ID: id}, nil
		},
		groupIDsFn: func(_ context.Context, userID int64) ([]int64, error) {
			return groups[userID], nil
		},
	})
}

func TestVisibilityResolver_NoPrincipal(t *testing.T) {
	r := resolverWithGroups(nil)
	_, err := r.Resolve(context.Background(), domain.ScopeOptions{})
	var accessDenied *domain.AccessDeniedError
	assert.ErrorAs(t, err, &accessDenied)
}

func TestVisibilityResolver_AdminGetsFullScope(t *testing.T) {
	r := resolverWithGroups(nil)
	ctx := domain.WithPrincipal(context.Background(), domain.ContextPrincipal{ID: 1, IsAdmin: true})

	scope, err := r.Resolve(ctx, domain.ScopeOptions{})
	require.NoError(t, err)
	assert.True(t, scope.Full())
}

func TestVisibilityResolver_AdminAsUser(t *testing.T) {
	r := resolverWithGroups(map[int64][]int64{7: {3, 4}})
	ctx := domain.WithPrincipal(context.Background(), domain.ContextPrincipal{ID: 1, IsAdmin: true})

	scope, err := r.Resolve(ctx, domain.ScopeOptions{AsUserID: int64Ptr(7)})
	require.NoError(t, err)
	assert.False(t, scope.Full())
	assert.Equal(t, []int64{3, 4}, scope.GroupIDs())
}

func TestVisibilityResolver_AdminAsUnknownUser(t *testing.T) {
	r := resolverWithGroups(map[int64][]int64{})
	ctx := domain.WithPrincipal(context.Background(), domain.ContextPrincipal{ID: 1, IsAdmin: true})

	_, err := r.Resolve(ctx, domain.ScopeOptions{AsUserID: int64Ptr(42)})
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestVisibilityResolver_NonAdminOwnGroups(t *testing.T) {
	r := resolverWithGroups(nil)
	ctx := domain.WithPrincipal(context.Background(), domain.ContextPrincipal{ID: 5, GroupIDs: []int64{2}})

	scope, err := r.Resolve(ctx, domain.ScopeOptions{})
	require.NoError(t, err)
	assert.False(t, scope.Full())
	assert.Equal(t, []int64{2}, scope.GroupIDs())
}

func TestVisibilityResolver_NonAdminZeroGroups(t *testing.T) {
	r := resolverWithGroups(nil)
	ctx := domain.WithPrincipal(context.Background(), domain.ContextPrincipal{ID: 5})

	scope, err := r.Resolve(ctx, domain.ScopeOptions{})
	require.NoError(t, err)
	assert.True(t, scope.None())
}

func TestVisibilityResolver_NonAdminForeignAsUser(t *testing.T) {
	r := resolverWithGroups(nil)
	ctx := domain.WithPrincipal(context.Background(), domain.ContextPrincipal{ID: 5, GroupIDs: []int64{2}})

	_, err := r.Resolve(ctx, domain.ScopeOptions{AsUserID: int64Ptr(6)})
	var accessDenied *domain.AccessDeniedError
	assert.ErrorAs(t, err, &accessDenied)

	// Naming yourself is a no-op, not an error.
	scope, err := r.Resolve(ctx, domain.ScopeOptions{AsUserID: int64Ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, scope.GroupIDs())
}
