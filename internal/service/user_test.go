package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sampletrack/internal/domain"
)

func TestUserService_AdminOnly(t *testing.T) {
	e := newTestEnv(t)

	var accessDenied *domain.AccessDeniedError
	_, err := e.users.Create(e.aliceCtx(), &domain.CreateUserRequest{Username: "eve", Email: "eve@lab.test"})
	assert.ErrorAs(t, err, &accessDenied)

	_, _, err = e.users.List(e.aliceCtx(), domain.PageRequest{})
	assert.ErrorAs(t, err, &accessDenied)

	err = e.users.SetAdmin(e.aliceCtx(), e.bobID, true)
	assert.ErrorAs(t, err, &accessDenied)
}

func TestUserService_Lifecycle(t *testing.T) {
	e := newTestEnv(t)

	u, err := e.users.Create(e.adminCtx(), &domain.CreateUserRequest{Username: "eve", Email: "eve@lab.test"})
	require.NoError(t, err)
	assert.False(t, u.IsAdmin)

	require.NoError(t, e.users.SetAdmin(e.adminCtx(), u.ID, true))
	got, err := e.users.Get(e.adminCtx(), u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	require.NoError(t, e.users.Delete(e.adminCtx(), u.ID))
	_, err = e.users.Get(e.adminCtx(), u.ID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUserService_CannotDeleteSelf(t *testing.T) {
	e := newTestEnv(t)

	err := e.users.Delete(e.adminCtx(), e.adminID)
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestUserService_Self(t *testing.T) {
	e := newTestEnv(t)

	u, err := e.users.Self(e.aliceCtx())
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestGroupService_NonAdminSeesOwnGroupsOnly(t *testing.T) {
	e := newTestEnv(t)

	groups, total, err := e.groups.List(e.aliceCtx(), domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, groups, 1)
	assert.Equal(t, e.g1, groups[0].ID)

	_, err = e.groups.Get(e.aliceCtx(), e.g2)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, total, err = e.groups.List(e.adminCtx(), domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestGroupService_MembershipChangesScope(t *testing.T) {
	e := newTestEnv(t)

	require.NoError(t, e.groups.AddMember(e.adminCtx(), e.g2, e.aliceID))

	// Membership snapshots live on the principal; a fresh context carries the
	// new groups.
	ctx := domain.WithPrincipal(t.Context(), domain.ContextPrincipal{
		ID: e.aliceID, Username: "alice", GroupIDs: []int64{e.g1, e.g2},
	})
	_, total, err := e.datasets.List(ctx, domain.ScopeOptions{}, domain.DatasetFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	require.NoError(t, e.groups.RemoveMember(e.adminCtx(), e.g2, e.aliceID))

	// The admin as_user override reads memberships fresh from storage.
	_, total, err = e.datasets.List(e.adminCtx(), domain.ScopeOptions{AsUserID: int64Ptr(e.aliceID)}, domain.DatasetFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestGroupService_DeleteWithDatasetsConflicts(t *testing.T) {
	e := newTestEnv(t)

	err := e.groups.Delete(e.adminCtx(), e.g1)
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)

	empty, err := e.groups.Create(e.adminCtx(), &domain.CreateGroupRequest{Code: "g3", Name: "Group Three"})
	require.NoError(t, err)
	assert.NoError(t, e.groups.Delete(e.adminCtx(), empty.ID))
}

func TestAuditService_RecordsMutations(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.families.Create(e.aliceCtx(), &domain.CreateFamilyRequest{Codename: "F0099"})
	require.Error(t, err)

	entries, _, err := e.audit.List(e.adminCtx(), domain.AuditFilter{
		Username: strPtr("alice"),
		Status:   strPtr(AuditDenied),
	})
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "CREATE_FAMILY", entries[0].Action)

	// The audit log itself is admin-only.
	_, _, err = e.audit.List(e.aliceCtx(), domain.AuditFilter{})
	var accessDenied *domain.AccessDeniedError
	assert.ErrorAs(t, err, &accessDenied)
}
