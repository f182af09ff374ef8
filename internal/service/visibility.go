// Package service implements the access-scoped core: visibility resolution,
// mutation authorization, pipeline compatibility validation, and the
// per-resource query façades that compose them.
package service

import (
	"context"

	"sampletrack/internal/domain"
)

// VisibilityResolver computes the visibility scope of the current request.
// The scope is resolved once and reused for every query the request issues,
// so a list and the point-reads of its rows can never disagree.
type VisibilityResolver struct {
	users domain.UserRepository
}

// NewVisibilityResolver creates a resolver backed by the user repository.
func NewVisibilityResolver(users domain.UserRepository) *VisibilityResolver {
	return &VisibilityResolver{users: users}
}

// Resolve returns the scope for the principal carried by ctx.
//
//   - Admins without an override get the full scope (admin default view).
//   - An admin naming opts.AsUserID gets the scope computed as that user,
//     with memberships read fresh from the repository.
//   - Non-admins get the group scope of their own membership snapshot; a
//     principal in zero groups gets the none scope, which repositories
//     short-circuit without issuing a query.
//
// Non-admins may only name themselves in opts.AsUserID.
func (r *VisibilityResolver) Resolve(ctx context.Context, opts domain.ScopeOptions) (domain.Scope, error) {
	principal, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return domain.Scope{}, domain.ErrAccessDenied("no principal in request context")
	}

	if principal.IsAdmin {
		if opts.AsUserID == nil {
			return domain.FullScope(), nil
		}
		// Confirm the target user exists: a bad id should surface as
		// NotFound, not as an empty scope.
		if _, err := r.users.GetByID(ctx, *opts.AsUserID); err != nil {
			return domain.Scope{}, err
		}
		groupIDs, err := r.users.GroupIDs(ctx, *opts.AsUserID)
		if err != nil {
			return domain.Scope{}, err
		}
		return domain.GroupScope(groupIDs), nil
	}

	if opts.AsUserID != nil && *opts.AsUserID != principal.ID {
		return domain.Scope{}, domain.ErrAccessDenied("only admins may resolve another user's scope")
	}
	return domain.GroupScope(principal.GroupIDs), nil
}
