package service

import (
	"context"

	"sampletrack/internal/domain"
)

// currentPrincipal extracts the authenticated caller from context.
// Returns AccessDeniedError if no principal is present.
func currentPrincipal(ctx context.Context) (domain.ContextPrincipal, error) {
	p, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return domain.ContextPrincipal{}, domain.ErrAccessDenied("authentication required")
	}
	return p, nil
}

// requireAdmin checks that the caller in context has admin privileges.
// Returns AccessDeniedError if not authenticated or not admin.
func requireAdmin(ctx context.Context) error {
	p, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return domain.ErrAccessDenied("authentication required")
	}
	if !p.IsAdmin {
		return domain.ErrAccessDenied("admin privileges required")
	}
	return nil
}

// callerName returns the username of the caller, or empty if unauthenticated.
func callerName(ctx context.Context) string {
	p, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return ""
	}
	return p.Username
}
