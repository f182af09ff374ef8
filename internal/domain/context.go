package domain

import "context"

type principalKey struct{}

// ContextPrincipal carries the authenticated identity through request context.
// GroupIDs is the membership snapshot taken when the request was
// authenticated; scope resolution for the caller's own view never re-reads
// memberships mid-request.
type ContextPrincipal struct {
	ID       int64
	Username string
	IsAdmin  bool
	GroupIDs []int64
}

// WithPrincipal stores a ContextPrincipal in the context.
func WithPrincipal(ctx context.Context, p ContextPrincipal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext extracts the ContextPrincipal from the context.
func PrincipalFromContext(ctx context.Context) (ContextPrincipal, bool) {
	p, ok := ctx.Value(principalKey{}).(ContextPrincipal)
	return p, ok
}
