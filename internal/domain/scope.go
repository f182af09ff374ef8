package domain

// EntityKind names a record kind in the sample hierarchy for scope
// compilation and authorization decisions.
type EntityKind string

const (
	KindUser         EntityKind = "user"
	KindGroup        EntityKind = "group"
	KindFamily       EntityKind = "family"
	KindParticipant  EntityKind = "participant"
	KindTissueSample EntityKind = "tissue_sample"
	KindDataset      EntityKind = "dataset"
	KindAnalysis     EntityKind = "analysis"
	KindPipeline     EntityKind = "pipeline"
)

// Scope is the visibility predicate computed once per request and applied to
// every query the request issues. It is deliberately opaque about how a
// backend enforces it: repositories compile it into an existential filter for
// the entity kind being queried, so the same scope qualifies a family list,
// a dataset point-read, and an analysis update identically.
//
// Three shapes exist:
//   - full:  admin default view, no filtering
//   - group: records reachable from a dataset sharing a group in GroupIDs
//   - none:  a principal with no group memberships; matches nothing
type Scope struct {
	full     bool
	groupIDs []int64
}

// FullScope returns the unrestricted predicate (admin default view).
func FullScope() Scope {
	return Scope{full: true}
}

// GroupScope returns the predicate matching records reachable from a dataset
// shared with any of the given groups. An empty set yields the none scope.
func GroupScope(groupIDs []int64) Scope {
	return Scope{groupIDs: append([]int64(nil), groupIDs...)}
}

// NoneScope returns the always-false predicate.
func NoneScope() Scope {
	return Scope{}
}

// Full reports whether the scope matches everything.
func (s Scope) Full() bool { return s.full }

// None reports whether the scope matches nothing. Repositories must
// short-circuit a none scope to an empty result without issuing a query.
func (s Scope) None() bool { return !s.full && len(s.groupIDs) == 0 }

// GroupIDs returns the group set of a group scope. Callers must not mutate
// the returned slice.
func (s Scope) GroupIDs() []int64 { return s.groupIDs }

// ScopeOptions modifies scope resolution for a single request.
type ScopeOptions struct {
	// AsUserID, when set by an admin caller, resolves the scope as that user
	// instead of the caller. Non-admin callers may only name themselves.
	AsUserID *int64
}
