package service

import "sampletrack/internal/domain"

// Action names a mutation the guard can authorize.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// DenyKind distinguishes the error taxonomy a denial maps to.
type DenyKind int

const (
	// DenyNone means the decision allows the mutation.
	DenyNone DenyKind = iota
	// DenyForbidden maps to an access-denied error.
	DenyForbidden
	// DenyConflict maps to a conflict error (dependent records).
	DenyConflict
)

// Decision is the outcome of a mutation authorization check. It is a plain
// value so rules can be tested without any request or storage context.
type Decision struct {
	Allowed bool
	Kind    DenyKind
	Reason  string
}

// Allow is the affirmative decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a role-based denial.
func Deny(reason string) Decision {
	return Decision{Kind: DenyForbidden, Reason: reason}
}

// DenyWithConflict returns a conflict denial.
func DenyWithConflict(reason string) Decision {
	return Decision{Kind: DenyConflict, Reason: reason}
}

// Err converts a denial into the matching domain error, or nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Kind == DenyConflict {
		return domain.ErrConflict("%s", d.Reason)
	}
	return domain.ErrAccessDenied("%s", d.Reason)
}

// adminOnlyKinds lists the entity kinds whose creation and deletion is
// restricted to admins regardless of visibility.
var adminOnlyKinds = map[domain.EntityKind]bool{
	domain.KindUser:        true,
	domain.KindGroup:       true,
	domain.KindFamily:      true,
	domain.KindParticipant: true,
	domain.KindPipeline:    true,
}

// Authorize applies the role rules for a mutation on an entity kind. It does
// not consult visibility; callers resolve the target through the scoped
// repositories first, so an invisible target has already surfaced as
// NotFound by the time the guard runs.
func Authorize(p domain.ContextPrincipal, action Action, kind domain.EntityKind) Decision {
	if p.IsAdmin {
		return Allow()
	}
	switch action {
	case ActionCreate, ActionDelete:
		if adminOnlyKinds[kind] {
			return Deny("only admins may " + string(action) + " a " + string(kind))
		}
		if action == ActionDelete && kind == domain.KindAnalysis {
			return Deny("only admins may delete an analysis")
		}
		if action == ActionDelete && kind == domain.KindDataset {
			return Deny("only admins may delete a dataset")
		}
	}
	return Allow()
}

// AuthorizeStateTransition applies the analysis state machine rule: a
// non-admin may move an analysis into Cancelled from any prior state, and
// nowhere else.
func AuthorizeStateTransition(p domain.ContextPrincipal, from, to domain.AnalysisState) Decision {
	if p.IsAdmin {
		return Allow()
	}
	if to == domain.AnalysisCancelled {
		return Allow()
	}
	return Deny("non-admin users may only cancel an analysis, not move it from " +
		string(from) + " to " + string(to))
}

// AuthorizeDelete layers the dependent-records rule on top of the role rule.
// Role rules run first; the conflict then applies to every remaining role,
// admins included.
func AuthorizeDelete(p domain.ContextPrincipal, kind domain.EntityKind, dependents int64) Decision {
	if d := Authorize(p, ActionDelete, kind); !d.Allowed {
		return d
	}
	if dependents > 0 {
		return DenyWithConflict("cannot delete " + string(kind) + " with dependent records")
	}
	return Allow()
}
