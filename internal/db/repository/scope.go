package repository

import (
	"fmt"

	"sampletrack/internal/domain"
)

// scopeClause compiles a visibility scope into a SQL predicate for the given
// entity kind, referencing the queried table through alias. It returns an
// empty clause for a full scope. Callers must short-circuit a none scope to
// an empty result before building a query; compiling one is a programming
// error.
//
// The clause is the existential lift of the dataset-group predicate through
// the ownership chain: an ancestor row is visible iff at least one dataset
// reachable beneath it is shared with one of the scope's groups. Analyses
// lift through the dataset link table instead, so an analysis is visible to
// any group that can see any of its datasets.
func scopeClause(scope domain.Scope, kind domain.EntityKind, alias string) (string, []any) {
	if scope.Full() {
		return "", nil
	}
	if scope.None() {
		panic("repository: scopeClause called with none scope")
	}

	groupIDs := scope.GroupIDs()
	in := placeholders(len(groupIDs))
	args := make([]any, 0, len(groupIDs))
	for _, id := range groupIDs {
		args = append(args, id)
	}

	var clause string
	switch kind {
	case domain.KindDataset:
		clause = fmt.Sprintf(`EXISTS (
			SELECT 1 FROM dataset_groups dg
			WHERE dg.dataset_id = %s.id AND dg.group_id IN (%s))`, alias, in)
	case domain.KindTissueSample:
		clause = fmt.Sprintf(`EXISTS (
			SELECT 1 FROM datasets d
			JOIN dataset_groups dg ON dg.dataset_id = d.id
			WHERE d.tissue_sample_id = %s.id AND dg.group_id IN (%s))`, alias, in)
	case domain.KindParticipant:
		clause = fmt.Sprintf(`EXISTS (
			SELECT 1 FROM tissue_samples t
			JOIN datasets d ON d.tissue_sample_id = t.id
			JOIN dataset_groups dg ON dg.dataset_id = d.id
			WHERE t.participant_id = %s.id AND dg.group_id IN (%s))`, alias, in)
	case domain.KindFamily:
		clause = fmt.Sprintf(`EXISTS (
			SELECT 1 FROM participants p
			JOIN tissue_samples t ON t.participant_id = p.id
			JOIN datasets d ON d.tissue_sample_id = t.id
			JOIN dataset_groups dg ON dg.dataset_id = d.id
			WHERE p.family_id = %s.id AND dg.group_id IN (%s))`, alias, in)
	case domain.KindAnalysis:
		clause = fmt.Sprintf(`EXISTS (
			SELECT 1 FROM dataset_analyses da
			JOIN dataset_groups dg ON dg.dataset_id = da.dataset_id
			WHERE da.analysis_id = %s.id AND dg.group_id IN (%s))`, alias, in)
	default:
		panic(fmt.Sprintf("repository: no scope clause for entity kind %q", kind))
	}

	return clause, args
}
