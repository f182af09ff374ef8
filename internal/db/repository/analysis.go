package repository

import (
	"context"
	"database/sql"
	"strings"

	"sampletrack/internal/domain"
)

var _ domain.AnalysisRepository = (*AnalysisRepo)(nil)

// AnalysisRepo implements domain.AnalysisRepository using SQLite.
type AnalysisRepo struct {
	db *sql.DB
}

// NewAnalysisRepo creates a new AnalysisRepo.
func NewAnalysisRepo(db *sql.DB) *AnalysisRepo {
	return &AnalysisRepo{db: db}
}

const analysisColumns = `a.id, a.pipeline_id, a.analysis_state, a.qsub_id, a.result_path,
	a.assignee_id, a.requester_id, a.requested_at, a.started_at, a.finished_at, a.notes,
	a.updated_at, a.updated_by`

func scanAnalysis(row interface{ Scan(...any) error }) (*domain.Analysis, error) {
	var a domain.Analysis
	var qsubID, assigneeID sql.NullInt64
	var resultPath, notes sql.NullString
	var started, finished sql.NullTime
	if err := row.Scan(&a.ID, &a.PipelineID, &a.State, &qsubID, &resultPath,
		&assigneeID, &a.RequesterID, &a.RequestedAt, &started, &finished, &notes,
		&a.UpdatedAt, &a.UpdatedBy); err != nil {
		return nil, mapDBError(err)
	}
	a.QsubID = int64Ptr(qsubID)
	a.ResultPath = strPtr(resultPath)
	a.AssigneeID = int64Ptr(assigneeID)
	a.StartedAt = timePtr(started)
	a.FinishedAt = timePtr(finished)
	a.Notes = strPtr(notes)
	return &a, nil
}

// Create inserts the analysis row and all dataset link rows in a single
// transaction. A failure on any link insert (a vanished dataset, a duplicate
// link) rolls back the analysis row too; no partial analysis ever persists.
func (r *AnalysisRepo) Create(ctx context.Context, a *domain.Analysis) (*domain.Analysis, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`INSERT INTO analyses (pipeline_id, analysis_state, requester_id, updated_by)
		 VALUES (?, ?, ?, ?)`,
		a.PipelineID, string(a.State), a.RequesterID, a.UpdatedBy)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, datasetID := range a.DatasetIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dataset_analyses (dataset_id, analysis_id) VALUES (?, ?)`,
			datasetID, id); err != nil {
			return nil, mapDBError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, domain.FullScope(), id)
}

// GetByID fetches an analysis by primary key within scope, including its
// dataset links.
func (r *AnalysisRepo) GetByID(ctx context.Context, scope domain.Scope, id int64) (*domain.Analysis, error) {
	if scope.None() {
		return nil, domain.ErrNotFound("analysis %d not found", id)
	}

	query := `SELECT ` + analysisColumns + ` FROM analyses a WHERE a.id = ?`
	args := []any{id}
	if clause, sargs := scopeClause(scope, domain.KindAnalysis, "a"); clause != "" {
		query += " AND " + clause
		args = append(args, sargs...)
	}

	a, err := scanAnalysis(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	if a.DatasetIDs, err = r.datasetIDs(ctx, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AnalysisRepo) datasetIDs(ctx context.Context, analysisID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT dataset_id FROM dataset_analyses WHERE analysis_id = ? ORDER BY dataset_id`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// List returns the page of analyses visible within scope.
func (r *AnalysisRepo) List(ctx context.Context, scope domain.Scope, filter domain.AnalysisFilter) ([]domain.Analysis, int64, error) {
	if scope.None() {
		return []domain.Analysis{}, 0, nil
	}

	var conds []string
	var args []any
	if clause, sargs := scopeClause(scope, domain.KindAnalysis, "a"); clause != "" {
		conds = append(conds, clause)
		args = append(args, sargs...)
	}
	if len(filter.States) > 0 {
		conds = append(conds, "a.analysis_state IN ("+placeholders(len(filter.States))+")")
		for _, s := range filter.States {
			args = append(args, string(s))
		}
	}
	if filter.Since != nil {
		conds = append(conds, "a.updated_at >= ?")
		args = append(args, *filter.Since)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses a`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(append([]any{}, args...), filter.Page.EffectiveLimit(), filter.Page.Offset())
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+analysisColumns+` FROM analyses a`+where+` ORDER BY a.id LIMIT ? OFFSET ?`,
		pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	analyses := []domain.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, 0, err
		}
		analyses = append(analyses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range analyses {
		ids, err := r.datasetIDs(ctx, analyses[i].ID)
		if err != nil {
			return nil, 0, err
		}
		analyses[i].DatasetIDs = ids
	}
	return analyses, total, nil
}

// Update persists mutable analysis fields.
func (r *AnalysisRepo) Update(ctx context.Context, a *domain.Analysis) (*domain.Analysis, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE analyses SET analysis_state = ?, qsub_id = ?, result_path = ?, assignee_id = ?,
		 started_at = ?, finished_at = ?, notes = ?, updated_at = CURRENT_TIMESTAMP, updated_by = ?
		 WHERE id = ?`,
		string(a.State), nullInt64(a.QsubID), nullString(a.ResultPath), nullInt64(a.AssigneeID),
		nullTime(a.StartedAt), nullTime(a.FinishedAt), nullString(a.Notes), a.UpdatedBy, a.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound("analysis %d not found", a.ID)
	}
	return r.GetByID(ctx, domain.FullScope(), a.ID)
}

// Delete removes an analysis and its dataset links.
func (r *AnalysisRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("analysis %d not found", id)
	}
	return nil
}
