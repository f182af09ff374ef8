package repository

import (
	"context"
	"database/sql"
	"strings"

	"sampletrack/internal/domain"
)

var _ domain.DatasetRepository = (*DatasetRepo)(nil)

// DatasetRepo implements domain.DatasetRepository using SQLite.
type DatasetRepo struct {
	db *sql.DB
}

// NewDatasetRepo creates a new DatasetRepo.
func NewDatasetRepo(db *sql.DB) *DatasetRepo {
	return &DatasetRepo{db: db}
}

const datasetColumns = `d.id, d.tissue_sample_id, d.dataset_type, d.condition, d.input_path,
	d.sequencing_centre, d.notes, d.entered_at, d.entered_by, d.updated_at, d.updated_by`

func scanDataset(row interface{ Scan(...any) error }) (*domain.Dataset, error) {
	var d domain.Dataset
	var notes sql.NullString
	if err := row.Scan(&d.ID, &d.TissueSampleID, &d.Type, &d.Condition, &d.InputPath,
		&d.SequencingCentre, &notes, &d.EnteredAt, &d.EnteredBy, &d.UpdatedAt, &d.UpdatedBy); err != nil {
		return nil, mapDBError(err)
	}
	d.Notes = strPtr(notes)
	return &d, nil
}

// Create inserts the dataset and its group links in one transaction. Either
// the row and every link commit together, or nothing is persisted.
func (r *DatasetRepo) Create(ctx context.Context, d *domain.Dataset) (*domain.Dataset, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`INSERT INTO datasets (tissue_sample_id, dataset_type, condition, input_path, sequencing_centre, notes, entered_by, updated_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.TissueSampleID, string(d.Type), string(d.Condition), d.InputPath,
		d.SequencingCentre, nullString(d.Notes), d.EnteredBy, d.UpdatedBy)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, gid := range d.GroupIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dataset_groups (dataset_id, group_id) VALUES (?, ?)`, id, gid); err != nil {
			return nil, mapDBError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, domain.FullScope(), id)
}

// GetByID fetches a dataset by primary key within scope, including its group
// links.
func (r *DatasetRepo) GetByID(ctx context.Context, scope domain.Scope, id int64) (*domain.Dataset, error) {
	if scope.None() {
		return nil, domain.ErrNotFound("dataset %d not found", id)
	}

	query := `SELECT ` + datasetColumns + ` FROM datasets d WHERE d.id = ?`
	args := []any{id}
	if clause, sargs := scopeClause(scope, domain.KindDataset, "d"); clause != "" {
		query += " AND " + clause
		args = append(args, sargs...)
	}

	d, err := scanDataset(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	if d.GroupIDs, err = r.groupIDs(ctx, d.ID); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DatasetRepo) groupIDs(ctx context.Context, datasetID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT group_id FROM dataset_groups WHERE dataset_id = ? ORDER BY group_id`, datasetID)
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

// List returns the page of datasets visible within scope.
func (r *DatasetRepo) List(ctx context.Context, scope domain.Scope, filter domain.DatasetFilter) ([]domain.Dataset, int64, error) {
	if scope.None() {
		return []domain.Dataset{}, 0, nil
	}

	var conds []string
	var args []any
	if clause, sargs := scopeClause(scope, domain.KindDataset, "d"); clause != "" {
		conds = append(conds, clause)
		args = append(args, sargs...)
	}
	if filter.TissueSampleID != nil {
		conds = append(conds, "d.tissue_sample_id = ?")
		args = append(args, *filter.TissueSampleID)
	}
	if len(filter.Types) > 0 {
		conds = append(conds, "d.dataset_type IN ("+placeholders(len(filter.Types))+")")
		for _, t := range filter.Types {
			args = append(args, string(t))
		}
	}
	if len(filter.Conditions) > 0 {
		conds = append(conds, "d.condition IN ("+placeholders(len(filter.Conditions))+")")
		for _, c := range filter.Conditions {
			args = append(args, string(c))
		}
	}
	if filter.Updated.After != nil {
		conds = append(conds, "d.updated_at >= ?")
		args = append(args, *filter.Updated.After)
	}
	if filter.Updated.Before != nil {
		conds = append(conds, "d.updated_at <= ?")
		args = append(args, *filter.Updated.Before)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM datasets d`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(append([]any{}, args...), filter.Page.EffectiveLimit(), filter.Page.Offset())
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+datasetColumns+` FROM datasets d`+where+` ORDER BY d.id LIMIT ? OFFSET ?`,
		pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	datasets := []domain.Dataset{}
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, 0, err
		}
		datasets = append(datasets, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range datasets {
		ids, err := r.groupIDs(ctx, datasets[i].ID)
		if err != nil {
			return nil, 0, err
		}
		datasets[i].GroupIDs = ids
	}
	return datasets, total, nil
}

// Update persists mutable dataset fields.
func (r *DatasetRepo) Update(ctx context.Context, d *domain.Dataset) (*domain.Dataset, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE datasets SET dataset_type = ?, condition = ?, input_path = ?, sequencing_centre = ?,
		 notes = ?, updated_at = CURRENT_TIMESTAMP, updated_by = ? WHERE id = ?`,
		string(d.Type), string(d.Condition), d.InputPath, d.SequencingCentre,
		nullString(d.Notes), d.UpdatedBy, d.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound("dataset %d not found", d.ID)
	}
	return r.GetByID(ctx, domain.FullScope(), d.ID)
}

// SetGroups replaces the dataset's group links atomically.
func (r *DatasetRepo) SetGroups(ctx context.Context, id int64, groupIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_groups WHERE dataset_id = ?`, id); err != nil {
		return mapDBError(err)
	}
	for _, gid := range groupIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dataset_groups (dataset_id, group_id) VALUES (?, ?)`, id, gid); err != nil {
			return mapDBError(err)
		}
	}
	return tx.Commit()
}

// Delete removes a dataset.
func (r *DatasetRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("dataset %d not found", id)
	}
	return nil
}

// CountAnalyses returns the number of analyses linked to the dataset.
func (r *DatasetRepo) CountAnalyses(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM dataset_analyses WHERE dataset_id = ?`, id).Scan(&n)
	return n, err
}

// TypesByIDs resolves dataset ids to their type codes within scope. Ids that
// are absent or out of scope are simply missing from the result; the caller
// decides how to report them.
func (r *DatasetRepo) TypesByIDs(ctx context.Context, scope domain.Scope, ids []int64) (map[int64]domain.DatasetType, error) {
	if scope.None() || len(ids) == 0 {
		return map[int64]domain.DatasetType{}, nil
	}

	query := `SELECT d.id, d.dataset_type FROM datasets d WHERE d.id IN (` + placeholders(len(ids)) + `)`
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	if clause, sargs := scopeClause(scope, domain.KindDataset, "d"); clause != "" {
		query += " AND " + clause
		args = append(args, sargs...)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make(map[int64]domain.DatasetType, len(ids))
	for rows.Next() {
		var id int64
		var t domain.DatasetType
		if err := rows.Scan(&id, &t); err != nil {
			return nil, err
		}
		types[id] = t
	}
	return types, rows.Err()
}

// ListUngrouped returns datasets with zero group links. Such records are
// invisible to every non-admin; this query surfaces them for repair instead
// of letting the scope predicate hide them silently.
func (r *DatasetRepo) ListUngrouped(ctx context.Context, page domain.PageRequest) ([]domain.Dataset, int64, error) {
	where := ` WHERE NOT EXISTS (SELECT 1 FROM dataset_groups dg WHERE dg.dataset_id = d.id)`

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM datasets d`+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+datasetColumns+` FROM datasets d`+where+` ORDER BY d.id LIMIT ? OFFSET ?`,
		page.EffectiveLimit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	datasets := []domain.Dataset{}
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, 0, err
		}
		datasets = append(datasets, *d)
	}
	return datasets, total, rows.Err()
}
