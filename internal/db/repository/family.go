package repository

import (
	"context"
	"database/sql"
	"strings"

	"sampletrack/internal/domain"
)

var _ domain.FamilyRepository = (*FamilyRepo)(nil)

// FamilyRepo implements domain.FamilyRepository using SQLite. Every read goes
// through the same scope compilation, so list and point-read visibility can
// never diverge.
type FamilyRepo struct {
	db *sql.DB
}

// NewFamilyRepo creates a new FamilyRepo.
func NewFamilyRepo(db *sql.DB) *FamilyRepo {
	return &FamilyRepo{db: db}
}

const familyColumns = "f.id, f.codename, f.created_at, f.created_by, f.updated_at, f.updated_by"

func scanFamily(row interface{ Scan(...any) error }) (*domain.Family, error) {
	var f domain.Family
	if err := row.Scan(&f.ID, &f.Codename, &f.CreatedAt, &f.CreatedBy, &f.UpdatedAt, &f.UpdatedBy); err != nil {
		return nil, mapDBError(err)
	}
	return &f, nil
}

// Create inserts a new family.
func (r *FamilyRepo) Create(ctx context.Context, f *domain.Family) (*domain.Family, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO families (codename, created_by, updated_by) VALUES (?, ?, ?)`,
		f.Codename, f.CreatedBy, f.UpdatedBy)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, domain.FullScope(), id)
}

// GetByID fetches a family by primary key within scope. Absent and invisible
// rows are indistinguishable.
func (r *FamilyRepo) GetByID(ctx context.Context, scope domain.Scope, id int64) (*domain.Family, error) {
	if scope.None() {
		return nil, domain.ErrNotFound("family %d not found", id)
	}

	query := `SELECT ` + familyColumns + ` FROM families f WHERE f.id = ?`
	args := []any{id}
	if clause, sargs := scopeClause(scope, domain.KindFamily, "f"); clause != "" {
		query += " AND " + clause
		args = append(args, sargs...)
	}

	return scanFamily(r.db.QueryRowContext(ctx, query, args...))
}

// List returns the page of families visible within scope.
func (r *FamilyRepo) List(ctx context.Context, scope domain.Scope, filter domain.FamilyFilter) ([]domain.Family, int64, error) {
	if scope.None() {
		return []domain.Family{}, 0, nil
	}

	var conds []string
	var args []any
	if clause, sargs := scopeClause(scope, domain.KindFamily, "f"); clause != "" {
		conds = append(conds, clause)
		args = append(args, sargs...)
	}
	if filter.CodenamePrefix != "" {
		conds = append(conds, "f.codename LIKE ?")
		args = append(args, filter.CodenamePrefix+"%")
	}
	if filter.Updated.After != nil {
		conds = append(conds, "f.updated_at >= ?")
		args = append(args, *filter.Updated.After)
	}
	if filter.Updated.Before != nil {
		conds = append(conds, "f.updated_at <= ?")
		args = append(args, *filter.Updated.Before)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM families f`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(append([]any{}, args...), filter.Page.EffectiveLimit(), filter.Page.Offset())
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+familyColumns+` FROM families f`+where+` ORDER BY f.codename LIMIT ? OFFSET ?`,
		pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	families := []domain.Family{}
	for rows.Next() {
		f, err := scanFamily(rows)
		if err != nil {
			return nil, 0, err
		}
		families = append(families, *f)
	}
	return families, total, rows.Err()
}

// Update persists mutable family fields.
func (r *FamilyRepo) Update(ctx context.Context, f *domain.Family) (*domain.Family, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE families SET codename = ?, updated_at = CURRENT_TIMESTAMP, updated_by = ? WHERE id = ?`,
		f.Codename, f.UpdatedBy, f.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound("family %d not found", f.ID)
	}
	return r.GetByID(ctx, domain.FullScope(), f.ID)
}

// Delete removes a family.
func (r *FamilyRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM families WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("family %d not found", id)
	}
	return nil
}

// CountParticipants returns the number of participants in the family.
func (r *FamilyRepo) CountParticipants(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM participants WHERE family_id = ?`, id).Scan(&n)
	return n, err
}
