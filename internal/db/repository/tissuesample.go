package repository

import (
	"context"
	"database/sql"

	"sampletrack/internal/domain"
)

var _ domain.TissueSampleRepository = (*TissueSampleRepo)(nil)

// TissueSampleRepo implements domain.TissueSampleRepository using SQLite.
type TissueSampleRepo struct {
	db *sql.DB
}

// NewTissueSampleRepo creates a new TissueSampleRepo.
func NewTissueSampleRepo(db *sql.DB) *TissueSampleRepo {
	return &TissueSampleRepo{db: db}
}

const tissueSampleColumns = `t.id, t.participant_id, t.tissue_sample_type, t.tissue_processing,
	t.extraction_date, t.notes, t.created_at, t.created_by, t.updated_at, t.updated_by`

func scanTissueSample(row interface{ Scan(...any) error }) (*domain.TissueSample, error) {
	var t domain.TissueSample
	var processing, notes sql.NullString
	var extracted sql.NullTime
	if err := row.Scan(&t.ID, &t.ParticipantID, &t.Type, &processing,
		&extracted, &notes, &t.CreatedAt, &t.CreatedBy, &t.UpdatedAt, &t.UpdatedBy); err != nil {
		return nil, mapDBError(err)
	}
	if processing.Valid {
		p := domain.TissueProcessing(processing.String)
		t.Processing = &p
	}
	t.ExtractionDate = timePtr(extracted)
	t.Notes = strPtr(notes)
	return &t, nil
}

// Create inserts a new tissue sample.
func (r *TissueSampleRepo) Create(ctx context.Context, t *domain.TissueSample) (*domain.TissueSample, error) {
	var processing sql.NullString
	if t.Processing != nil {
		processing = sql.NullString{String: string(*t.Processing), Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tissue_samples (participant_id, tissue_sample_type, tissue_processing, extraction_date, notes, created_by, updated_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ParticipantID, string(t.Type), processing, nullTime(t.ExtractionDate), nullString(t.Notes),
		t.CreatedBy, t.UpdatedBy)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, domain.FullScope(), id)
}

// GetByID fetches a tissue sample by primary key within scope.
func (r *TissueSampleRepo) GetByID(ctx context.Context, scope domain.Scope, id int64) (*domain.TissueSample, error) {
	if scope.None() {
		return nil, domain.ErrNotFound("tissue sample %d not found", id)
	}

	query := `SELECT ` + tissueSampleColumns + ` FROM tissue_samples t WHERE t.id = ?`
	args := []any{id}
	if clause, sargs := scopeClause(scope, domain.KindTissueSample, "t"); clause != "" {
		query += " AND " + clause
		args = append(args, sargs...)
	}

	return scanTissueSample(r.db.QueryRowContext(ctx, query, args...))
}

// ListByParticipant returns the page of a participant's tissue samples
// visible within scope.
func (r *TissueSampleRepo) ListByParticipant(ctx context.Context, scope domain.Scope, participantID int64, page domain.PageRequest) ([]domain.TissueSample, int64, error) {
	if scope.None() {
		return []domain.TissueSample{}, 0, nil
	}

	where := ` WHERE t.participant_id = ?`
	args := []any{participantID}
	if clause, sargs := scopeClause(scope, domain.KindTissueSample, "t"); clause != "" {
		where += " AND " + clause
		args = append(args, sargs...)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tissue_samples t`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(append([]any{}, args...), page.EffectiveLimit(), page.Offset())
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tissueSampleColumns+` FROM tissue_samples t`+where+` ORDER BY t.id LIMIT ? OFFSET ?`,
		pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	samples := []domain.TissueSample{}
	for rows.Next() {
		t, err := scanTissueSample(rows)
		if err != nil {
			return nil, 0, err
		}
		samples = append(samples, *t)
	}
	return samples, total, rows.Err()
}

// Update persists mutable tissue sample fields.
func (r *TissueSampleRepo) Update(ctx context.Context, t *domain.TissueSample) (*domain.TissueSample, error) {
	var processing sql.NullString
	if t.Processing != nil {
		processing = sql.NullString{String: string(*t.Processing), Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE tissue_samples SET tissue_sample_type = ?, tissue_processing = ?, extraction_date = ?,
		 notes = ?, updated_at = CURRENT_TIMESTAMP, updated_by = ? WHERE id = ?`,
		string(t.Type), processing, nullTime(t.ExtractionDate), nullString(t.Notes), t.UpdatedBy, t.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound("tissue sample %d not found", t.ID)
	}
	return r.GetByID(ctx, domain.FullScope(), t.ID)
}

// Delete removes a tissue sample.
func (r *TissueSampleRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tissue_samples WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("tissue sample %d not found", id)
	}
	return nil
}

// CountDatasets returns the number of datasets derived from the sample.
func (r *TissueSampleRepo) CountDatasets(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM datasets WHERE tissue_sample_id = ?`, id).Scan(&n)
	return n, err
}
