package repository

import (
	"context"
	"database/sql"
	"strings"

	"sampletrack/internal/domain"
)

var _ domain.ParticipantRepository = (*ParticipantRepo)(nil)

// ParticipantRepo implements domain.ParticipantRepository using SQLite.
type ParticipantRepo struct {
	db *sql.DB
}

// NewParticipantRepo creates a new ParticipantRepo.
func NewParticipantRepo(db *sql.DB) *ParticipantRepo {
	return &ParticipantRepo{db: db}
}

const participantColumns = `p.id, p.family_id, p.codename, p.sex, p.participant_type,
	p.affected, p.solved, p.notes, p.created_at, p.created_by, p.updated_at, p.updated_by`

func scanParticipant(row interface{ Scan(...any) error }) (*domain.Participant, error) {
	var p domain.Participant
	var solved sql.NullBool
	var notes sql.NullString
	if err := row.Scan(&p.ID, &p.FamilyID, &p.Codename, &p.Sex, &p.Type,
		&p.Affected, &solved, &notes, &p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy); err != nil {
		return nil, mapDBError(err)
	}
	p.Solved = boolPtr(solved)
	p.Notes = strPtr(notes)
	return &p, nil
}

// Create inserts a new participant.
func (r *ParticipantRepo) Create(ctx context.Context, p *domain.Participant) (*domain.Participant, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO participants (family_id, codename, sex, participant_type, affected, solved, notes, created_by, updated_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.FamilyID, p.Codename, string(p.Sex), string(p.Type), boolToInt(p.Affected),
		nullBool(p.Solved), nullString(p.Notes), p.CreatedBy, p.UpdatedBy)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, domain.FullScope(), id)
}

// GetByID fetches a participant by primary key within scope.
func (r *ParticipantRepo) GetByID(ctx context.Context, scope domain.Scope, id int64) (*domain.Participant, error) {
	if scope.None() {
		return nil, domain.ErrNotFound("participant %d not found", id)
	}

	query := `SELECT ` + participantColumns + ` FROM participants p WHERE p.id = ?`
	args := []any{id}
	if clause, sargs := scopeClause(scope, domain.KindParticipant, "p"); clause != "" {
		query += " AND " + clause
		args = append(args, sargs...)
	}

	return scanParticipant(r.db.QueryRowContext(ctx, query, args...))
}

// List returns the page of participants visible within scope.
func (r *ParticipantRepo) List(ctx context.Context, scope domain.Scope, filter domain.ParticipantFilter) ([]domain.Participant, int64, error) {
	if scope.None() {
		return []domain.Participant{}, 0, nil
	}

	var conds []string
	var args []any
	if clause, sargs := scopeClause(scope, domain.KindParticipant, "p"); clause != "" {
		conds = append(conds, clause)
		args = append(args, sargs...)
	}
	if filter.FamilyID != nil {
		conds = append(conds, "p.family_id = ?")
		args = append(args, *filter.FamilyID)
	}
	if filter.CodenamePrefix != "" {
		conds = append(conds, "p.codename LIKE ?")
		args = append(args, filter.CodenamePrefix+"%")
	}
	if len(filter.Sexes) > 0 {
		conds = append(conds, "p.sex IN ("+placeholders(len(filter.Sexes))+")")
		for _, s := range filter.Sexes {
			args = append(args, string(s))
		}
	}
	if len(filter.Types) > 0 {
		conds = append(conds, "p.participant_type IN ("+placeholders(len(filter.Types))+")")
		for _, t := range filter.Types {
			args = append(args, string(t))
		}
	}
	if filter.Affected.Set {
		// affected is NOT NULL; a null filter matches nothing
		if filter.Affected.Null {
			conds = append(conds, "p.affected IS NULL")
		} else {
			conds = append(conds, "p.affected = ?")
			args = append(args, boolToInt(filter.Affected.Value))
		}
	}
	if filter.Solved.Set {
		if filter.Solved.Null {
			conds = append(conds, "p.solved IS NULL")
		} else {
			conds = append(conds, "p.solved = ?")
			args = append(args, boolToInt(filter.Solved.Value))
		}
	}
	if filter.Updated.After != nil {
		conds = append(conds, "p.updated_at >= ?")
		args = append(args, *filter.Updated.After)
	}
	if filter.Updated.Before != nil {
		conds = append(conds, "p.updated_at <= ?")
		args = append(args, *filter.Updated.Before)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants p`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(append([]any{}, args...), filter.Page.EffectiveLimit(), filter.Page.Offset())
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+participantColumns+` FROM participants p`+where+` ORDER BY p.codename LIMIT ? OFFSET ?`,
		pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, 0, err
		}
		participants = append(participants, *p)
	}
	return participants, total, rows.Err()
}

// Update persists mutable participant fields.
func (r *ParticipantRepo) Update(ctx context.Context, p *domain.Participant) (*domain.Participant, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE participants SET codename = ?, sex = ?, participant_type = ?, affected = ?,
		 solved = ?, notes = ?, updated_at = CURRENT_TIMESTAMP, updated_by = ? WHERE id = ?`,
		p.Codename, string(p.Sex), string(p.Type), boolToInt(p.Affected),
		nullBool(p.Solved), nullString(p.Notes), p.UpdatedBy, p.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound("participant %d not found", p.ID)
	}
	return r.GetByID(ctx, domain.FullScope(), p.ID)
}

// Delete removes a participant.
func (r *ParticipantRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("participant %d not found", id)
	}
	return nil
}

// CountTissueSamples returns the number of tissue samples owned by the
// participant.
func (r *ParticipantRepo) CountTissueSamples(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tissue_samples WHERE participant_id = ?`, id).Scan(&n)
	return n, err
}
