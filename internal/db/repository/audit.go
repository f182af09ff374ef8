package repository

import (
	"context"
	"database/sql"
	"strings"

	"sampletrack/internal/domain"
)

var _ domain.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implements domain.AuditRepository using SQLite.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Insert appends an audit log entry.
func (r *AuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	id := e.ID
	if id == "" {
		id = domain.NewID()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, username, action, entity_kind, entity_id, status, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, e.Username, e.Action, string(e.EntityKind), nullInt64(e.EntityID), e.Status, nullString(e.Detail))
	return mapDBError(err)
}

// List returns a filtered page of audit entries, newest first.
func (r *AuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	var conds []string
	var args []any
	if filter.Username != nil {
		conds = append(conds, "username = ?")
		args = append(args, *filter.Username)
	}
	if filter.Action != nil {
		conds = append(conds, "action = ?")
		args = append(args, *filter.Action)
	}
	if filter.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Since != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, *filter.Since)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(append([]any{}, args...), filter.Page.EffectiveLimit(), filter.Page.Offset())
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, action, entity_kind, entity_id, status, detail, created_at
		 FROM audit_log`+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var e domain.AuditEntry
		var kind string
		var entityID sql.NullInt64
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &e.Username, &e.Action, &kind, &entityID, &e.Status, &detail, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		e.EntityKind = domain.EntityKind(kind)
		e.EntityID = int64Ptr(entityID)
		e.Detail = strPtr(detail)
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
