package repository

import (
	"context"
	"database/sql"

	"sampletrack/internal/domain"
)

var _ domain.PipelineRepository = (*PipelineRepo)(nil)

// PipelineRepo implements domain.PipelineRepository using SQLite.
type PipelineRepo struct {
	db *sql.DB
}

// NewPipelineRepo creates a new PipelineRepo.
func NewPipelineRepo(db *sql.DB) *PipelineRepo {
	return &PipelineRepo{db: db}
}

func scanPipeline(row interface{ Scan(...any) error }) (*domain.Pipeline, error) {
	var p domain.Pipeline
	if err := row.Scan(&p.ID, &p.Name, &p.Version); err != nil {
		return nil, mapDBError(err)
	}
	return &p, nil
}

// Create registers a pipeline.
func (r *PipelineRepo) Create(ctx context.Context, p *domain.Pipeline) (*domain.Pipeline, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO pipelines (name, version) VALUES (?, ?)`, p.Name, p.Version)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a pipeline by primary key.
func (r *PipelineRepo) GetByID(ctx context.Context, id int64) (*domain.Pipeline, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, version FROM pipelines WHERE id = ?`, id)
	return scanPipeline(row)
}

// List returns a page of pipelines ordered by name and version.
func (r *PipelineRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Pipeline, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pipelines`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, version FROM pipelines ORDER BY name, version LIMIT ? OFFSET ?`,
		page.EffectiveLimit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	pipelines := []domain.Pipeline{}
	for rows.Next() {
		p, err := scanPipeline(rows)
		if err != nil {
			return nil, 0, err
		}
		pipelines = append(pipelines, *p)
	}
	return pipelines, total, rows.Err()
}
