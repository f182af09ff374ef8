package repository

import (
	"context"
	"database/sql"
	"strings"

	"sampletrack/internal/domain"
)

var _ domain.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implements domain.VariantRepository using SQLite. The gene
// report joins each variant up the hierarchy to its participant and family
// codenames, restricted to datasets visible within scope.
type VariantRepo struct {
	db *sql.DB
}

// NewVariantRepo creates a new VariantRepo.
func NewVariantRepo(db *sql.DB) *VariantRepo {
	return &VariantRepo{db: db}
}

// List returns the page of variants for the requested genes whose dataset is
// visible within scope.
func (r *VariantRepo) List(ctx context.Context, scope domain.Scope, filter domain.VariantFilter) ([]domain.Variant, int64, error) {
	if scope.None() {
		return []domain.Variant{}, 0, nil
	}

	var conds []string
	var args []any
	if len(filter.Genes) > 0 {
		conds = append(conds, "UPPER(v.gene) IN ("+placeholders(len(filter.Genes))+")")
		for _, g := range filter.Genes {
			args = append(args, g)
		}
	}
	if clause, sargs := scopeClause(scope, domain.KindDataset, "d"); clause != "" {
		conds = append(conds, clause)
		args = append(args, sargs...)
	}

	from := ` FROM variants v
		JOIN datasets d ON d.id = v.dataset_id
		JOIN tissue_samples t ON t.id = d.tissue_sample_id
		JOIN participants p ON p.id = t.participant_id
		JOIN families f ON f.id = p.family_id`

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(append([]any{}, args...), filter.Page.EffectiveLimit(), filter.Page.Offset())
	rows, err := r.db.QueryContext(ctx,
		`SELECT v.id, v.dataset_id, v.gene, v.position, v.reference_allele, v.alt_allele,
			v.variation, v.refseq_change, v.depth, v.zygosity, p.codename, f.codename`+
			from+where+` ORDER BY v.gene, v.position LIMIT ? OFFSET ?`,
		pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	variants := []domain.Variant{}
	for rows.Next() {
		var v domain.Variant
		var variation, refseq, zygosity sql.NullString
		var depth sql.NullInt64
		if err := rows.Scan(&v.ID, &v.DatasetID, &v.Gene, &v.Position, &v.ReferenceAllele,
			&v.AltAllele, &variation, &refseq, &depth, &zygosity,
			&v.ParticipantCodename, &v.FamilyCodename); err != nil {
			return nil, 0, err
		}
		v.Variation = strPtr(variation)
		v.RefseqChange = strPtr(refseq)
		v.Depth = int64Ptr(depth)
		v.Zygosity = strPtr(zygosity)
		variants = append(variants, v)
	}
	return variants, total, rows.Err()
}
