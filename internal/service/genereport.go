package service

import (
	"context"
	"strings"

	"sampletrack/internal/domain"
)

// GeneReportService produces per-gene variant reports limited to the
// caller's visible datasets.
type GeneReportService struct {
	resolver *VisibilityResolver
	variants domain.VariantRepository
}

// NewGeneReportService creates a new GeneReportService.
func NewGeneReportService(resolver *VisibilityResolver, variants domain.VariantRepository) *GeneReportService {
	return &GeneReportService{resolver: resolver, variants: variants}
}

// Report returns the variants called in the given genes across every dataset
// the caller can see. Gene symbols are matched case-insensitively.
func (s *GeneReportService) Report(ctx context.Context, opts domain.ScopeOptions, genes []string, page domain.PageRequest) ([]domain.Variant, int64, error) {
	if len(genes) == 0 {
		return nil, 0, domain.ErrValidation("at least one gene symbol is required")
	}
	normalized := make([]string, 0, len(genes))
	for _, g := range genes {
		g = strings.TrimSpace(g)
		if g == "" {
			return nil, 0, domain.ErrValidation("gene symbol must not be empty")
		}
		normalized = append(normalized, strings.ToUpper(g))
	}
	scope, err := s.resolver.Resolve(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	if scope.None() {
		return []domain.Variant{}, 0, nil
	}
	return s.variants.List(ctx, scope, domain.VariantFilter{Genes: normalized, Page: page})
}
