package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"sampletrack/internal/domain"
)

// CompatibilityValidator decides whether a set of datasets may be analysed
// together under a requested pipeline. The decision is a pure function of
// the classification table and the dataset types involved; it performs no
// writes and is reused by both analysis creation and the compatibility
// matrix query.
type CompatibilityValidator struct {
	datasets       domain.DatasetRepository
	pipelines      domain.PipelineRepository
	classification *domain.Classification
}

// NewCompatibilityValidator creates a validator over the loaded
// classification table.
func NewCompatibilityValidator(datasets domain.DatasetRepository, pipelines domain.PipelineRepository, classification *domain.Classification) *CompatibilityValidator {
	return &CompatibilityValidator{
		datasets:       datasets,
		pipelines:      pipelines,
		classification: classification,
	}
}

// resolveMetaType resolves the dataset ids to their single shared
// metadataset type within scope. Ids that are absent or invisible yield
// NotFound; mixed classifications yield Conflict.
func (v *CompatibilityValidator) resolveMetaType(ctx context.Context, scope domain.Scope, datasetIDs []int64) (domain.MetaDatasetType, error) {
	if len(datasetIDs) == 0 {
		return "", domain.ErrValidation("at least one dataset id is required")
	}

	types, err := v.datasets.TypesByIDs(ctx, scope, datasetIDs)
	if err != nil {
		return "", err
	}

	metas := map[domain.MetaDatasetType]bool{}
	for _, id := range datasetIDs {
		dt, ok := types[id]
		if !ok {
			return "", domain.ErrNotFound("dataset %d not found", id)
		}
		mt, ok := v.classification.MetaType(dt)
		if !ok {
			return "", domain.ErrValidation("dataset type %q has no metadataset classification", dt)
		}
		metas[mt] = true
	}

	if len(metas) != 1 {
		names := make([]string, 0, len(metas))
		for mt := range metas {
			names = append(names, string(mt))
		}
		sort.Strings(names)
		return "", domain.ErrConflict("datasets mix metadataset types %s: an analysis must target exactly one", strings.Join(names, ", "))
	}
	for mt := range metas {
		return mt, nil
	}
	panic("unreachable")
}

// Validate checks that every dataset resolves within scope, that all of them
// share one metadataset classification, and that the pipeline supports it.
func (v *CompatibilityValidator) Validate(ctx context.Context, scope domain.Scope, datasetIDs []int64, pipelineID int64) error {
	mt, err := v.resolveMetaType(ctx, scope, datasetIDs)
	if err != nil {
		return err
	}

	if !v.classification.PipelineKnown(pipelineID) {
		return domain.ErrNotFound("pipeline %d not found", pipelineID)
	}
	if !v.classification.PipelineSupports(pipelineID, mt) {
		supported := v.classification.SupportedTypes(pipelineID)
		return domain.ErrConflict("pipeline %d supports %s, not %s", pipelineID, joinMetaTypes(supported), mt)
	}
	return nil
}

// CompatiblePipelines returns the registered pipelines that could run the
// given dataset set, in id order. The same resolution rules apply: an
// unresolvable dataset is NotFound and a mixed set is Conflict, so a set
// with no compatible pipelines is an empty, non-error result.
func (v *CompatibilityValidator) CompatiblePipelines(ctx context.Context, scope domain.Scope, datasetIDs []int64) ([]domain.Pipeline, error) {
	mt, err := v.resolveMetaType(ctx, scope, datasetIDs)
	if err != nil {
		return nil, err
	}

	compatible := []domain.Pipeline{}
	for _, id := range v.classification.PipelineIDs() {
		if !v.classification.PipelineSupports(id, mt) {
			continue
		}
		p, err := v.pipelines.GetByID(ctx, id)
		if err != nil {
			// The classification table may register pipelines the metastore
			// has not seen yet; skip rather than fail the whole matrix.
			if _, ok := err.(*domain.NotFoundError); ok {
				continue
			}
			return nil, err
		}
		compatible = append(compatible, *p)
	}
	return compatible, nil
}

func joinMetaTypes(metas []domain.MetaDatasetType) string {
	names := make([]string, 0, len(metas))
	for _, mt := range metas {
		names = append(names, string(mt))
	}
	if len(names) == 0 {
		return "nothing"
	}
	return fmt.Sprintf("only %s", strings.Join(names, ", "))
}
