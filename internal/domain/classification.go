package domain

import "sort"

// Classification is the static table loaded at startup that maps each dataset
// type code to its single metadataset classification, plus the metadataset
// types each registered pipeline supports. It never changes for the lifetime
// of the process, so lookups need no locking.
type Classification struct {
	datasetMeta map[DatasetType]MetaDatasetType
	pipelines   map[int64]map[MetaDatasetType]struct{}
}

// NewClassification validates and builds a classification table. Every
// dataset type and metadataset type must come from the static enum tables,
// and every dataset type maps to exactly one metadataset type by
// construction of the input map.
func NewClassification(datasetMeta map[DatasetType]MetaDatasetType, pipelineSupport map[int64][]MetaDatasetType) (*Classification, error) {
	c := &Classification{
		datasetMeta: make(map[DatasetType]MetaDatasetType, len(datasetMeta)),
		pipelines:   make(map[int64]map[MetaDatasetType]struct{}, len(pipelineSupport)),
	}
	for dt, mt := range datasetMeta {
		if err := ValidateEnum("dataset_type", string(dt)); err != nil {
			return nil, err
		}
		if err := ValidateEnum("metadataset_type", string(mt)); err != nil {
			return nil, err
		}
		c.datasetMeta[dt] = mt
	}
	for id, metas := range pipelineSupport {
		if id <= 0 {
			return nil, ErrValidation("pipeline id must be a positive integer, got %d", id)
		}
		if len(metas) == 0 {
			return nil, ErrValidation("pipeline %d supports no metadataset types", id)
		}
		set := make(map[MetaDatasetType]struct{}, len(metas))
		for _, mt := range metas {
			if err := ValidateEnum("metadataset_type", string(mt)); err != nil {
				return nil, err
			}
			set[mt] = struct{}{}
		}
		c.pipelines[id] = set
	}
	return c, nil
}

// MetaType returns the metadataset classification of a dataset type.
func (c *Classification) MetaType(t DatasetType) (MetaDatasetType, bool) {
	mt, ok := c.datasetMeta[t]
	return mt, ok
}

// PipelineKnown reports whether the pipeline is registered in the table.
func (c *Classification) PipelineKnown(pipelineID int64) bool {
	_, ok := c.pipelines[pipelineID]
	return ok
}

// PipelineSupports reports whether the pipeline declares support for the
// given metadataset type.
func (c *Classification) PipelineSupports(pipelineID int64, mt MetaDatasetType) bool {
	set, ok := c.pipelines[pipelineID]
	if !ok {
		return false
	}
	_, ok = set[mt]
	return ok
}

// SupportedTypes returns the metadataset types a pipeline supports, sorted.
func (c *Classification) SupportedTypes(pipelineID int64) []MetaDatasetType {
	set, ok := c.pipelines[pipelineID]
	if !ok {
		return nil
	}
	out := make([]MetaDatasetType, 0, len(set))
	for mt := range set {
		out = append(out, mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PipelineIDs returns the registered pipeline ids in ascending order.
func (c *Classification) PipelineIDs() []int64 {
	out := make([]int64, 0, len(c.pipelines))
	for id := range c.pipelines {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
