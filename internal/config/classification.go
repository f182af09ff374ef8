package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sampletrack/internal/domain"
)

//go:embed classification.yaml
var defaultClassification []byte

// classificationFile is the YAML shape of the classification table.
type classificationFile struct {
	DatasetTypes map[string]string `yaml:"dataset_types"`
	Pipelines    []struct {
		ID       int64    `yaml:"id"`
		Supports []string `yaml:"supports"`
	} `yaml:"pipelines"`
}

// LoadClassification reads the classification table from path, or from the
// embedded default when path is empty. The table is validated against the
// static enum tables before use.
func LoadClassification(path string) (*domain.Classification, error) {
	raw := defaultClassification
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read classification %s: %w", path, err)
		}
		raw = b
	}
	return parseClassification(raw)
}

func parseClassification(raw []byte) (*domain.Classification, error) {
	var file classificationFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse classification yaml: %w", err)
	}

	datasetMeta := make(map[domain.DatasetType]domain.MetaDatasetType, len(file.DatasetTypes))
	for dt, mt := range file.DatasetTypes {
		datasetMeta[domain.DatasetType(dt)] = domain.MetaDatasetType(mt)
	}

	pipelineSupport := make(map[int64][]domain.MetaDatasetType, len(file.Pipelines))
	for _, p := range file.Pipelines {
		if _, dup := pipelineSupport[p.ID]; dup {
			return nil, fmt.Errorf("parse classification yaml: duplicate pipeline id %d", p.ID)
		}
		metas := make([]domain.MetaDatasetType, 0, len(p.Supports))
		for _, mt := range p.Supports {
			metas = append(metas, domain.MetaDatasetType(mt))
		}
		pipelineSupport[p.ID] = metas
	}

	return domain.NewClassification(datasetMeta, pipelineSupport)
}
