package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassification(t *testing.T) {
	c, err := NewClassification(
		map[DatasetType]MetaDatasetType{
			DatasetWGS: MetaGenome,
			DatasetWES: MetaExome,
			DatasetRRS: MetaRNA,
		},
		map[int64][]MetaDatasetType{
			1: {MetaGenome},
			2: {MetaExome, MetaGenome},
		},
	)
	require.NoError(t, err)

	mt, ok := c.MetaType(DatasetWGS)
	require.True(t, ok)
	assert.Equal(t, MetaGenome, mt)

	_, ok = c.MetaType(DatasetCES)
	assert.False(t, ok)

	assert.True(t, c.PipelineKnown(1))
	assert.False(t, c.PipelineKnown(7))
	assert.True(t, c.PipelineSupports(2, MetaGenome))
	assert.False(t, c.PipelineSupports(1, MetaExome))
	assert.False(t, c.PipelineSupports(7, MetaGenome))

	assert.Equal(t, []MetaDatasetType{MetaExome, MetaGenome}, c.SupportedTypes(2))
	assert.Nil(t, c.SupportedTypes(7))
	assert.Equal(t, []int64{1, 2}, c.PipelineIDs())
}

func TestNewClassification_Invalid(t *testing.T) {
	var verr *ValidationError

	_, err := NewClassification(
		map[DatasetType]MetaDatasetType{"BOGUS": MetaGenome}, nil,
	)
	assert.ErrorAs(t, err, &verr)

	_, err = NewClassification(
		map[DatasetType]MetaDatasetType{DatasetWGS: "Proteome"}, nil,
	)
	assert.ErrorAs(t, err, &verr)

	_, err = NewClassification(nil, map[int64][]MetaDatasetType{0: {MetaGenome}})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "positive")

	_, err = NewClassification(nil, map[int64][]MetaDatasetType{3: {}})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "no metadataset types")
}

func TestScopeShapes(t *testing.T) {
	full := FullScope()
	assert.True(t, full.Full())
	assert.False(t, full.None())

	grp := GroupScope([]int64{3, 5})
	assert.False(t, grp.Full())
	assert.False(t, grp.None())
	assert.Equal(t, []int64{3, 5}, grp.GroupIDs())

	// GroupScope copies its input.
	src := []int64{9}
	s := GroupScope(src)
	src[0] = 1
	assert.Equal(t, []int64{9}, s.GroupIDs())

	assert.True(t, NoneScope().None())
	assert.True(t, GroupScope(nil).None())
}
