package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sampletrack/internal/domain"
)

func TestGeneReportService_ScopedByDataset(t *testing.T) {
	e := newTestEnv(t)
	e.insertVariant(t, e.d1, "BRCA1")
	e.insertVariant(t, e.d1, "TP53")
	e.insertVariant(t, e.d3, "BRCA1")

	// Alice sees only the variant on her group's dataset.
	variants, total, err := e.report.Report(e.aliceCtx(), domain.ScopeOptions{}, []string{"BRCA1"}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, variants, 1)
	assert.Equal(t, e.d1, variants[0].DatasetID)
	assert.Equal(t, "P0001", variants[0].ParticipantCodename)
	assert.Equal(t, "F0001", variants[0].FamilyCodename)

	// Admin sees both hits.
	_, total, err = e.report.Report(e.adminCtx(), domain.ScopeOptions{}, []string{"BRCA1"}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Multiple genes accumulate.
	_, total, err = e.report.Report(e.aliceCtx(), domain.ScopeOptions{}, []string{"BRCA1", "TP53"}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// A groupless user gets an empty report, not an error.
	variants, total, err = e.report.Report(e.grouplessCtx(), domain.ScopeOptions{}, []string{"BRCA1"}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, variants)
}

func TestGeneReportService_CaseInsensitiveGenes(t *testing.T) {
	e := newTestEnv(t)
	e.insertVariant(t, e.d1, "BRCA1")

	_, total, err := e.report.Report(e.adminCtx(), domain.ScopeOptions{}, []string{"brca1"}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestGeneReportService_Validation(t *testing.T) {
	e := newTestEnv(t)

	var validation *domain.ValidationError
	_, _, err := e.report.Report(e.adminCtx(), domain.ScopeOptions{}, nil, domain.PageRequest{})
	assert.ErrorAs(t, err, &validation)

	_, _, err = e.report.Report(e.adminCtx(), domain.ScopeOptions{}, []string{"  "}, domain.PageRequest{})
	assert.ErrorAs(t, err, &validation)
}

func TestOverviewService_Counts(t *testing.T) {
	e := newTestEnv(t)

	o, err := e.overview.Counts(e.aliceCtx(), domain.ScopeOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), o.Families)
	assert.Equal(t, int64(1), o.Participants)
	assert.Equal(t, int64(2), o.Datasets)
	assert.Zero(t, o.Analyses)

	o, err = e.overview.Counts(e.adminCtx(), domain.ScopeOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), o.Datasets)

	o, err = e.overview.Counts(e.grouplessCtx(), domain.ScopeOptions{})
	require.NoError(t, err)
	assert.Zero(t, o.Families)
	assert.Zero(t, o.Datasets)
}
