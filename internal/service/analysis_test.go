package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sampletrack/internal/domain"
)

func TestAnalysisService_Create(t *testing.T) {
	e := newTestEnv(t)

	a, err := e.analyses.Create(e.aliceCtx(), &domain.CreateAnalysisRequest{
		DatasetIDs: []int64{e.d1},
		PipelineID: genomePipeline,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisRequested, a.State)
	assert.Equal(t, e.aliceID, a.RequesterID)
	assert.Equal(t, []int64{e.d1}, a.DatasetIDs)
	assert.False(t, a.RequestedAt.IsZero())
}

func TestAnalysisService_Create_IncompatiblePipeline(t *testing.T) {
	e := newTestEnv(t)

	// d2 is WES (exome); the genome pipeline cannot run it.
	_, err := e.analyses.Create(e.aliceCtx(), &domain.CreateAnalysisRequest{
		DatasetIDs: []int64{e.d2},
		PipelineID: genomePipeline,
	})
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestAnalysisService_Create_MixedDatasets(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.analyses.Create(e.aliceCtx(), &domain.CreateAnalysisRequest{
		DatasetIDs: []int64{e.d1, e.d2},
		PipelineID: genomePipeline,
	})
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestAnalysisService_Create_InvisibleDatasetIsNotFound(t *testing.T) {
	e := newTestEnv(t)

	// d3 belongs to bob's group; for alice it must look absent, not forbidden.
	_, err := e.analyses.Create(e.aliceCtx(), &domain.CreateAnalysisRequest{
		DatasetIDs: []int64{e.d3},
		PipelineID: genomePipeline,
	})
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAnalysisService_VisibleThroughAnyDataset(t *testing.T) {
	e := newTestEnv(t)

	// Admin runs one analysis over datasets from both groups.
	a, err := e.analyses.Create(e.adminCtx(), &domain.CreateAnalysisRequest{
		DatasetIDs: []int64{e.d1, e.d3},
		PipelineID: genomePipeline,
	})
	require.NoError(t, err)

	// Both alice and bob reach it through their own dataset.
	got, err := e.analyses.Get(e.aliceCtx(), domain.ScopeOptions{}, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	got, err = e.analyses.Get(e.bobCtx(), domain.ScopeOptions{}, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	// A user with no groups sees nothing.
	_, err = e.analyses.Get(e.grouplessCtx(), domain.ScopeOptions{}, a.ID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	// List agrees with Get for every caller.
	cases := []struct {
		name string
		ctx  context.Context
		want int
	}{
		{"alice", e.aliceCtx(), 1},
		{"bob", e.bobCtx(), 1},
		{"groupless", e.grouplessCtx(), 0},
	}
	for _, tc := range cases {
		list, total, err := e.analyses.List(tc.ctx, domain.ScopeOptions{}, domain.AnalysisFilter{})
		require.NoError(t, err, tc.name)
		assert.Len(t, list, tc.want, tc.name)
		assert.Equal(t, int64(tc.want), total, tc.name)
	}
}

func TestAnalysisService_NonAdminCancelOnly(t *testing.T) {
	e := newTestEnv(t)

	a, err := e.analyses.Create(e.aliceCtx(), &domain.CreateAnalysisRequest{
		DatasetIDs: []int64{e.d1},
		PipelineID: genomePipeline,
	})
	require.NoError(t, err)

	// Alice cannot start her own analysis.
	_, err = e.analyses.Update(e.aliceCtx(), a.ID, &domain.UpdateAnalysisRequest{
		State: strPtr("Running"),
	})
	var accessDenied *domain.AccessDeniedError
	assert.ErrorAs(t, err, &accessDenied)

	// But she can cancel it, and the finish time is stamped.
	got, err := e.analyses.Update(e.aliceCtx(), a.ID, &domain.UpdateAnalysisRequest{
		State: strPtr("Cancelled"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisCancelled, got.State)
	assert.NotNil(t, got.FinishedAt)
}

func TestAnalysisService_AdminDrivesStateMachine(t *testing.T) {
	e := newTestEnv(t)

	a, err := e.analyses.Create(e.aliceCtx(), &domain.CreateAnalysisRequest{
		DatasetIDs: []int64{e.d1},
		PipelineID: genomePipeline,
	})
	require.NoError(t, err)

	got, err := e.analyses.Update(e.adminCtx(), a.ID, &domain.UpdateAnalysisRequest{
		State:            strPtr("Running"),
		AssigneeUsername: strPtr("bob"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisRunning, got.State)
	require.NotNil(t, got.AssigneeID)
	assert.Equal(t, e.bobID, *got.AssigneeID)
	assert.NotNil(t, got.StartedAt)

	got, err = e.analyses.Update(e.adminCtx(), a.ID, &domain.UpdateAnalysisRequest{
		State:            strPtr("Done"),
		ResultPath:       strPtr("/results/a1"),
		AssigneeUsername: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisDone, got.State)
	assert.Nil(t, got.AssigneeID)
	assert.NotNil(t, got.FinishedAt)
}

func TestAnalysisService_Update_UnknownState(t *testing.T) {
	e := newTestEnv(t)

	a, err := e.analyses.Create(e.aliceCtx(), &domain.CreateAnalysisRequest{
		DatasetIDs: []int64{e.d1},
		PipelineID: genomePipeline,
	})
	require.NoError(t, err)

	_, err = e.analyses.Update(e.adminCtx(), a.ID, &domain.UpdateAnalysisRequest{
		State: strPtr("Paused"),
	})
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestAnalysisService_DeleteAdminOnly(t *testing.T) {
	e := newTestEnv(t)

	a, err := e.analyses.Create(e.aliceCtx(), &domain.CreateAnalysisRequest{
		DatasetIDs: []int64{e.d1},
		PipelineID: genomePipeline,
	})
	require.NoError(t, err)

	err = e.analyses.Delete(e.aliceCtx(), a.ID)
	var accessDenied *domain.AccessDeniedError
	assert.ErrorAs(t, err, &accessDenied)

	require.NoError(t, e.analyses.Delete(e.adminCtx(), a.ID))
	_, err = e.analyses.Get(e.adminCtx(), domain.ScopeOptions{}, a.ID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAnalysisRepo_CreateIsAtomic(t *testing.T) {
	e := newTestEnv(t)

	// A link row naming a dataset that does not exist fails the foreign key
	// check mid-transaction; the analysis row must roll back with it.
	_, err := e.analysisRepo.Create(e.adminCtx(), &domain.Analysis{
		PipelineID:  genomePipeline,
		State:       domain.AnalysisRequested,
		RequesterID: e.adminID,
		UpdatedBy:   e.adminID,
		DatasetIDs:  []int64{e.d1, 99999},
	})
	require.Error(t, err)

	var analyses, links int64
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM analyses`).Scan(&analyses))
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM dataset_analyses`).Scan(&links))
	assert.Zero(t, analyses)
	assert.Zero(t, links)
}

func TestAnalysisService_CompatiblePipelinesScoped(t *testing.T) {
	e := newTestEnv(t)

	pipelines, err := e.analyses.CompatiblePipelines(e.aliceCtx(), domain.ScopeOptions{}, []int64{e.d1})
	require.NoError(t, err)
	require.Len(t, pipelines, 1)
	assert.Equal(t, genomePipeline, pipelines[0].ID)

	// An invisible dataset resolves to NotFound, same as everywhere else.
	_, err = e.analyses.CompatiblePipelines(e.aliceCtx(), domain.ScopeOptions{}, []int64{e.d3})
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
