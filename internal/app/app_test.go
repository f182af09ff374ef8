package app

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sampletrack/internal/config"
	"sampletrack/internal/db"
	"sampletrack/internal/domain"
)

func TestNew_WiresAllServices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.sqlite")
	writeDB, readDB, err := db.OpenSQLitePair(path, 2)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = readDB.Close()
		_ = writeDB.Close()
	})

	a, err := New(Deps{
		Cfg:     &config.Config{MetaDBPath: path},
		WriteDB: writeDB,
		ReadDB:  readDB,
		Logger:  slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err)

	require.NotNil(t, a.Services.Family)
	require.NotNil(t, a.Services.Participant)
	require.NotNil(t, a.Services.TissueSample)
	require.NotNil(t, a.Services.Dataset)
	require.NotNil(t, a.Services.Analysis)
	require.NotNil(t, a.Services.Pipeline)
	require.NotNil(t, a.Services.User)
	require.NotNil(t, a.Services.Group)
	require.NotNil(t, a.Services.GeneReport)
	require.NotNil(t, a.Services.Overview)
	require.NotNil(t, a.Services.Audit)
	require.NotNil(t, a.Resolver)

	// Embedded classification table should back the default wiring.
	require.NotEmpty(t, a.Classification.PipelineIDs())

	// The overview is served by the read pool; counting against the freshly
	// migrated metastore proves that pool sees the schema the write pool built.
	ctx := domain.WithPrincipal(t.Context(), domain.ContextPrincipal{ID: 1, Username: "admin", IsAdmin: true})
	counts, err := a.Services.Overview.Counts(ctx, domain.ScopeOptions{})
	require.NoError(t, err)
	require.Zero(t, counts.Families)
	require.Zero(t, counts.Analyses)
}

func TestNew_BadClassificationPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.sqlite")
	writeDB, readDB, err := db.OpenSQLitePair(path, 2)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = readDB.Close()
		_ = writeDB.Close()
	})

	_, err = New(Deps{
		Cfg:     &config.Config{MetaDBPath: path, ClassificationPath: filepath.Join(t.TempDir(), "missing.yaml")},
		WriteDB: writeDB,
		ReadDB:  readDB,
		Logger:  slog.New(slog.DiscardHandler),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "classification")
}
