package service

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"sampletrack/internal/config"
	internaldb "sampletrack/internal/db"
	"sampletrack/internal/db/repository"
	"sampletrack/internal/domain"
)

// testEnv wires every service against a real migrated SQLite database plus
// a canonical seed:
//
//	groups:   g1, g2
//	users:    admin (1), alice (2, member of g1), bob (3, member of g2)
//	family:   F0001 > participant P0001 > tissue sample S1
//	datasets: D1 WGS (g1), D2 WES (g1), D3 WGS (g2)
//	pipelines: 1 genome, 2 exome, 3 rna
type testEnv struct {
	db *sql.DB

	users        *UserService
	groups       *GroupService
	families     *FamilyService
	participants *ParticipantService
	samples      *TissueSampleService
	datasets     *DatasetService
	analyses     *AnalysisService
	pipelines    *PipelineService
	report       *GeneReportService
	overview     *OverviewService
	audit        *AuditService
	resolver     *VisibilityResolver

	analysisRepo domain.AnalysisRepository

	adminID, aliceID, bobID int64
	g1, g2                  int64
	familyID                int64
	participantID           int64
	sampleID                int64
	d1, d2, d3              int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	writeDB, _ := internaldb.OpenTestSQLite(t)

	classification, err := config.LoadClassification("")
	require.NoError(t, err)

	userRepo := repository.NewUserRepo(writeDB)
	groupRepo := repository.NewGroupRepo(writeDB)
	familyRepo := repository.NewFamilyRepo(writeDB)
	participantRepo := repository.NewParticipantRepo(writeDB)
	sampleRepo := repository.NewTissueSampleRepo(writeDB)
	datasetRepo := repository.NewDatasetRepo(writeDB)
	analysisRepo := repository.NewAnalysisRepo(writeDB)
	pipelineRepo := repository.NewPipelineRepo(writeDB)
	variantRepo := repository.NewVariantRepo(writeDB)
	auditRepo := repository.NewAuditRepo(writeDB)

	resolver := NewVisibilityResolver(userRepo)
	audit := NewAuditService(auditRepo, slog.New(slog.DiscardHandler))
	compat := NewCompatibilityValidator(datasetRepo, pipelineRepo, classification)

	e := &testEnv{
		db:           writeDB,
		users:        NewUserService(userRepo, audit),
		groups:       NewGroupService(groupRepo, audit),
		families:     NewFamilyService(resolver, familyRepo, audit),
		participants: NewParticipantService(resolver, participantRepo, familyRepo, audit),
		samples:      NewTissueSampleService(resolver, sampleRepo, participantRepo, audit),
		datasets:     NewDatasetService(resolver, datasetRepo, sampleRepo, audit),
		analyses:     NewAnalysisService(resolver, analysisRepo, userRepo, compat, audit),
		pipelines:    NewPipelineService(pipelineRepo, classification, audit),
		report:       NewGeneReportService(resolver, variantRepo),
		overview:     NewOverviewService(resolver, familyRepo, participantRepo, datasetRepo, analysisRepo),
		audit:        audit,
		resolver:     resolver,
		analysisRepo: analysisRepo,
	}
	e.seed(t, userRepo, groupRepo, pipelineRepo)
	return e
}

func (e *testEnv) seed(t *testing.T, users domain.UserRepository, groups domain.GroupRepository, pipelines domain.PipelineRepository) {
	t.Helper()
	ctx := context.Background()

	admin, err := users.Create(ctx, &domain.User{Username: "admin", Email: "admin@lab.test", IsAdmin: true})
	require.NoError(t, err)
	alice, err := users.Create(ctx, &domain.User{Username: "alice", Email: "alice@lab.test"})
	require.NoError(t, err)
	bob, err := users.Create(ctx, &domain.User{Username: "bob", Email: "bob@lab.test"})
	require.NoError(t, err)
	e.adminID, e.aliceID, e.bobID = admin.ID, alice.ID, bob.ID

	g1, err := groups.Create(ctx, &domain.Group{Code: "g1", Name: "Group One"})
	require.NoError(t, err)
	g2, err := groups.Create(ctx, &domain.Group{Code: "g2", Name: "Group Two"})
	require.NoError(t, err)
	e.g1, e.g2 = g1.ID, g2.ID
	require.NoError(t, groups.AddMember(ctx, e.g1, e.aliceID))
	require.NoError(t, groups.AddMember(ctx, e.g2, e.bobID))

	for _, p := range []domain.Pipeline{
		{Name: "genome-align", Version: "1.0"},
		{Name: "exome-align", Version: "1.0"},
		{Name: "rna-quant", Version: "1.0"},
	} {
		_, err := pipelines.Create(ctx, &p)
		require.NoError(t, err)
	}

	fam, err := e.families.Create(e.adminCtx(), &domain.CreateFamilyRequest{Codename: "F0001"})
	require.NoError(t, err)
	e.familyID = fam.ID

	part, err := e.participants.Create(e.adminCtx(), &domain.CreateParticipantRequest{
		FamilyID: fam.ID,
		Codename: "P0001",
		Sex:      "Female",
		Type:     "Proband",
		Affected: true,
	})
	require.NoError(t, err)
	e.participantID = part.ID

	sample, err := e.samples.Create(e.adminCtx(), &domain.CreateTissueSampleRequest{
		ParticipantID: part.ID,
		Type:          "Blood",
	})
	require.NoError(t, err)
	e.sampleID = sample.ID

	e.d1 = e.createDataset(t, "WGS", e.g1)
	e.d2 = e.createDataset(t, "WES", e.g1)
	e.d3 = e.createDataset(t, "WGS", e.g2)
}

func (e *testEnv) createDataset(t *testing.T, datasetType string, groupIDs ...int64) int64 {
	t.Helper()
	d, err := e.datasets.Create(e.adminCtx(), &domain.CreateDatasetRequest{
		TissueSampleID:   e.sampleID,
		Type:             datasetType,
		Condition:        "GermLine",
		InputPath:        "/data/" + datasetType,
		SequencingCentre: "TCAG",
		GroupIDs:         groupIDs,
	})
	require.NoError(t, err)
	return d.ID
}

func (e *testEnv) insertVariant(t *testing.T, datasetID int64, gene string) {
	t.Helper()
	_, err := e.db.Exec(
		`INSERT INTO variants (dataset_id, gene, position, reference_allele, alt_allele)
		 VALUES (?, ?, ?, ?, ?)`,
		datasetID, gene, "chr1:12345", "A", "T")
	require.NoError(t, err)
}

func (e *testEnv) adminCtx() context.Context {
	return domain.WithPrincipal(context.Background(), domain.ContextPrincipal{
		ID: e.adminID, Username: "admin", IsAdmin: true,
	})
}

func (e *testEnv) aliceCtx() context.Context {
	return domain.WithPrincipal(context.Background(), domain.ContextPrincipal{
		ID: e.aliceID, Username: "alice", GroupIDs: []int64{e.g1},
	})
}

func (e *testEnv) bobCtx() context.Context {
	return domain.WithPrincipal(context.Background(), domain.ContextPrincipal{
		ID: e.bobID, Username: "bob", GroupIDs: []int64{e.g2},
	})
}

// groupless is an authenticated user who belongs to no group at all.
func (e *testEnv) grouplessCtx() context.Context {
	return domain.WithPrincipal(context.Background(), domain.ContextPrincipal{
		ID: 99, Username: "loner",
	})
}

func int64Ptr(i int64) *int64 { return &i }
func strPtr(s string) *string { return &s }
