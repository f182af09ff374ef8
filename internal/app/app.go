// Package app provides application-level wiring for the sample tracking
// core: it connects the metastore pools, repositories, and services into
// a single dependency graph.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"sampletrack/internal/config"
	"sampletrack/internal/db"
	"sampletrack/internal/db/repository"
	"sampletrack/internal/domain"
	"sampletrack/internal/service"
)

// Deps holds the external dependencies that main() must provide.
// These are things the app package cannot (or should not) create itself:
// database handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups all service pointers an outer surface (HTTP handlers,
// workers) would need.
type Services struct {
	Family       *service.FamilyService
	Participant  *service.ParticipantService
	TissueSample *service.TissueSampleService
	Dataset      *service.DatasetService
	Analysis     *service.AnalysisService
	Pipeline     *service.PipelineService
	User         *service.UserService
	Group        *service.GroupService
	GeneReport   *service.GeneReportService
	Overview     *service.OverviewService
	Audit        *service.AuditService
}

// App holds the fully-wired application.
type App struct {
	Services       Services
	Resolver       *service.VisibilityResolver
	Classification *domain.Classification
}

// New wires all repositories and services from the provided deps. It runs
// pending migrations against the write pool and loads the classification
// table before constructing anything that depends on it.
func New(deps Deps) (*App, error) {
	if err := db.RunMigrations(deps.WriteDB); err != nil {
		return nil, fmt.Errorf("migrate metastore: %w", err)
	}

	classification, err := config.LoadClassification(deps.Cfg.ClassificationPath)
	if err != nil {
		return nil, fmt.Errorf("load classification table: %w", err)
	}

	// === Repositories (write-pool) ===
	userRepo := repository.NewUserRepo(deps.WriteDB)
	groupRepo := repository.NewGroupRepo(deps.WriteDB)
	familyRepo := repository.NewFamilyRepo(deps.WriteDB)
	participantRepo := repository.NewParticipantRepo(deps.WriteDB)
	sampleRepo := repository.NewTissueSampleRepo(deps.WriteDB)
	datasetRepo := repository.NewDatasetRepo(deps.WriteDB)
	analysisRepo := repository.NewAnalysisRepo(deps.WriteDB)
	pipelineRepo := repository.NewPipelineRepo(deps.WriteDB)
	auditRepo := repository.NewAuditRepo(deps.WriteDB)

	// === Repositories (read-pool) ===
	// The overview fans its count queries out concurrently, so it gets
	// read-pool repos instead of sharing the single write connection.
	variantRepo := repository.NewVariantRepo(deps.ReadDB)
	familyReadRepo := repository.NewFamilyRepo(deps.ReadDB)
	participantReadRepo := repository.NewParticipantRepo(deps.ReadDB)
	datasetReadRepo := repository.NewDatasetRepo(deps.ReadDB)
	analysisReadRepo := repository.NewAnalysisRepo(deps.ReadDB)

	// === Cross-cutting ===
	resolver := service.NewVisibilityResolver(userRepo)
	auditSvc := service.NewAuditService(auditRepo, deps.Logger.With("component", "audit"))
	compat := service.NewCompatibilityValidator(datasetRepo, pipelineRepo, classification)

	// === Core services ===
	familySvc := service.NewFamilyService(resolver, familyRepo, auditSvc)
	participantSvc := service.NewParticipantService(resolver, participantRepo, familyRepo, auditSvc)
	sampleSvc := service.NewTissueSampleService(resolver, sampleRepo, participantRepo, auditSvc)
	datasetSvc := service.NewDatasetService(resolver, datasetRepo, sampleRepo, auditSvc)
	analysisSvc := service.NewAnalysisService(resolver, analysisRepo, userRepo, compat, auditSvc)
	pipelineSvc := service.NewPipelineService(pipelineRepo, classification, auditSvc)
	userSvc := service.NewUserService(userRepo, auditSvc)
	groupSvc := service.NewGroupService(groupRepo, auditSvc)
	geneReportSvc := service.NewGeneReportService(resolver, variantRepo)
	overviewSvc := service.NewOverviewService(resolver, familyReadRepo, participantReadRepo, datasetReadRepo, analysisReadRepo)

	return &App{
		Services: Services{
			Family:       familySvc,
			Participant:  participantSvc,
			TissueSample: sampleSvc,
			Dataset:      datasetSvc,
			Analysis:     analysisSvc,
			Pipeline:     pipelineSvc,
			User:         userSvc,
			Group:        groupSvc,
			GeneReport:   geneReportSvc,
			Overview:     overviewSvc,
			Audit:        auditSvc,
		},
		Resolver:       resolver,
		Classification: classification,
	}, nil
}

// Open is a convenience for main(): it loads config from the environment,
// opens the SQLite metastore pools, and wires the app. The caller owns the
// returned pools and must close them.
func Open(logger *slog.Logger) (*App, *sql.DB, *sql.DB, error) {
	cfg := config.LoadFromEnv()
	if cfg.MetaDBPath == "" {
		return nil, nil, nil, fmt.Errorf("META_DB_PATH is required")
	}

	writeDB, readDB, err := db.OpenSQLitePair(cfg.MetaDBPath, 0)
	if err != nil {
		return nil, nil, nil, err
	}

	a, err := New(Deps{Cfg: cfg, WriteDB: writeDB, ReadDB: readDB, Logger: logger})
	if err != nil {
		_ = writeDB.Close()
		_ = readDB.Close()
		return nil, nil, nil, err
	}

	return a, writeDB, readDB, nil
}
