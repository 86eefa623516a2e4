// Package wire provides dependency injection for the census application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/census/internal/adapters/sqlite"
	"github.com/example/census/internal/app"
	"github.com/example/census/internal/config"
	"github.com/example/census/internal/db"
	"github.com/example/census/internal/id"
	"github.com/example/census/internal/ports/primary"
)

var (
	ingestService primary.IngestService
	queryService  primary.QueryService
	once          sync.Once
)

// IngestService returns the singleton IngestService instance.
func IngestService() primary.IngestService {
	once.Do(initServices)
	return ingestService
}

// QueryService returns the singleton QueryService instance.
func QueryService() primary.QueryService {
	once.Do(initServices)
	return queryService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := id.Init(cfg.NodeID); err != nil {
		log.Fatalf("failed to initialize id generation: %v", err)
	}

	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	organizationRepo := sqlite.NewOrganizationRepository(database)
	eyeColorRepo := sqlite.NewEyeColorRepository(database)
	genderRepo := sqlite.NewGenderRepository(database)
	tagRepo := sqlite.NewTagRepository(database)
	foodRepo := sqlite.NewFoodRepository(database)
	individualRepo := sqlite.NewIndividualRepository(database)
	snapshotRepo := sqlite.NewSnapshotRepository(database)

	// Create services (primary ports implementation)
	ingestService = app.NewIngestService(organizationRepo, eyeColorRepo, genderRepo, tagRepo, foodRepo, individualRepo, snapshotRepo)
	queryService = app.NewQueryService(organizationRepo, eyeColorRepo, genderRepo, tagRepo, foodRepo, individualRepo, snapshotRepo)
}
