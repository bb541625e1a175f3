// Package wire provides dependency injection for the TPC server.
// Repositories and services are constructed explicitly around one
// shared database handle so tests can build isolated instances.
package wire

import (
	"database/sql"

	"github.com/example/tpc/internal/adapters/sqlite"
	"github.com/example/tpc/internal/app"
	"github.com/example/tpc/internal/ports/primary"
)

// Services bundles the constructed primary-port services.
type Services struct {
	Plans    primary.PlanService
	Thoughts primary.ThoughtService
	Search   primary.SearchService
	Context  primary.ContextService
}

// Build constructs all services on top of the given database handle.
func Build(database *sql.DB) *Services {
	// Repository adapters (secondary ports)
	planRepo := sqlite.NewPlanRepository(database)
	thoughtRepo := sqlite.NewThoughtRepository(database)
	searchRepo := sqlite.NewSearchRepository(database)

	// Services (primary ports implementation)
	return &Services{
		Plans:    app.NewPlanService(planRepo),
		Thoughts: app.NewThoughtService(thoughtRepo),
		Search:   app.NewSearchService(searchRepo),
		Context:  app.NewContextService(planRepo, thoughtRepo),
	}
}
