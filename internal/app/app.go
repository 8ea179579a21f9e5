package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/org-directory/internal/config"
	"github.com/riskibarqy/org-directory/internal/domain/role"
	"github.com/riskibarqy/org-directory/internal/domain/team"
	cacherepo "github.com/riskibarqy/org-directory/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/org-directory/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/org-directory/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/org-directory/internal/platform/cache"
	idgen "github.com/riskibarqy/org-directory/internal/platform/id"
	"github.com/riskibarqy/org-directory/internal/platform/logging"
	"github.com/riskibarqy/org-directory/internal/platform/resilience"
	"github.com/riskibarqy/org-directory/internal/usecase"
)

// Directory is the wired object graph shared by the binaries.
type Directory struct {
	Roles   role.Repository
	Teams   team.Repository
	Service *usecase.DirectoryService

	db *sqlx.DB
}

// NewDirectory builds repositories for cfg.DBDriver, wraps them with the
// read cache when enabled and hands them to the directory service.
func NewDirectory(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Directory, error) {
	d := &Directory{}

	switch cfg.DBDriver {
	case config.DBDriverMemory:
		seed := memory.SeedDirectory()
		d.Roles = memory.NewRoleRepository(logger, seed.Roles, seed.Assignments)
		d.Teams = memory.NewTeamRepository(logger, seed.Teams, seed.Employees, seed.Memberships)
	case config.DBDriverPostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		d.db = db

		breaker := resilience.NewCircuitBreakerFromConfig(cfg.DBCircuitBreaker())
		opts := []postgres.Option{
			postgres.WithLogger(logger),
			postgres.WithCircuitBreaker(breaker),
		}
		d.Roles = postgres.NewRoleRepository(db, opts...)
		d.Teams = postgres.NewTeamRepository(db, opts...)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		d.Roles = cacherepo.NewRoleRepository(d.Roles, store)
		d.Teams = cacherepo.NewTeamRepository(d.Teams, store)
	}

	d.Service = usecase.NewDirectoryService(d.Roles, d.Teams, idgen.NewRandomGenerator(), logger)
	return d, nil
}

func (d *Directory) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}
