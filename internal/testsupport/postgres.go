//go:build integration

package testsupport

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"orgcatalog.app/catalog/core/db"
)

// Postgres is a migrated throwaway database.
type Postgres struct {
	DB        *db.DB
	container *postgrescontainer.PostgresContainer
}

// StartPostgres launches a Postgres container and applies the catalog migrations.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("organization_catalog"),
		postgrescontainer.WithUsername("catalog"),
		postgrescontainer.WithPassword("catalog"),
		postgrescontainer.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("starting postgres container: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(pg)
		return nil, fmt.Errorf("postgres connection string: %w", err)
	}

	database, err := db.New(ctx, db.Config{DSN: dsn})
	if err != nil {
		_ = testcontainers.TerminateContainer(pg)
		return nil, err
	}

	if err := database.Migrate(ctx); err != nil {
		database.Close()
		_ = testcontainers.TerminateContainer(pg)
		return nil, err
	}

	return &Postgres{DB: database, container: pg}, nil
}

// Reset empties every catalog table.
func (p *Postgres) Reset(ctx context.Context) error {
	_, err := p.DB.Pool().Exec(ctx, `TRUNCATE organization_activity, organizations, activities, buildings`)
	return err
}

func (p *Postgres) Stop() error {
	p.DB.Close()
	return testcontainers.TerminateContainer(p.container)
}
