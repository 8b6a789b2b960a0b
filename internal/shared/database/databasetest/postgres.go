//go:build integration

// Package databasetest starts a disposable PostgreSQL for repository tests.
package databasetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/unishowcase/server/internal/shared/config"
	"github.com/unishowcase/server/internal/shared/database"
	"gorm.io/gorm"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresPort     = "5432/tcp"
	postgresUser     = "showcase"
	postgresPassword = "showcase"
	postgresDB       = "showcase_test"
)

// NewPostgres starts PostgreSQL, runs migrations and returns a connection.
// The container is terminated when the test finishes.
func NewPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{postgresPort},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		container.Terminate(context.Background()) //nolint:errcheck
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		t.Fatalf("get mapped port: %v", err)
	}

	db, err := database.New(&config.DatabaseConfig{
		Host:         host,
		Port:         port.Int(),
		User:         postgresUser,
		Password:     postgresPassword,
		Database:     postgresDB,
		SSLMode:      "disable",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
	}, nil)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

// Truncate empties the given tables between subtests.
func Truncate(t *testing.T, db *gorm.DB, tables ...string) {
	t.Helper()
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
}
