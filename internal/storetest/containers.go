//go:build integration

package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/at-ishikawa/penguins/internal/config"
	"github.com/at-ishikawa/penguins/internal/store"
)

// NewPostgres starts a disposable PostgreSQL container and returns a migrated store over it.
func NewPostgres(t testing.TB, opts ...store.Option) *store.Store {
	t.Helper()
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "penguins",
			"POSTGRES_PASSWORD": "penguins",
			"POSTGRES_DB":       "penguins",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	}, "5432")

	return open(t, config.DatabaseConfig{
		Driver:         config.DriverPostgres,
		Host:           host,
		Port:           port,
		Database:       "penguins",
		Username:       "penguins",
		Password:       "penguins",
		MaxOpenConns:   4,
		AcquireTimeout: 5 * time.Second,
		AutoMigrate:    true,
	}, opts...)
}

// NewMySQL starts a disposable MySQL container and returns a migrated store over it.
func NewMySQL(t testing.TB, opts ...store.Option) *store.Store {
	t.Helper()
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mysql:8.4",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "penguins",
			"MYSQL_USER":          "penguins",
			"MYSQL_PASSWORD":      "penguins",
			"MYSQL_DATABASE":      "penguins",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").
			WithStartupTimeout(2 * time.Minute),
	}, "3306")

	return open(t, config.DatabaseConfig{
		Driver:         config.DriverMySQL,
		Host:           host,
		Port:           port,
		Database:       "penguins",
		Username:       "penguins",
		Password:       "penguins",
		MaxOpenConns:   4,
		AcquireTimeout: 5 * time.Second,
		AutoMigrate:    true,
	}, opts...)
}

func startContainer(t testing.TB, req testcontainers.ContainerRequest, port string) (string, int) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, fmt.Sprintf("failed to start %s", req.Image))
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, mapped.Int()
}
