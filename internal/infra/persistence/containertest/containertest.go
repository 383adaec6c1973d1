// Package containertest starts throwaway database containers for adapter tests.
// Each container is started once per test binary and shared by its tests.
// Tests are skipped under -short or when no container runtime is reachable.
package containertest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"usersvc/internal/errors"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const startupTimeout = 90 * time.Second

type sharedEndpoint struct {
	once     sync.Once
	endpoint string
	err      error
}

var (
	postgresEndpoint sharedEndpoint
	mongoEndpoint    sharedEndpoint
	redisEndpoint    sharedEndpoint
)

// PostgresDSN returns a DSN for a PostgreSQL 16 server. The cluster uses a
// UTF-8 glibc locale so lower() folds non-ASCII letters.
func PostgresDSN(t *testing.T) string {
	t.Helper()

	return postgresEndpoint.get(t, func(ctx context.Context) (string, error) {
		hostPort, err := start(ctx, testcontainers.ContainerRequest{
			Image:        "postgres:16",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":        "usersvc",
				"POSTGRES_PASSWORD":    "usersvc",
				"POSTGRES_DB":          "usersvc",
				"POSTGRES_INITDB_ARGS": "--encoding=UTF8 --locale=en_US.UTF-8",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(startupTimeout),
		}, "5432")
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("postgres://usersvc:usersvc@%s/usersvc?sslmode=disable", hostPort), nil
	})
}

// MongoURI returns a connection URI for a MongoDB 8 server.
func MongoURI(t *testing.T) string {
	t.Helper()

	return mongoEndpoint.get(t, func(ctx context.Context) (string, error) {
		hostPort, err := start(ctx, testcontainers.ContainerRequest{
			Image:        "mongo:8",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(startupTimeout),
		}, "27017")
		if err != nil {
			return "", err
		}

		return "mongodb://" + hostPort, nil
	})
}

// RedisAddr returns the host:port of a Redis 7 server.
func RedisAddr(t *testing.T) string {
	t.Helper()

	return redisEndpoint.get(t, func(ctx context.Context) (string, error) {
		return start(ctx, testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForLog("Ready to accept connections"),
				wait.ForListeningPort("6379/tcp"),
			).WithDeadline(startupTimeout),
		}, "6379")
	})
}

func (s *sharedEndpoint) get(t *testing.T, startFn func(ctx context.Context) (string, error)) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()

		s.endpoint, s.err = startFn(ctx)
	})
	if s.err != nil {
		t.Skipf("container unavailable: %v", s.err)
	}

	return s.endpoint
}

// start runs req and returns the host:port mapped to containerPort.
// The container is reaped by testcontainers when the test binary exits.
func start(ctx context.Context, req testcontainers.ContainerRequest, containerPort nat.Port) (string, error) {
	cont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to start %s container", req.Image)
	}

	host, err := cont.Host(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get container host")
	}

	port, err := cont.MappedPort(ctx, containerPort)
	if err != nil {
		return "", errors.Wrap(err, "failed to get container port")
	}

	return fmt.Sprintf("%s:%s", host, port.Port()), nil
}
