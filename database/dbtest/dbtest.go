// Package dbtest starts a disposable Postgres container for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/irsalhamdi/e-commerce-cart/config"
	"github.com/irsalhamdi/e-commerce-cart/database"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	image    = "postgres"
	tag      = "15-alpine"
	password = "postgres"
	user     = "postgres"
)

// DB is a migrated database living in its own container.
type DB struct {
	*sqlx.DB
	pool     *dockertest.Pool
	resource *dockertest.Resource
}

// New starts a container, applies migrations and registers cleanup on t.
// The test is skipped when no Docker daemon is reachable.
func New(t testing.TB, name string) *DB {
	t.Helper()

	db, err := Start(name)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("closing test database: %v", err)
		}
	})
	return db
}

// Start is New without a testing.TB, for suites that manage their own
// lifecycle.
func Start(name string) (*DB, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("connecting to docker: %w", err)
	}
	if err := pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("pinging docker: %w", err)
	}

	opts := &dockertest.RunOptions{
		Repository: image,
		Tag:        tag,
		Env: []string{
			"POSTGRES_USER=" + user,
			"POSTGRES_PASSWORD=" + password,
			"POSTGRES_DB=" + name,
			"listen_addresses='*'",
		},
	}
	resource, err := pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("starting postgres: %w", err)
	}
	_ = resource.Expire(180)

	cfg := config.DB{
		User:         user,
		Password:     password,
		Host:         "localhost",
		Port:         resource.GetPort("5432/tcp"),
		Name:         name,
		MaxIdleConns: 2,
		DisableTLS:   true,
	}

	var db *sqlx.DB
	pool.MaxWait = 90 * time.Second
	err = pool.Retry(func() error {
		var err error
		if db, err = database.Open(cfg); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return database.StatusCheck(ctx, db)
	})
	if err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("waiting for postgres: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		_ = pool.Purge(resource)
		return nil, err
	}

	return &DB{DB: db, pool: pool, resource: resource}, nil
}

// Close closes the connection pool and removes the container.
func (d *DB) Close() error {
	_ = d.DB.Close()
	return d.pool.Purge(d.resource)
}

// Truncate empties every application table.
func (d *DB) Truncate(ctx context.Context) error {
	_, err := d.ExecContext(ctx, `TRUNCATE prods_cart, temp_cart, users, quantity, prods_info, prods CASCADE`)
	return err
}
