package probes

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const postgresTimeout = 5 * time.Second

// PostgresProbe verifies connectivity to the configured PostgreSQL
// instance with a trivial round-trip query.
type PostgresProbe struct {
	host     string
	port     string
	name     string
	user     string
	password string
}

func NewPostgresProbe(cfg Settings) *PostgresProbe {
	return &PostgresProbe{
		host:     cfg.DatabaseHost,
		port:     cfg.DatabasePort,
		name:     cfg.DatabaseName,
		user:     cfg.DatabaseUser,
		password: cfg.DatabasePassword,
	}
}

func (p *PostgresProbe) Service() string { return "PostgreSQL Database" }

// Eligible requires host, name, user and password to all be present.
// A partially configured database is skipped, never attempted.
func (p *PostgresProbe) Eligible() bool {
	return p.host != "" && p.name != "" && p.user != "" && p.password != ""
}

// Execute opens a fresh connection, runs SELECT NOW() and closes the
// connection on every path. sslmode=require encrypts the session
// without CA verification; internal deployments run self-signed
// certificates.
func (p *PostgresProbe) Execute(ctx context.Context) Result {
	connStr := fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=require connect_timeout=5",
		p.host, p.port, p.name, p.user, p.password,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return p.failed(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, postgresTimeout)
	defer cancel()

	var serverTime time.Time
	if err := db.QueryRowContext(ctx, "SELECT NOW()").Scan(&serverTime); err != nil {
		return p.failed(err)
	}

	return success(p.Service(), "Database connection successful", map[string]interface{}{
		"connected":  true,
		"serverTime": serverTime.Format(time.RFC3339),
	})
}

// failed reports a generic diagnostic; the connection string itself
// never leaves the probe.
func (p *PostgresProbe) failed(err error) Result {
	return failure(p.Service(), "Database connection failed", map[string]interface{}{
		"connected": false,
		"error":     err.Error(),
	})
}
