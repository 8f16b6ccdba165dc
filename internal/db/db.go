// internal/db/db.go
package db

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/backlinkoo/backlinkoo-backend/internal/config"
)

// Open connects to postgres and applies pending migrations. The returned
// handle is owned by the caller; nothing here keeps package-level state.
func Open(cfg *config.Config) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	version, dirty, err := RunMigrations(conn)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Connected to database (schema version %d, dirty=%v)", version, dirty)

	return conn, nil
}
