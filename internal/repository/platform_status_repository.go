package repository

import (
	"database/sql"
	"time"
)

// PlatformStatusRepositoryInterface exposes the read-only exclusion inputs
// to platform selection. The rows themselves are written by monitoring
// logic outside this service.
type PlatformStatusRepositoryInterface interface {
	// ActiveBlacklist returns platform IDs with an active blacklist entry.
	ActiveBlacklist() ([]string, error)
	// ActiveDisables returns platform IDs with an active, unexpired
	// temporary-disable entry as of now.
	ActiveDisables(now time.Time) ([]string, error)
}

type PlatformStatusRepository struct {
	DB *sql.DB
}

func (r *PlatformStatusRepository) ActiveBlacklist() ([]string, error) {
	query := `SELECT DISTINCT platform_id FROM platform_blacklist WHERE active=TRUE`
	return r.scanIDs(r.DB.Query(query))
}

func (r *PlatformStatusRepository) ActiveDisables(now time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT platform_id FROM platform_disables
		WHERE active=TRUE AND (disabled_until IS NULL OR disabled_until > $1)
	`
	return r.scanIDs(r.DB.Query(query, now))
}

func (r *PlatformStatusRepository) scanIDs(rows *sql.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

var _ PlatformStatusRepositoryInterface = (*PlatformStatusRepository)(nil)
