package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/backlinkoo/backlinkoo-backend/internal/model"
)

type AttemptRepositoryInterface interface {
	// Create inserts a pending row and fills in the attempt ID.
	Create(a *model.PublishingAttempt) error
	// Complete moves a pending row to its terminal status. Called exactly
	// once per attempt.
	Complete(id, status string, responseTimeMS int64, errorMessage, publishedURL string) error
	GetByID(id string) (*model.PublishingAttempt, error)
	ListByCampaign(campaignID int) ([]model.PublishingAttempt, error)
	// PlatformsUsed returns the distinct platform IDs this campaign has
	// already published to successfully.
	PlatformsUsed(campaignID int) ([]string, error)
	StatsByCampaign(campaignID int) (map[string]int, error)
}

type AttemptRepository struct {
	DB *sql.DB
}

func (r *AttemptRepository) Create(a *model.PublishingAttempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Status = model.AttemptPending
	a.CreatedAt = time.Now()

	query := `
		INSERT INTO publishing_attempts
		(id, campaign_id, platform_id, platform_name, target_url, keyword, anchor_text, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.Exec(query,
		a.ID, a.CampaignID, a.PlatformID, a.PlatformName,
		a.TargetURL, a.Keyword, a.AnchorText, a.Status, a.CreatedAt,
	)
	return err
}

func (r *AttemptRepository) Complete(id, status string, responseTimeMS int64, errorMessage, publishedURL string) error {
	query := `
		UPDATE publishing_attempts
		SET status=$1, response_time_ms=$2, error_message=$3, published_url=$4, completed_at=NOW()
		WHERE id=$5 AND status='pending'
	`
	_, err := r.DB.Exec(query, status, responseTimeMS, errorMessage, publishedURL, id)
	return err
}

func (r *AttemptRepository) GetByID(id string) (*model.PublishingAttempt, error) {
	query := `
		SELECT id, campaign_id, platform_id, platform_name, target_url, keyword, anchor_text,
			   status, response_time_ms, error_message, published_url, created_at, completed_at
		FROM publishing_attempts WHERE id=$1
	`
	var a model.PublishingAttempt
	err := r.DB.QueryRow(query, id).Scan(
		&a.ID, &a.CampaignID, &a.PlatformID, &a.PlatformName, &a.TargetURL, &a.Keyword, &a.AnchorText,
		&a.Status, &a.ResponseTimeMS, &a.ErrorMessage, &a.PublishedURL, &a.CreatedAt, &a.CompletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) ListByCampaign(campaignID int) ([]model.PublishingAttempt, error) {
	query := `
		SELECT id, campaign_id, platform_id, platform_name, target_url, keyword, anchor_text,
			   status, response_time_ms, error_message, published_url, created_at, completed_at
		FROM publishing_attempts WHERE campaign_id=$1 ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []model.PublishingAttempt{}
	for rows.Next() {
		var a model.PublishingAttempt
		if err := rows.Scan(
			&a.ID, &a.CampaignID, &a.PlatformID, &a.PlatformName, &a.TargetURL, &a.Keyword, &a.AnchorText,
			&a.Status, &a.ResponseTimeMS, &a.ErrorMessage, &a.PublishedURL, &a.CreatedAt, &a.CompletedAt,
		); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

func (r *AttemptRepository) PlatformsUsed(campaignID int) ([]string, error) {
	query := `SELECT DISTINCT platform_id FROM publishing_attempts WHERE campaign_id=$1 AND status='success'`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	used := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		used = append(used, id)
	}
	return used, nil
}

func (r *AttemptRepository) StatsByCampaign(campaignID int) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM publishing_attempts WHERE campaign_id=$1 GROUP BY status`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"pending": 0, "success": 0, "failed": 0, "timeout": 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, nil
}

var _ AttemptRepositoryInterface = (*AttemptRepository)(nil)
