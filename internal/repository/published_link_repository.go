package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/backlinkoo/backlinkoo-backend/internal/model"
)

type PublishedLinkRepositoryInterface interface {
	Create(l *model.PublishedLink) error
	ListByCampaign(campaignID int) ([]model.PublishedLink, error)
}

type PublishedLinkRepository struct {
	DB *sql.DB
}

func (r *PublishedLinkRepository) Create(l *model.PublishedLink) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = "active"
	}
	l.CreatedAt = time.Now()

	query := `
		INSERT INTO published_links (id, campaign_id, published_url, title, platform, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.Exec(query, l.ID, l.CampaignID, l.PublishedURL, l.Title, l.Platform, l.Status, l.CreatedAt)
	return err
}

func (r *PublishedLinkRepository) ListByCampaign(campaignID int) ([]model.PublishedLink, error) {
	query := `
		SELECT id, campaign_id, published_url, title, platform, status, created_at
		FROM published_links WHERE campaign_id=$1 ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []model.PublishedLink{}
	for rows.Next() {
		var l model.PublishedLink
		if err := rows.Scan(&l.ID, &l.CampaignID, &l.PublishedURL, &l.Title, &l.Platform, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, nil
}

var _ PublishedLinkRepositoryInterface = (*PublishedLinkRepository)(nil)
