// internal/model/published_link.go
package model

import "time"

// PublishedLink is the durable record of a verified publication. Rows are
// append-only: nothing in the pipeline updates or deletes them.
type PublishedLink struct {
	ID           string    `db:"id" json:"id"`
	CampaignID   int       `db:"campaign_id" json:"campaign_id"`
	PublishedURL string    `db:"published_url" json:"published_url"`
	Title        string    `db:"title" json:"title"`
	Platform     string    `db:"platform" json:"platform"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
