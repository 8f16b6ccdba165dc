// internal/model/campaign.go
package model

import "time"

type Campaign struct {
	ID          int        `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	TargetURL   string     `db:"target_url" json:"target_url"`
	Keyword     string     `db:"keyword" json:"keyword"`
	AnchorText  string     `db:"anchor_text" json:"anchor_text"`
	Status      string     `db:"status" json:"status"` // draft, active, paused, completed
	LinksFound  int        `db:"links_found" json:"links_found"`
	LinksPosted int        `db:"links_posted" json:"links_posted"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
