// internal/model/attempt.go
package model

import "time"

// Attempt statuses. A row is terminal once it leaves "pending".
const (
	AttemptPending = "pending"
	AttemptSuccess = "success"
	AttemptFailed  = "failed"
	AttemptTimeout = "timeout"
)

type PublishingAttempt struct {
	ID             string     `db:"id" json:"id"`
	CampaignID     int        `db:"campaign_id" json:"campaign_id"`
	PlatformID     string     `db:"platform_id" json:"platform_id"`
	PlatformName   string     `db:"platform_name" json:"platform_name"`
	TargetURL      string     `db:"target_url" json:"target_url"`
	Keyword        string     `db:"keyword" json:"keyword"`
	AnchorText     string     `db:"anchor_text" json:"anchor_text"`
	Status         string     `db:"status" json:"status"`
	ResponseTimeMS int64      `db:"response_time_ms" json:"response_time_ms"`
	ErrorMessage   string     `db:"error_message" json:"error_message,omitempty"`
	PublishedURL   string     `db:"published_url" json:"published_url,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	CompletedAt    *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}
