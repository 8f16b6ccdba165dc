// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ErrSelectionExhausted means every platform is blacklisted or disabled.
// Terminal: the pipeline must not generate or publish after this.
type ErrSelectionExhausted struct {
	CampaignID int
}

func (e *ErrSelectionExhausted) Error() string {
	return fmt.Sprintf("no eligible publishing platform for campaign %d", e.CampaignID)
}

func NewSelectionExhausted(campaignID int) error {
	return &ErrSelectionExhausted{CampaignID: campaignID}
}

// ErrPublishFailed means the platform adapter returned an error or a payload
// without a usable URL.
type ErrPublishFailed struct {
	Platform string
	Reason   string
}

func (e *ErrPublishFailed) Error() string {
	return fmt.Sprintf("publish to %s failed: %s", e.Platform, e.Reason)
}

func NewPublishFailed(platform, reason string) error {
	return &ErrPublishFailed{Platform: platform, Reason: reason}
}

// ErrVerificationFailed means the published URL was not publicly reachable.
// Treated the same as a publish failure by callers.
type ErrVerificationFailed struct {
	URL        string
	StatusCode int
}

func (e *ErrVerificationFailed) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("verification of %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("verification of %s failed: unreachable", e.URL)
}

// ErrTimeoutExceeded means the publish step ran past the overall deadline.
type ErrTimeoutExceeded struct {
	Platform string
	Limit    string
}

func (e *ErrTimeoutExceeded) Error() string {
	return fmt.Sprintf("publish to %s timed out after %s", e.Platform, e.Limit)
}

// ErrAllPlatformsFailed combines the primary and fallback failures into the
// single user-visible error the HTTP layer returns.
type ErrAllPlatformsFailed struct {
	Primary  error
	Fallback error
}

func (e *ErrAllPlatformsFailed) Error() string {
	if e.Fallback != nil {
		return fmt.Sprintf("All platforms failed. Primary error: %v. Fallback error: %v", e.Primary, e.Fallback)
	}
	return fmt.Sprintf("All platforms failed. Primary error: %v", e.Primary)
}

func NewAllPlatformsFailed(primary, fallback error) error {
	return &ErrAllPlatformsFailed{Primary: primary, Fallback: fallback}
}
