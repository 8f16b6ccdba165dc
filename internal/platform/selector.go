// internal/platform/selector.go
package platform

import (
	"log"
	"time"

	appErrors "github.com/backlinkoo/backlinkoo-backend/internal/errors"
)

// StatusSource provides the blacklist and temporary-disable exclusions.
type StatusSource interface {
	ActiveBlacklist() ([]string, error)
	ActiveDisables(now time.Time) ([]string, error)
}

// UsageSource reports which platforms a campaign has already published to.
type UsageSource interface {
	PlatformsUsed(campaignID int) ([]string, error)
}

// Selector picks the next platform for a campaign. It is read-only: all
// writes happen later in the pipeline.
type Selector struct {
	Registry []Platform
	Status   StatusSource
	Attempts UsageSource
}

func NewSelector(status StatusSource, attempts UsageSource) *Selector {
	return &Selector{
		Registry: Registry(),
		Status:   status,
		Attempts: attempts,
	}
}

// Select returns the first platform, in priority order, that is neither
// excluded (blacklist, unexpired temporary disable, explicit excludes) nor
// already used successfully by this campaign. When only used platforms
// remain, selection relaxes and reuses one; intentional rotation, not a
// hard constraint. When everything is excluded it fails with
// ErrSelectionExhausted.
//
// Exclusion reads are best-effort: a failed read counts as "no exclusions".
// If every read fails, selection falls back to the default platform.
func (s *Selector) Select(campaignID int, exclude ...string) (Platform, error) {
	excluded := map[string]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}

	blacklisted, blErr := s.Status.ActiveBlacklist()
	if blErr != nil {
		log.Println("⚠️ blacklist read failed, ignoring:", blErr)
	}
	disabled, disErr := s.Status.ActiveDisables(time.Now())
	if disErr != nil {
		log.Println("⚠️ disable read failed, ignoring:", disErr)
	}
	usedIDs, usedErr := s.Attempts.PlatformsUsed(campaignID)
	if usedErr != nil {
		log.Println("⚠️ used-platform read failed, ignoring:", usedErr)
	}

	if blErr != nil && disErr != nil && usedErr != nil {
		def := Default()
		if excluded[def.ID] {
			return Platform{}, appErrors.NewSelectionExhausted(campaignID)
		}
		log.Println("⚠️ all selection reads failed, falling back to default platform:", def.ID)
		return def, nil
	}

	for _, id := range blacklisted {
		excluded[id] = true
	}
	for _, id := range disabled {
		excluded[id] = true
	}

	used := map[string]bool{}
	for _, id := range usedIDs {
		used[id] = true
	}

	// First pass: unused platforms only.
	for _, p := range s.Registry {
		if !excluded[p.ID] && !used[p.ID] {
			return p, nil
		}
	}

	// Rotation: every eligible platform was already used, reuse the first.
	for _, p := range s.Registry {
		if !excluded[p.ID] {
			return p, nil
		}
	}

	return Platform{}, appErrors.NewSelectionExhausted(campaignID)
}
