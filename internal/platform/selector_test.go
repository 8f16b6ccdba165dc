package platform_test

import (
	"errors"
	"testing"
	"time"

	appErrors "github.com/backlinkoo/backlinkoo-backend/internal/errors"
	"github.com/backlinkoo/backlinkoo-backend/internal/platform"
)

// --- Mock repositories ---

type MockStatusRepo struct {
	blacklist []string
	disabled  []string
	failAll   bool
}

func (m *MockStatusRepo) ActiveBlacklist() ([]string, error) {
	if m.failAll {
		return nil, errors.New("db down")
	}
	return m.blacklist, nil
}

func (m *MockStatusRepo) ActiveDisables(now time.Time) ([]string, error) {
	if m.failAll {
		return nil, errors.New("db down")
	}
	return m.disabled, nil
}

type MockUsedRepo struct {
	used    []string
	failAll bool
}

func (m *MockUsedRepo) PlatformsUsed(campaignID int) ([]string, error) {
	if m.failAll {
		return nil, errors.New("db down")
	}
	return m.used, nil
}

func newSelector(status *MockStatusRepo, used *MockUsedRepo) *platform.Selector {
	return platform.NewSelector(status, used)
}

func TestSelectFirstPlatformWhenNothingExcluded(t *testing.T) {
	sel := newSelector(&MockStatusRepo{}, &MockUsedRepo{})

	p, err := sel.Select(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "telegraph" {
		t.Errorf("expected telegraph (first in priority order), got %s", p.ID)
	}
}

func TestSelectSkipsTemporarilyDisabledPlatform(t *testing.T) {
	sel := newSelector(&MockStatusRepo{disabled: []string{"telegraph"}}, &MockUsedRepo{})

	p, err := sel.Select(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "writeas" {
		t.Errorf("expected writeas, got %s", p.ID)
	}
}

func TestSelectSkipsAlreadyUsedPlatform(t *testing.T) {
	sel := newSelector(&MockStatusRepo{}, &MockUsedRepo{used: []string{"telegraph"}})

	p, err := sel.Select(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "writeas" {
		t.Errorf("expected writeas, got %s", p.ID)
	}
}

func TestSelectRotatesWhenAllPlatformsUsed(t *testing.T) {
	sel := newSelector(&MockStatusRepo{}, &MockUsedRepo{used: []string{"telegraph", "writeas"}})

	p, err := sel.Select(1)
	if err != nil {
		t.Fatalf("expected rotation to reuse a platform, got error: %v", err)
	}
	if p.ID != "telegraph" {
		t.Errorf("rotation should reuse the first platform, got %s", p.ID)
	}
}

func TestSelectExhaustedWhenEverythingBlacklisted(t *testing.T) {
	sel := newSelector(&MockStatusRepo{blacklist: []string{"telegraph", "writeas"}}, &MockUsedRepo{})

	_, err := sel.Select(1)
	if err == nil {
		t.Fatal("expected selection to fail")
	}
	var exhausted *appErrors.ErrSelectionExhausted
	if !errors.As(err, &exhausted) {
		t.Errorf("expected ErrSelectionExhausted, got %T: %v", err, err)
	}
}

func TestSelectHonorsExplicitExclusion(t *testing.T) {
	sel := newSelector(&MockStatusRepo{}, &MockUsedRepo{})

	p, err := sel.Select(1, "telegraph")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "writeas" {
		t.Errorf("expected writeas, got %s", p.ID)
	}
}

func TestSelectIsDeterministic(t *testing.T) {
	sel := newSelector(&MockStatusRepo{disabled: []string{"telegraph"}}, &MockUsedRepo{})

	first, err := sel.Select(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		p, err := sel.Select(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != first.ID {
			t.Errorf("selection not deterministic: got %s then %s", first.ID, p.ID)
		}
	}
}

func TestSelectFallsBackToDefaultWhenAllReadsFail(t *testing.T) {
	sel := newSelector(&MockStatusRepo{failAll: true}, &MockUsedRepo{failAll: true})

	p, err := sel.Select(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != platform.Default().ID {
		t.Errorf("expected default platform %s, got %s", platform.Default().ID, p.ID)
	}
}

func TestSelectTreatsSingleReadFailureAsNoExclusions(t *testing.T) {
	// Blacklist read fails but the disable read works: selection proceeds
	// with the exclusions it could fetch.
	sel := platform.NewSelector(&partialFailStatusRepo{disabled: []string{"telegraph"}}, &MockUsedRepo{})

	p, err := sel.Select(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "writeas" {
		t.Errorf("expected writeas, got %s", p.ID)
	}
}

type partialFailStatusRepo struct {
	disabled []string
}

func (m *partialFailStatusRepo) ActiveBlacklist() ([]string, error) {
	return nil, errors.New("db down")
}

func (m *partialFailStatusRepo) ActiveDisables(now time.Time) ([]string, error) {
	return m.disabled, nil
}
