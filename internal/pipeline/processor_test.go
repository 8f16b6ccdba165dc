package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/backlinkoo/backlinkoo-backend/internal/content"
	appErrors "github.com/backlinkoo/backlinkoo-backend/internal/errors"
	"github.com/backlinkoo/backlinkoo-backend/internal/model"
	"github.com/backlinkoo/backlinkoo-backend/internal/platform"
	"github.com/backlinkoo/backlinkoo-backend/internal/publisher"
)

// --- Mocks ---

type mockSelector struct {
	results []platform.Platform
	errs    []error
	calls   [][]string // excludes per call
}

func (m *mockSelector) Select(campaignID int, exclude ...string) (platform.Platform, error) {
	i := len(m.calls)
	m.calls = append(m.calls, exclude)
	if i < len(m.errs) && m.errs[i] != nil {
		return platform.Platform{}, m.errs[i]
	}
	if i >= len(m.results) {
		return platform.Platform{}, appErrors.NewSelectionExhausted(campaignID)
	}
	return m.results[i], nil
}

type mockGenerator struct {
	calls int
}

func (m *mockGenerator) Generate(ctx context.Context, req content.Request) content.Article {
	m.calls++
	return content.Article{
		Title: "Generated Title",
		Body:  fmt.Sprintf(`A paragraph embedding <a href="%s">%s</a> naturally.`, req.TargetURL, req.AnchorText),
	}
}

type mockPublisher struct {
	id    string
	url   string
	err   error
	delay time.Duration
	calls int
}

func (m *mockPublisher) PlatformID() string { return m.id }

func (m *mockPublisher) Publish(ctx context.Context, title, body string) (string, error) {
	m.calls++
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.delay):
		}
	}
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

type mockVerifier struct {
	failURLs map[string]int // url -> status code to fail with
}

func (m *mockVerifier) Check(ctx context.Context, url string) error {
	if status, ok := m.failURLs[url]; ok {
		return &appErrors.ErrVerificationFailed{URL: url, StatusCode: status}
	}
	return nil
}

type memAttempts struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*model.PublishingAttempt
}

func newMemAttempts() *memAttempts {
	return &memAttempts{rows: map[string]*model.PublishingAttempt{}}
}

func (m *memAttempts) Create(a *model.PublishingAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	a.ID = fmt.Sprintf("att-%d", m.seq)
	a.Status = model.AttemptPending
	a.CreatedAt = time.Now()
	copied := *a
	m.rows[a.ID] = &copied
	return nil
}

func (m *memAttempts) Complete(id, status string, responseTimeMS int64, errorMessage, publishedURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.Status != model.AttemptPending {
		return fmt.Errorf("attempt %s not pending", id)
	}
	row.Status = status
	row.ResponseTimeMS = responseTimeMS
	row.ErrorMessage = errorMessage
	row.PublishedURL = publishedURL
	now := time.Now()
	row.CompletedAt = &now
	return nil
}

type memLinks struct {
	links []*model.PublishedLink
}

func (m *memLinks) Create(l *model.PublishedLink) error {
	m.links = append(m.links, l)
	return nil
}

type mockCampaigns struct {
	increments int
}

func (m *mockCampaigns) IncrementLinksPosted(campaignID int) error {
	m.increments++
	return nil
}

var (
	telegraphPlat = platform.Platform{ID: "telegraph", Name: "Telegraph.ph", Domain: "telegra.ph"}
	writeasPlat   = platform.Platform{ID: "writeas", Name: "Write.as", Domain: "write.as"}
)

func newProcessor(sel *mockSelector, pubs map[string]publisher.Publisher, ver *mockVerifier, attempts *memAttempts, links *memLinks, campaigns *mockCampaigns) (*Processor, *mockGenerator) {
	gen := &mockGenerator{}
	if ver == nil {
		ver = &mockVerifier{}
	}
	return &Processor{
		Selector:       sel,
		Generator:      gen,
		Publishers:     pubs,
		Verifier:       ver,
		Attempts:       attempts,
		Links:          links,
		Campaigns:      campaigns,
		PublishTimeout: 2 * time.Second,
	}, gen
}

var testReq = Request{CampaignID: 1, Keyword: "coffee", AnchorText: "beans", TargetURL: "https://example.com"}

// --- Tests ---

func TestProcessSucceedsOnPrimaryPlatform(t *testing.T) {
	sel := &mockSelector{results: []platform.Platform{telegraphPlat}}
	attempts := newMemAttempts()
	links := &memLinks{}
	campaigns := &mockCampaigns{}
	pubs := map[string]publisher.Publisher{
		"telegraph": &mockPublisher{id: "telegraph", url: "https://telegra.ph/post-1"},
	}

	proc, gen := newProcessor(sel, pubs, nil, attempts, links, campaigns)
	result, err := proc.Process(context.Background(), testReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success || result.Platform != "Telegraph.ph" {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.PublishedURL != "https://telegra.ph/post-1" {
		t.Errorf("unexpected url: %s", result.PublishedURL)
	}
	if gen.calls != 1 {
		t.Errorf("expected one generation, got %d", gen.calls)
	}

	// Recorder round-trip: started pending, completed success, non-negative time.
	row := attempts.rows[result.AttemptID]
	if row == nil {
		t.Fatal("attempt row not recorded")
	}
	if row.Status != model.AttemptSuccess {
		t.Errorf("expected success status, got %s", row.Status)
	}
	if row.ResponseTimeMS < 0 {
		t.Errorf("negative response time: %d", row.ResponseTimeMS)
	}

	if len(links.links) != 1 {
		t.Fatalf("expected one published link, got %d", len(links.links))
	}
	if campaigns.increments != 1 {
		t.Errorf("expected one counter increment, got %d", campaigns.increments)
	}
}

func TestProcessFallsBackOncePerInvocation(t *testing.T) {
	sel := &mockSelector{results: []platform.Platform{telegraphPlat, writeasPlat}}
	attempts := newMemAttempts()
	links := &memLinks{}
	pubs := map[string]publisher.Publisher{
		"telegraph": &mockPublisher{id: "telegraph", err: appErrors.NewPublishFailed("telegraph", "flood wait")},
		"writeas":   &mockPublisher{id: "writeas", url: "https://write.as/abc"},
	}

	proc, gen := newProcessor(sel, pubs, nil, attempts, links, &mockCampaigns{})
	result, err := proc.Process(context.Background(), testReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Platform != "Write.as" {
		t.Errorf("expected fallback platform, got %s", result.Platform)
	}
	// Content is reused, not regenerated, on the fallback hop.
	if gen.calls != 1 {
		t.Errorf("expected one generation, got %d", gen.calls)
	}
	// Fallback selection must exclude the failed platform.
	if len(sel.calls) != 2 || len(sel.calls[1]) != 1 || sel.calls[1][0] != "telegraph" {
		t.Errorf("fallback selection should exclude telegraph, got %+v", sel.calls)
	}
	if len(attempts.rows) != 2 {
		t.Errorf("expected two attempt rows, got %d", len(attempts.rows))
	}
}

func TestProcessCombinedErrorWhenBothPlatformsFail(t *testing.T) {
	sel := &mockSelector{results: []platform.Platform{telegraphPlat, writeasPlat}}
	attempts := newMemAttempts()
	pubs := map[string]publisher.Publisher{
		"telegraph": &mockPublisher{id: "telegraph", err: appErrors.NewPublishFailed("telegraph", "flood wait")},
		"writeas":   &mockPublisher{id: "writeas", err: appErrors.NewPublishFailed("writeas", "rate limited")},
	}

	proc, _ := newProcessor(sel, pubs, nil, attempts, &memLinks{}, &mockCampaigns{})
	_, err := proc.Process(context.Background(), testReq)
	if err == nil {
		t.Fatal("expected combined failure")
	}
	if !strings.HasPrefix(err.Error(), "All platforms failed. Primary error:") {
		t.Errorf("unexpected error message: %v", err)
	}
	if !strings.Contains(err.Error(), "flood wait") || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("combined error should carry both messages: %v", err)
	}
	// Exactly one fallback hop: two attempts, no more.
	if len(attempts.rows) != 2 {
		t.Errorf("expected two attempt rows, got %d", len(attempts.rows))
	}
	if len(sel.calls) != 2 {
		t.Errorf("expected two selections, got %d", len(sel.calls))
	}
}

func TestProcessTreatsVerificationFailureAsPublishFailure(t *testing.T) {
	sel := &mockSelector{results: []platform.Platform{telegraphPlat, writeasPlat}}
	attempts := newMemAttempts()
	ver := &mockVerifier{failURLs: map[string]int{"https://telegra.ph/gone": 404}}
	pubs := map[string]publisher.Publisher{
		// The publish call itself succeeds; only verification fails.
		"telegraph": &mockPublisher{id: "telegraph", url: "https://telegra.ph/gone"},
		"writeas":   &mockPublisher{id: "writeas", url: "https://write.as/abc"},
	}

	proc, _ := newProcessor(sel, pubs, ver, attempts, &memLinks{}, &mockCampaigns{})
	result, err := proc.Process(context.Background(), testReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Platform != "Write.as" {
		t.Errorf("expected fallback after verification failure, got %s", result.Platform)
	}

	// The primary attempt must be recorded as failed despite the 200 publish.
	var failed *model.PublishingAttempt
	for _, row := range attempts.rows {
		if row.PlatformID == "telegraph" {
			failed = row
		}
	}
	if failed == nil {
		t.Fatal("primary attempt not recorded")
	}
	if failed.Status != model.AttemptFailed {
		t.Errorf("expected failed status for unverifiable publish, got %s", failed.Status)
	}
	if failed.PublishedURL != "" {
		t.Errorf("unverified URL should not be stored as published, got %s", failed.PublishedURL)
	}
}

func TestProcessSelectionExhaustedSkipsGenerationAndPublishing(t *testing.T) {
	sel := &mockSelector{errs: []error{appErrors.NewSelectionExhausted(1)}}
	attempts := newMemAttempts()
	pub := &mockPublisher{id: "telegraph", url: "https://telegra.ph/x"}

	proc, gen := newProcessor(sel, map[string]publisher.Publisher{"telegraph": pub}, nil, attempts, &memLinks{}, &mockCampaigns{})
	_, err := proc.Process(context.Background(), testReq)
	if err == nil {
		t.Fatal("expected selection exhausted error")
	}
	if gen.calls != 0 {
		t.Errorf("generation should not run after exhausted selection, got %d calls", gen.calls)
	}
	if pub.calls != 0 {
		t.Errorf("publishing should not run after exhausted selection, got %d calls", pub.calls)
	}
	if len(attempts.rows) != 0 {
		t.Errorf("no attempt rows expected, got %d", len(attempts.rows))
	}
}

func TestProcessRecordsTimeoutStatus(t *testing.T) {
	sel := &mockSelector{results: []platform.Platform{telegraphPlat}}
	attempts := newMemAttempts()
	pubs := map[string]publisher.Publisher{
		"telegraph": &mockPublisher{id: "telegraph", url: "https://telegra.ph/x", delay: time.Second},
	}

	proc, _ := newProcessor(sel, pubs, nil, attempts, &memLinks{}, &mockCampaigns{})
	proc.PublishTimeout = 20 * time.Millisecond

	_, err := proc.Process(context.Background(), testReq)
	if err == nil {
		t.Fatal("expected failure after timeout")
	}

	var timedOut bool
	for _, row := range attempts.rows {
		if row.Status == model.AttemptTimeout {
			timedOut = true
		}
	}
	if !timedOut {
		t.Error("expected an attempt row with timeout status")
	}
}

func TestProcessFallbackSelectionExhaustedReturnsCombinedError(t *testing.T) {
	sel := &mockSelector{
		results: []platform.Platform{telegraphPlat},
		errs:    []error{nil, appErrors.NewSelectionExhausted(1)},
	}
	pubs := map[string]publisher.Publisher{
		"telegraph": &mockPublisher{id: "telegraph", err: appErrors.NewPublishFailed("telegraph", "flood wait")},
	}

	proc, _ := newProcessor(sel, pubs, nil, newMemAttempts(), &memLinks{}, &mockCampaigns{})
	_, err := proc.Process(context.Background(), testReq)
	if err == nil {
		t.Fatal("expected combined failure")
	}
	var combined *appErrors.ErrAllPlatformsFailed
	if !errors.As(err, &combined) {
		t.Fatalf("expected ErrAllPlatformsFailed, got %T", err)
	}
	if !strings.Contains(err.Error(), "flood wait") {
		t.Errorf("combined error should include the primary failure: %v", err)
	}
}
