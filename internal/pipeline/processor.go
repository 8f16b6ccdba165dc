// internal/pipeline/processor.go
package pipeline

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/backlinkoo/backlinkoo-backend/internal/content"
	appErrors "github.com/backlinkoo/backlinkoo-backend/internal/errors"
	"github.com/backlinkoo/backlinkoo-backend/internal/model"
	"github.com/backlinkoo/backlinkoo-backend/internal/platform"
	"github.com/backlinkoo/backlinkoo-backend/internal/publisher"
)

// Consumer-side views of the collaborating components, so tests can swap in
// mocks the same way the worker tests do.
type PlatformSelector interface {
	Select(campaignID int, exclude ...string) (platform.Platform, error)
}

type ContentGenerator interface {
	Generate(ctx context.Context, req content.Request) content.Article
}

type URLVerifier interface {
	Check(ctx context.Context, url string) error
}

// AttemptRecorder is the lifecycle slice of the attempt repository.
type AttemptRecorder interface {
	Create(a *model.PublishingAttempt) error
	Complete(id, status string, responseTimeMS int64, errorMessage, publishedURL string) error
}

type LinkRecorder interface {
	Create(l *model.PublishedLink) error
}

type CampaignCounter interface {
	IncrementLinksPosted(campaignID int) error
}

type Request struct {
	CampaignID int    `json:"campaignId"`
	Keyword    string `json:"keyword"`
	AnchorText string `json:"anchorText"`
	TargetURL  string `json:"targetUrl"`
}

type Result struct {
	Success        bool   `json:"success"`
	PublishedURL   string `json:"publishedUrl"`
	Platform       string `json:"platform"`
	PlatformID     string `json:"platformId"`
	ResponseTimeMS int64  `json:"responseTime"`
	AttemptID      string `json:"attemptId"`
}

// Processor runs one link-placement invocation: select a platform, generate
// content, publish, verify, record. On a publish/verify/timeout failure it
// re-selects once (excluding the failed platform), reuses the generated
// content and retries; a second failure returns the combined error. There
// is no retry loop beyond that single hop.
type Processor struct {
	Selector   PlatformSelector
	Generator  ContentGenerator
	Publishers map[string]publisher.Publisher
	Verifier   URLVerifier
	Attempts   AttemptRecorder
	Links      LinkRecorder
	Campaigns  CampaignCounter

	PublishTimeout time.Duration
}

func (p *Processor) Process(ctx context.Context, req Request) (*Result, error) {
	primary, err := p.Selector.Select(req.CampaignID)
	if err != nil {
		// SelectionExhausted is terminal: no generation, no publishing.
		return nil, err
	}

	article := p.Generator.Generate(ctx, content.Request{
		Keyword:    req.Keyword,
		AnchorText: req.AnchorText,
		TargetURL:  req.TargetURL,
	})

	url, elapsed, attemptID, primaryErr := p.runAttempt(ctx, req, primary, article)
	if primaryErr == nil {
		p.recordSuccess(req.CampaignID, url, article.Title, primary.Name)
		return &Result{
			Success:        true,
			PublishedURL:   url,
			Platform:       primary.Name,
			PlatformID:     primary.ID,
			ResponseTimeMS: elapsed,
			AttemptID:      attemptID,
		}, nil
	}

	fallback, selErr := p.Selector.Select(req.CampaignID, primary.ID)
	if selErr != nil {
		return nil, appErrors.NewAllPlatformsFailed(primaryErr, selErr)
	}

	url, elapsed, attemptID, fallbackErr := p.runAttempt(ctx, req, fallback, article)
	if fallbackErr != nil {
		return nil, appErrors.NewAllPlatformsFailed(primaryErr, fallbackErr)
	}

	p.recordSuccess(req.CampaignID, url, article.Title, fallback.Name)
	return &Result{
		Success:        true,
		PublishedURL:   url,
		Platform:       fallback.Name,
		PlatformID:     fallback.ID,
		ResponseTimeMS: elapsed,
		AttemptID:      attemptID,
	}, nil
}

// runAttempt publishes and verifies against one platform, recording the
// attempt lifecycle around it. Recorder writes are fire-and-forget: a
// persistence failure is logged and never aborts the attempt.
func (p *Processor) runAttempt(ctx context.Context, req Request, plat platform.Platform, article content.Article) (string, int64, string, error) {
	attempt := &model.PublishingAttempt{
		CampaignID:   req.CampaignID,
		PlatformID:   plat.ID,
		PlatformName: plat.Name,
		TargetURL:    req.TargetURL,
		Keyword:      req.Keyword,
		AnchorText:   req.AnchorText,
	}
	if err := p.Attempts.Create(attempt); err != nil {
		log.Println("⚠️ failed to record attempt start:", err)
	}

	start := time.Now()
	url, err := p.publish(ctx, plat, article)
	if err == nil {
		err = p.Verifier.Check(ctx, url)
	}
	elapsed := time.Since(start).Milliseconds()

	status := model.AttemptSuccess
	errMsg := ""
	publishedURL := url
	if err != nil {
		errMsg = err.Error()
		publishedURL = ""
		status = model.AttemptFailed
		var timeoutErr *appErrors.ErrTimeoutExceeded
		if errors.As(err, &timeoutErr) {
			status = model.AttemptTimeout
		}
	}

	if cErr := p.Attempts.Complete(attempt.ID, status, elapsed, errMsg, publishedURL); cErr != nil {
		log.Println("⚠️ failed to record attempt completion:", cErr)
	}

	if err != nil {
		return "", elapsed, attempt.ID, err
	}
	return url, elapsed, attempt.ID, nil
}

func (p *Processor) publish(ctx context.Context, plat platform.Platform, article content.Article) (string, error) {
	pub, ok := p.Publishers[plat.ID]
	if !ok {
		return "", appErrors.NewPublishFailed(plat.ID, "no adapter registered")
	}

	timeout := p.PublishTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url, err := pub.Publish(pctx, article.Title, article.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || pctx.Err() == context.DeadlineExceeded {
			return "", &appErrors.ErrTimeoutExceeded{Platform: plat.ID, Limit: timeout.String()}
		}
		return "", err
	}
	if url == "" {
		return "", appErrors.NewPublishFailed(plat.ID, "adapter returned empty URL")
	}
	return url, nil
}

// recordSuccess persists the durable link row and bumps the campaign
// counter. Both writes are observability-grade: failures are logged, the
// run still reports success.
func (p *Processor) recordSuccess(campaignID int, url, title, platformName string) {
	link := &model.PublishedLink{
		CampaignID:   campaignID,
		PublishedURL: url,
		Title:        title,
		Platform:     platformName,
	}
	if err := p.Links.Create(link); err != nil {
		log.Println("⚠️ failed to record published link:", err)
	}
	if err := p.Campaigns.IncrementLinksPosted(campaignID); err != nil {
		log.Println("⚠️ failed to update campaign counters:", err)
	}
}
