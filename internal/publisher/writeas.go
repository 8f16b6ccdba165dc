// internal/publisher/writeas.go
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	appErrors "github.com/backlinkoo/backlinkoo-backend/internal/errors"
)

// WriteasPublisher publishes a single markdown post through the Write.as
// API. No account bootstrap: one create-post call, URL taken from the
// response payload.
type WriteasPublisher struct {
	BaseURL     string
	PublicURL   string // prefix for published post URLs
	AccessToken string // optional; anonymous posts work without it
	Client      *http.Client
}

func NewWriteasPublisher(baseURL, accessToken string, client *http.Client) *WriteasPublisher {
	if client == nil {
		client = defaultClient()
	}
	return &WriteasPublisher{
		BaseURL:     baseURL,
		PublicURL:   "https://write.as",
		AccessToken: accessToken,
		Client:      client,
	}
}

func (p *WriteasPublisher) PlatformID() string { return "writeas" }

func (p *WriteasPublisher) Publish(ctx context.Context, title, body string) (string, error) {
	payload := map[string]string{
		"title": title,
		"body":  body,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", appErrors.NewPublishFailed("writeas", err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/api/posts", bytes.NewReader(b))
	if err != nil {
		return "", appErrors.NewPublishFailed("writeas", err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	if p.AccessToken != "" {
		req.Header.Set("Authorization", "Token "+p.AccessToken)
	}

	res, err := p.Client.Do(req)
	if err != nil {
		return "", appErrors.NewPublishFailed("writeas", err.Error())
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", appErrors.NewPublishFailed("writeas", fmt.Sprintf("create post returned status %d", res.StatusCode))
	}

	var parsed struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", appErrors.NewPublishFailed("writeas", "unparseable response: "+err.Error())
	}
	if parsed.Data.ID == "" {
		return "", appErrors.NewPublishFailed("writeas", "response missing post ID")
	}

	return fmt.Sprintf("%s/%s", p.PublicURL, parsed.Data.ID), nil
}

var _ Publisher = (*WriteasPublisher)(nil)
