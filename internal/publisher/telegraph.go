// internal/publisher/telegraph.go
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	appErrors "github.com/backlinkoo/backlinkoo-backend/internal/errors"
)

// TelegraphPublisher publishes through Telegraph's anonymous API: acquire an
// ephemeral access token via createAccount, then createPage with structured
// content nodes.
type TelegraphPublisher struct {
	BaseURL string
	Client  *http.Client
}

func NewTelegraphPublisher(baseURL string, client *http.Client) *TelegraphPublisher {
	if client == nil {
		client = defaultClient()
	}
	return &TelegraphPublisher{BaseURL: baseURL, Client: client}
}

func (p *TelegraphPublisher) PlatformID() string { return "telegraph" }

type telegraphResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Result struct {
		AccessToken string `json:"access_token"`
		Path        string `json:"path"`
		URL         string `json:"url"`
	} `json:"result"`
}

func (p *TelegraphPublisher) Publish(ctx context.Context, title, body string) (string, error) {
	token, err := p.createAccount(ctx)
	if err != nil {
		return "", appErrors.NewPublishFailed("telegraph", err.Error())
	}

	page := map[string]interface{}{
		"access_token":   token,
		"title":          title,
		"author_name":    "Backlinkoo",
		"content":        ContentToNodes(body),
		"return_content": false,
	}

	var resp telegraphResponse
	if err := p.post(ctx, "/createPage", page, &resp); err != nil {
		return "", appErrors.NewPublishFailed("telegraph", err.Error())
	}
	if !resp.OK || resp.Result.Path == "" {
		return "", appErrors.NewPublishFailed("telegraph", fmt.Sprintf("createPage rejected: %s", resp.Error))
	}

	if resp.Result.URL != "" {
		return resp.Result.URL, nil
	}
	return "https://telegra.ph/" + resp.Result.Path, nil
}

func (p *TelegraphPublisher) createAccount(ctx context.Context) (string, error) {
	account := map[string]interface{}{
		"short_name":  "Backlinkoo",
		"author_name": "Backlinkoo",
	}
	var resp telegraphResponse
	if err := p.post(ctx, "/createAccount", account, &resp); err != nil {
		return "", err
	}
	if !resp.OK || resp.Result.AccessToken == "" {
		return "", fmt.Errorf("createAccount rejected: %s", resp.Error)
	}
	return resp.Result.AccessToken, nil
}

func (p *TelegraphPublisher) post(ctx context.Context, path string, payload interface{}, out *telegraphResponse) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("telegraph %s returned status %d", path, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

var _ Publisher = (*TelegraphPublisher)(nil)
