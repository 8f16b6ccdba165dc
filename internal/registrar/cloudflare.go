// internal/registrar/cloudflare.go
package registrar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/backlinkoo/backlinkoo-backend/internal/model"
)

type Cloudflare struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewCloudflare(token string, client *http.Client) *Cloudflare {
	return &Cloudflare{
		BaseURL: "https://api.cloudflare.com/client/v4",
		Token:   token,
		Client:  client,
	}
}

func (c *Cloudflare) Code() string { return "cloudflare" }

type cfRecord struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied *bool  `json:"proxied,omitempty"`
}

func (c *Cloudflare) GetRecords(ctx context.Context, domain string) ([]model.DNSRecord, error) {
	zoneID, ok, err := c.zoneID(ctx, domain)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("zone %q not found in cloudflare account", domain)
	}

	existing, err := c.listRecords(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	records := make([]model.DNSRecord, 0, len(existing))
	for _, r := range existing {
		records = append(records, model.DNSRecord{
			Type:    r.Type,
			Name:    r.Name,
			Content: r.Content,
			TTL:     r.TTL,
			Proxied: r.Proxied,
		})
	}
	return records, nil
}

// UpdateRecords uses find-by-name-then-update-or-insert semantics: records
// matching an existing (name, type) pair are updated in place, the rest are
// created.
func (c *Cloudflare) UpdateRecords(ctx context.Context, domain string, records []model.DNSRecord) (*UpdateResult, error) {
	zoneID, ok, err := c.zoneID(ctx, domain)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("zone %q not found in cloudflare account", domain)
	}

	existing, err := c.listRecords(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	byKey := map[string]cfRecord{}
	for _, r := range existing {
		byKey[r.Type+"|"+r.Name] = r
	}

	result := &UpdateResult{}
	for _, rec := range records {
		payload := cfRecord{Type: rec.Type, Name: rec.Name, Content: rec.Content, TTL: rec.TTL, Proxied: rec.Proxied}

		if current, found := byKey[rec.Type+"|"+rec.Name]; found {
			err = c.call(ctx, http.MethodPut, fmt.Sprintf("/zones/%s/dns_records/%s", zoneID, current.ID), payload, nil)
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", rec.Type, rec.Name, err))
				continue
			}
			result.Updated++
			result.Details = append(result.Details, fmt.Sprintf("updated %s %s", rec.Type, rec.Name))
		} else {
			err = c.call(ctx, http.MethodPost, fmt.Sprintf("/zones/%s/dns_records", zoneID), payload, nil)
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", rec.Type, rec.Name, err))
				continue
			}
			result.Created++
			result.Details = append(result.Details, fmt.Sprintf("created %s %s", rec.Type, rec.Name))
		}
	}
	return result, nil
}

// zoneID resolves a domain to its zone. A missing zone is an expected
// alternative, reported through the bool, not an error.
func (c *Cloudflare) zoneID(ctx context.Context, domain string) (string, bool, error) {
	var parsed struct {
		Success bool `json:"success"`
		Result  []struct {
			ID string `json:"id"`
		} `json:"result"`
	}
	path := "/zones?name=" + url.QueryEscape(domain)
	if err := c.call(ctx, http.MethodGet, path, nil, &parsed); err != nil {
		return "", false, err
	}
	if !parsed.Success || len(parsed.Result) == 0 {
		return "", false, nil
	}
	return parsed.Result[0].ID, true, nil
}

func (c *Cloudflare) listRecords(ctx context.Context, zoneID string) ([]cfRecord, error) {
	var parsed struct {
		Success bool       `json:"success"`
		Result  []cfRecord `json:"result"`
	}
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/zones/%s/dns_records", zoneID), nil, &parsed); err != nil {
		return nil, err
	}
	if !parsed.Success {
		return nil, fmt.Errorf("cloudflare record listing unsuccessful")
	}
	return parsed.Result, nil
}

func (c *Cloudflare) call(ctx context.Context, method, path string, payload, out interface{}) error {
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("cloudflare %s %s returned status %d", method, path, res.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}
	return nil
}

var _ Registrar = (*Cloudflare)(nil)
