// internal/registrar/godaddy.go
package registrar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/backlinkoo/backlinkoo-backend/internal/model"
)

type GoDaddy struct {
	BaseURL string
	Key     string
	Secret  string
	Client  *http.Client
}

func NewGoDaddy(key, secret string, client *http.Client) *GoDaddy {
	return &GoDaddy{
		BaseURL: "https://api.godaddy.com",
		Key:     key,
		Secret:  secret,
		Client:  client,
	}
}

func (g *GoDaddy) Code() string { return "godaddy" }

type gdRecord struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Data     string `json:"data"`
	TTL      int    `json:"ttl"`
	Priority *int   `json:"priority,omitempty"`
}

func (g *GoDaddy) GetRecords(ctx context.Context, domain string) ([]model.DNSRecord, error) {
	existing, err := g.listRecords(ctx, domain)
	if err != nil {
		return nil, err
	}

	records := make([]model.DNSRecord, 0, len(existing))
	for _, r := range existing {
		records = append(records, model.DNSRecord{
			Type:     r.Type,
			Name:     r.Name,
			Content:  r.Data,
			TTL:      r.TTL,
			Priority: r.Priority,
		})
	}
	return records, nil
}

// UpdateRecords replaces each (type, name) record set individually. GoDaddy
// has no separate create call: PUT on a missing pair creates it, so "created"
// vs "updated" is decided by whether the pair existed beforehand.
func (g *GoDaddy) UpdateRecords(ctx context.Context, domain string, records []model.DNSRecord) (*UpdateResult, error) {
	existing, err := g.listRecords(ctx, domain)
	if err != nil {
		return nil, err
	}
	present := map[string]bool{}
	for _, r := range existing {
		present[r.Type+"|"+r.Name] = true
	}

	result := &UpdateResult{}
	for _, rec := range records {
		payload := []gdRecord{{
			Type:     rec.Type,
			Name:     rec.Name,
			Data:     rec.Content,
			TTL:      rec.TTL,
			Priority: rec.Priority,
		}}
		path := fmt.Sprintf("/v1/domains/%s/records/%s/%s", domain, rec.Type, rec.Name)

		if err := g.call(ctx, http.MethodPut, path, payload, nil); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", rec.Type, rec.Name, err))
			continue
		}
		if present[rec.Type+"|"+rec.Name] {
			result.Updated++
			result.Details = append(result.Details, fmt.Sprintf("updated %s %s", rec.Type, rec.Name))
		} else {
			result.Created++
			result.Details = append(result.Details, fmt.Sprintf("created %s %s", rec.Type, rec.Name))
		}
	}
	return result, nil
}

func (g *GoDaddy) listRecords(ctx context.Context, domain string) ([]gdRecord, error) {
	var parsed []gdRecord
	if err := g.call(ctx, http.MethodGet, fmt.Sprintf("/v1/domains/%s/records", domain), nil, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func (g *GoDaddy) call(ctx context.Context, method, path string, payload, out interface{}) error {
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

	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", fmt.Sprintf("sso-key %s:%s", g.Key, g.Secret))
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("godaddy %s %s returned status %d", method, path, res.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}
	return nil
}

var _ Registrar = (*GoDaddy)(nil)
