// internal/registrar/digitalocean.go
package registrar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/backlinkoo/backlinkoo-backend/internal/model"
)

type DigitalOcean struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewDigitalOcean(token string, client *http.Client) *DigitalOcean {
	return &DigitalOcean{
		BaseURL: "https://api.digitalocean.com",
		Token:   token,
		Client:  client,
	}
}

func (d *DigitalOcean) Code() string { return "digitalocean" }

type doRecord struct {
	ID       int    `json:"id,omitempty"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Data     string `json:"data"`
	TTL      int    `json:"ttl"`
	Priority *int   `json:"priority,omitempty"`
}

func (d *DigitalOcean) GetRecords(ctx context.Context, domain string) ([]model.DNSRecord, error) {
	existing, err := d.listRecords(ctx, domain)
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

func (d *DigitalOcean) UpdateRecords(ctx context.Context, domain string, records []model.DNSRecord) (*UpdateResult, error) {
	existing, err := d.listRecords(ctx, domain)
	if err != nil {
		return nil, err
	}
	byKey := map[string]doRecord{}
	for _, r := range existing {
		byKey[r.Type+"|"+r.Name] = r
	}

	result := &UpdateResult{}
	for _, rec := range records {
		payload := doRecord{Type: rec.Type, Name: rec.Name, Data: rec.Content, TTL: rec.TTL, Priority: rec.Priority}

		var callErr error
		created := false
		if current, found := byKey[rec.Type+"|"+rec.Name]; found {
			callErr = d.call(ctx, http.MethodPut, fmt.Sprintf("/v2/domains/%s/records/%d", domain, current.ID), payload, nil)
		} else {
			callErr = d.call(ctx, http.MethodPost, fmt.Sprintf("/v2/domains/%s/records", domain), payload, nil)
			created = true
		}

		if callErr != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", rec.Type, rec.Name, callErr))
			continue
		}
		if created {
			result.Created++
			result.Details = append(result.Details, fmt.Sprintf("created %s %s", rec.Type, rec.Name))
		} else {
			result.Updated++
			result.Details = append(result.Details, fmt.Sprintf("updated %s %s", rec.Type, rec.Name))
		}
	}
	return result, nil
}

func (d *DigitalOcean) listRecords(ctx context.Context, domain string) ([]doRecord, error) {
	var parsed struct {
		DomainRecords []doRecord `json:"domain_records"`
	}
	if err := d.call(ctx, http.MethodGet, fmt.Sprintf("/v2/domains/%s/records", domain), nil, &parsed); err != nil {
		return nil, err
	}
	return parsed.DomainRecords, nil
}

func (d *DigitalOcean) call(ctx context.Context, method, path string, payload, out interface{}) error {
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

	req, err := http.NewRequestWithContext(ctx, method, d.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+d.Token)
	req.Header.Set("Content-Type", "application/json")

	res, err := d.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("digitalocean %s %s returned status %d", method, path, res.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}
	return nil
}

var _ Registrar = (*DigitalOcean)(nil)
