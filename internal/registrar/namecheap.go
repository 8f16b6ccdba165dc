// internal/registrar/namecheap.go
package registrar

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/backlinkoo/backlinkoo-backend/internal/model"
)

// Namecheap supports reads only. The vendor's setHosts call replaces the
// entire host list atomically, which does not map onto per-record
// update-or-insert; UpdateRecords reports ErrUpdateUnsupported.
type Namecheap struct {
	BaseURL  string
	APIUser  string
	APIKey   string
	ClientIP string
	Client   *http.Client
}

func NewNamecheap(apiUser, apiKey, clientIP string, client *http.Client) *Namecheap {
	return &Namecheap{
		BaseURL:  "https://api.namecheap.com/xml.response",
		APIUser:  apiUser,
		APIKey:   apiKey,
		ClientIP: clientIP,
		Client:   client,
	}
}

func (n *Namecheap) Code() string { return "namecheap" }

type ncResponse struct {
	XMLName         xml.Name `xml:"ApiResponse"`
	Status          string   `xml:"Status,attr"`
	Errors          []string `xml:"Errors>Error"`
	CommandResponse struct {
		Hosts []struct {
			Name    string `xml:"Name,attr"`
			Type    string `xml:"Type,attr"`
			Address string `xml:"Address,attr"`
			TTL     string `xml:"TTL,attr"`
			MXPref  string `xml:"MXPref,attr"`
		} `xml:"DomainDNSGetHostsResult>host"`
	} `xml:"CommandResponse"`
}

func (n *Namecheap) GetRecords(ctx context.Context, domain string) ([]model.DNSRecord, error) {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("ApiUser", n.APIUser)
	params.Set("ApiKey", n.APIKey)
	params.Set("UserName", n.APIUser)
	params.Set("Command", "namecheap.domains.dns.getHosts")
	params.Set("ClientIp", n.ClientIP)
	params.Set("SLD", sld)
	params.Set("TLD", tld)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := n.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("namecheap getHosts returned status %d", res.StatusCode)
	}

	var parsed ncResponse
	if err := xml.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("unparseable namecheap response: %w", err)
	}
	if parsed.Status != "OK" {
		return nil, fmt.Errorf("namecheap getHosts failed: %s", strings.Join(parsed.Errors, "; "))
	}

	records := make([]model.DNSRecord, 0, len(parsed.CommandResponse.Hosts))
	for _, h := range parsed.CommandResponse.Hosts {
		ttl, _ := strconv.Atoi(h.TTL)
		rec := model.DNSRecord{Type: h.Type, Name: h.Name, Content: h.Address, TTL: ttl}
		if h.Type == "MX" {
			if pref, err := strconv.Atoi(h.MXPref); err == nil {
				rec.Priority = &pref
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (n *Namecheap) UpdateRecords(ctx context.Context, domain string, records []model.DNSRecord) (*UpdateResult, error) {
	return nil, &ErrUpdateUnsupported{Registrar: "namecheap"}
}

func splitDomain(domain string) (sld, tld string, err error) {
	parts := strings.SplitN(domain, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid domain %q", domain)
	}
	return parts[0], parts[1], nil
}

var _ Registrar = (*Namecheap)(nil)
