// internal/model/dns_record.go
package model

// DNSRecord is the registrar-neutral record shape used by the DNS endpoints.
// Priority is only meaningful for MX/SRV, Proxied only for Cloudflare.
type DNSRecord struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	TTL      int    `json:"ttl"`
	Priority *int   `json:"priority,omitempty"`
	Proxied  *bool  `json:"proxied,omitempty"`
}
