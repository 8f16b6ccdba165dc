// internal/registrar/registrar.go
package registrar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/backlinkoo/backlinkoo-backend/internal/model"
)

// Registrar is the uniform capability surface every DNS vendor implements.
// Adding a vendor means adding a variant, not extending a switch at the
// call sites.
type Registrar interface {
	Code() string
	GetRecords(ctx context.Context, domain string) ([]model.DNSRecord, error)
	UpdateRecords(ctx context.Context, domain string, records []model.DNSRecord) (*UpdateResult, error)
}

// Credentials carries the per-vendor auth material sent by the client.
type Credentials struct {
	RegistrarCode string `json:"registrarCode"`
	APIKey        string `json:"apiKey"`
	APISecret     string `json:"apiSecret,omitempty"`
	APIUser       string `json:"apiUser,omitempty"`
	ClientIP      string `json:"clientIp,omitempty"`
}

// UpdateResult reports per-record outcomes for an update call. Partial
// failure is normal: one bad record does not abort the rest.
type UpdateResult struct {
	Updated int      `json:"recordsUpdated"`
	Created int      `json:"recordsCreated"`
	Failed  int      `json:"recordsFailed"`
	Errors  []string `json:"errors"`
	Details []string `json:"details"`
}

// ErrUpdateUnsupported marks vendors whose update path is not implemented.
type ErrUpdateUnsupported struct {
	Registrar string
}

func (e *ErrUpdateUnsupported) Error() string {
	return fmt.Sprintf("record updates are not supported for registrar %q", e.Registrar)
}

// New maps a registrar code to its variant. The set is closed on purpose.
func New(creds Credentials, client *http.Client) (Registrar, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	switch creds.RegistrarCode {
	case "cloudflare":
		return NewCloudflare(creds.APIKey, client), nil
	case "godaddy":
		return NewGoDaddy(creds.APIKey, creds.APISecret, client), nil
	case "digitalocean":
		return NewDigitalOcean(creds.APIKey, client), nil
	case "namecheap":
		return NewNamecheap(creds.APIUser, creds.APIKey, creds.ClientIP, client), nil
	default:
		return nil, fmt.Errorf("unsupported registrar code %q", creds.RegistrarCode)
	}
}
