// internal/verify/verifier.go
package verify

import (
	"context"
	"net/http"
	"time"

	appErrors "github.com/backlinkoo/backlinkoo-backend/internal/errors"
)

// Verifier confirms a published URL is publicly reachable. HEAD first, GET
// when HEAD fails or is rejected. No side effects: checking the same URL
// twice yields the same result.
type Verifier struct {
	Client  *http.Client
	Timeout time.Duration
}

func NewVerifier(timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Verifier{
		Client:  &http.Client{Timeout: timeout},
		Timeout: timeout,
	}
}

// Check returns nil when the URL answers 2xx. A non-2xx status or a network
// failure is an ErrVerificationFailed; callers treat "published but
// unreachable" the same as a publish failure.
func (v *Verifier) Check(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, v.Timeout)
	defer cancel()

	status, err := v.request(ctx, http.MethodHead, url)
	if err != nil || status == http.StatusMethodNotAllowed {
		status, err = v.request(ctx, http.MethodGet, url)
	}
	if err != nil {
		return &appErrors.ErrVerificationFailed{URL: url}
	}
	if status < 200 || status >= 300 {
		return &appErrors.ErrVerificationFailed{URL: url, StatusCode: status}
	}
	return nil
}

func (v *Verifier) request(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	res, err := v.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	return res.StatusCode, nil
}
