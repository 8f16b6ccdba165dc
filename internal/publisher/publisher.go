// internal/publisher/publisher.go
package publisher

import (
	"context"
	"net/http"
	"time"
)

// Publisher converts an article into one platform's submission format and
// performs the create call. Adapters do not retry: any non-success response
// or missing URL is a hard failure for the attempt, and the pipeline's
// fallback hop decides what happens next.
type Publisher interface {
	PlatformID() string
	Publish(ctx context.Context, title, body string) (string, error)
}

func defaultClient() *http.Client {
	return &http.Client{Timeout: 20 * time.Second}
}
