package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteasPublishSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		if payload["title"] == "" || payload["body"] == "" {
			t.Error("expected title and body in payload")
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"code":201,"data":{"id":"abc123","slug":""}}`))
	}))
	defer srv.Close()

	pub := NewWriteasPublisher(srv.URL, "", srv.Client())
	url, err := pub.Publish(context.Background(), "My Post", "Some markdown body.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://write.as/abc123" {
		t.Errorf("unexpected url: %s", url)
	}
}

func TestWriteasPublishMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"code":201,"data":{}}`))
	}))
	defer srv.Close()

	pub := NewWriteasPublisher(srv.URL, "", srv.Client())
	_, err := pub.Publish(context.Background(), "My Post", "body")
	if err == nil {
		t.Fatal("expected error when response has no post ID")
	}
}

func TestWriteasPublishNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	pub := NewWriteasPublisher(srv.URL, "", srv.Client())
	_, err := pub.Publish(context.Background(), "My Post", "body")
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
}
