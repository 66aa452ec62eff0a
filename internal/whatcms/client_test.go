package whatcms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/khanhnv2901/cmsaudit/internal/httpclient"
	apperrors "github.com/khanhnv2901/cmsaudit/internal/shared/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	fetcher := httpclient.New(httpclient.Config{Timeout: time.Second})
	return NewClient("secret-key", fetcher, WithEndpoint(srv.URL+"/APIEndpoint"))
}

func TestIdentify_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/APIEndpoint" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "secret-key" {
			t.Errorf("expected key query param, got %q", got)
		}
		if got := r.URL.Query().Get("url"); got != "https://example.com" {
			t.Errorf("expected url query param, got %q", got)
		}
		_, _ = w.Write([]byte(`{"name":"WordPress","version":"6.0","confidence":95}`))
	})

	info, err := client.Identify(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.CMSName() != "WordPress" {
		t.Errorf("expected WordPress, got %q", info.CMSName())
	}
	if info.CMSVersion() != "6.0" {
		t.Errorf("expected version 6.0, got %q", info.CMSVersion())
	}
	if info.Confidence != 95 {
		t.Errorf("expected confidence 95, got %v", info.Confidence)
	}
}

func TestIdentify_MissingFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	info, err := client.Identify(context.Background(), "http://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != nil || info.Version != nil {
		t.Errorf("expected absent name and version, got %+v", info)
	}
	if info.Confidence != 0 {
		t.Errorf("expected confidence to default to 0, got %v", info.Confidence)
	}
}

func TestIdentify_InvalidKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"msg":"Invalid API key provided"}`))
	})

	_, err := client.Identify(context.Background(), "http://example.com")
	if !errors.Is(err, ErrInvalidAPIKey) {
		t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
	}
	if errors.Is(err, apperrors.ErrAPIRequestFailed) {
		t.Fatal("invalid key must not be reported as a failed request")
	}
}

func TestIdentify_OtherMessageIsNotInvalidKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"msg":"Success","name":"Drupal","confidence":"70"}`))
	})

	info, err := client.Identify(context.Background(), "http://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.CMSName() != "Drupal" || info.Confidence != 70 {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestIdentify_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"name":"WordPress"}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>not json</html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.Identify(context.Background(), "http://example.com")
			if !errors.Is(err, apperrors.ErrAPIRequestFailed) {
				t.Fatalf("expected ErrAPIRequestFailed, got %v", err)
			}
		})
	}
}

func TestIdentify_TransportFailureRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	fetcher := httpclient.New(httpclient.Config{Timeout: time.Second})
	client := NewClient("secret-key", fetcher, WithEndpoint(endpoint))

	_, err := client.Identify(context.Background(), "http://example.com")
	if !errors.Is(err, apperrors.ErrAPIRequestFailed) {
		t.Fatalf("expected ErrAPIRequestFailed, got %v", err)
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("error leaks the API key: %v", err)
	}
}

func TestNewClient_DefaultEndpoint(t *testing.T) {
	client := NewClient("k", nil, WithEndpoint(""))
	if client.endpoint != DefaultEndpoint {
		t.Fatalf("expected default endpoint, got %s", client.endpoint)
	}
}
