package checker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/khanhnv2901/cmsaudit/internal/httpclient"
	"github.com/khanhnv2901/cmsaudit/internal/whatcms"
)

// fakeProber answers from a fixed table; URLs not in the table are unreachable.
type fakeProber struct {
	responses map[string]*httpclient.Response
	calls     []string
}

func (f *fakeProber) Get(_ context.Context, rawURL string) (*httpclient.Response, bool) {
	f.calls = append(f.calls, rawURL)
	resp, ok := f.responses[rawURL]
	return resp, ok
}

func status(code int) *httpclient.Response {
	return &httpclient.Response{StatusCode: code, Header: http.Header{}}
}

// site is an httptest server whose paths answer with configured statuses and
// which records every path requested.
type site struct {
	*httptest.Server
	mu       sync.Mutex
	statuses map[string]int
	headers  http.Header
	hits     []string
}

func newSite(t *testing.T, statuses map[string]int) *site {
	t.Helper()
	s := &site{statuses: statuses, headers: http.Header{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits = append(s.hits, r.URL.Path)
		code, ok := s.statuses[r.URL.Path]
		s.mu.Unlock()
		if !ok {
			code = http.StatusNotFound
		}
		for k, vs := range s.headers {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(code)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *site) hit(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.hits {
		if h == path {
			return true
		}
	}
	return false
}

func newTestProber() *httpclient.Client {
	return httpclient.New(httpclient.Config{Timeout: 2 * time.Second})
}

func strPtr(s string) *string { return &s }

func info(name, version string, confidence float64) whatcms.Info {
	i := whatcms.Info{Confidence: whatcms.Confidence(confidence)}
	if name != "" {
		i.Name = strPtr(name)
	}
	if version != "" {
		i.Version = strPtr(version)
	}
	return i
}

// unreachableURL returns the URL of a server that has already been closed.
func unreachableURL() string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	u := srv.URL
	srv.Close()
	return u
}
