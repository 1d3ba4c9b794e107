package testutil

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/feebridge/feebridge/internal/httpclient"
)

// MockHTTPClient implements a mock HTTP client for testing
type MockHTTPClient struct {
	mu     sync.RWMutex
	routes map[string][]MockResponse
	calls  map[string]int
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string][]MockResponse),
		calls:  make(map[string]int),
	}
}

// RegisterResponse registers a mock response for a given URL suffix
func (m *MockHTTPClient) RegisterResponse(url string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[url] = []MockResponse{resp}
}

// RegisterResponses registers a sequence of responses for a URL suffix;
// each call consumes the next response, the last one repeats
func (m *MockHTTPClient) RegisterResponses(url string, resps ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[url] = resps
}

// CallCount returns how many requests matched the given URL suffix
func (m *MockHTTPClient) CallCount(url string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[url]
}

// Send implements the httpclient.Client interface
func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched MockResponse
	var found bool
	for route, resps := range m.routes {
		if strings.HasSuffix(stripQuery(req.URL), route) || strings.HasSuffix(req.URL, route) {
			n := m.calls[route]
			m.calls[route] = n + 1
			if n >= len(resps) {
				n = len(resps) - 1
			}
			matched = resps[n]
			found = true
			break
		}
	}

	if !found {
		return &httpclient.Response{
			StatusCode: http.StatusNotFound,
			Body:       []byte("Not Found"),
			Headers:    map[string]string{},
		}, nil
	}

	// Mirror DefaultClient: non-2xx surfaces as a typed HTTP error
	if matched.StatusCode >= 400 {
		return nil, httpclient.NewError(matched.StatusCode, matched.Body)
	}

	return &httpclient.Response{
		StatusCode: matched.StatusCode,
		Body:       matched.Body,
		Headers:    matched.Headers,
	}, nil
}

// Clear removes all registered responses and call counts
func (m *MockHTTPClient) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = make(map[string][]MockResponse)
	m.calls = make(map[string]int)
}

func stripQuery(url string) string {
	if i := strings.Index(url, "?"); i >= 0 {
		return url[:i]
	}
	return url
}
