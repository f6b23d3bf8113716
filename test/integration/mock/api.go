package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RecordedRequest is one call received by ApiMock.
type RecordedRequest struct {
	Headers map[string]string
	Body    map[string]any
}

type cannedResponse struct {
	status int
	body   any
}

// ApiMock is an HTTP server standing in for a third-party API. Responses are
// keyed by method and path; unknown routes answer 200 with an empty object.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	responses map[string]cannedResponse
	received  map[string][]RecordedRequest
}

// NewApiServer creates a mock that is not yet listening.
func NewApiServer() *ApiMock {
	return &ApiMock{
		responses: map[string]cannedResponse{},
		received:  map[string][]RecordedRequest{},
	}
}

// Start begins serving on a random local port.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

// Close stops the server.
func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

// GetUrl returns the base URL of the running server.
func (a *ApiMock) GetUrl() string {
	if a.server == nil {
		return ""
	}
	return a.server.URL
}

// SetResponse configures the answer for method and path.
func (a *ApiMock) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = cannedResponse{status: status, body: body}
}

// Requests returns every request received for method and path.
func (a *ApiMock) Requests(method, path string) []RecordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]RecordedRequest, len(a.received[method+path]))
	copy(out, a.received[method+path])
	return out
}

// Reset forgets configured responses and received requests.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses = map[string]cannedResponse{}
	a.received = map[string][]RecordedRequest{}
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)

	headers := map[string]string{}
	for name, values := range r.Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	a.mu.Lock()
	a.received[key] = append(a.received[key], RecordedRequest{Headers: headers, Body: body})
	resp, ok := a.responses[key]
	a.mu.Unlock()

	if !ok {
		resp = cannedResponse{status: http.StatusOK, body: map[string]any{}}
	}
	payload, _ := json.Marshal(resp.body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write(payload)
}
