package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// MockTransport is an http.RoundTripper for tests. Stubs are matched in
// registration order; the first match wins. Every request is recorded
// together with its body.
type MockTransport struct {
	mu       sync.Mutex
	stubs    []stub
	fallback *stub
	calls    []RecordedRequest
}

// RecordedRequest is one request seen by a MockTransport.
type RecordedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

type stub struct {
	match  func(*http.Request) bool
	status int
	header http.Header
	body   []byte
	err    error
}

func (s *stub) respond(req *http.Request) (*http.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	header := s.header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode:    s.status,
		Status:        fmt.Sprintf("%d %s", s.status, http.StatusText(s.status)),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(s.body)),
		ContentLength: int64(len(s.body)),
		Request:       req,
	}, nil
}

// NewMockTransport returns a MockTransport with no stubs.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// StubResponse answers every otherwise unmatched request.
func (m *MockTransport) StubResponse(status int, body string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &stub{status: status, body: []byte(body)}
	return m
}

// StubError fails every otherwise unmatched request with err.
func (m *MockTransport) StubError(err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &stub{err: err}
	return m
}

// StubPath answers requests whose URL path equals path.
func (m *MockTransport) StubPath(path string, status int, body string) *MockTransport {
	return m.StubFunc(func(req *http.Request) bool {
		return req.URL.Path == path
	}, status, body)
}

// StubMethod answers requests with the given method.
func (m *MockTransport) StubMethod(method string, status int, body string) *MockTransport {
	return m.StubFunc(func(req *http.Request) bool {
		return req.Method == method
	}, status, body)
}

// StubFunc answers requests matching fn.
func (m *MockTransport) StubFunc(fn func(*http.Request) bool, status int, body string) *MockTransport {
	return m.add(stub{match: fn, status: status, body: []byte(body)})
}

// StubJSON answers requests whose path equals path with a JSON body.
func (m *MockTransport) StubJSON(path string, status int, body string) *MockTransport {
	return m.add(stub{
		match:  func(req *http.Request) bool { return req.URL.Path == path },
		status: status,
		header: http.Header{"Content-Type": []string{"application/json"}},
		body:   []byte(body),
	})
}

// StubFuncError fails requests matching fn with err.
func (m *MockTransport) StubFuncError(fn func(*http.Request) bool, err error) *MockTransport {
	return m.add(stub{match: fn, err: err})
}

func (m *MockTransport) add(s stub) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, s)
	return m
}

// RoundTrip implements http.RoundTripper.
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := RecordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, err
		}
		rec.Body = body
	}

	m.mu.Lock()
	m.calls = append(m.calls, rec)
	var matched *stub
	for i := range m.stubs {
		if m.stubs[i].match(req) {
			matched = &m.stubs[i]
			break
		}
	}
	if matched == nil {
		matched = m.fallback
	}
	m.mu.Unlock()

	if matched == nil {
		return nil, fmt.Errorf("httpclient: no stub for %s %s", req.Method, req.URL)
	}
	return matched.respond(req)
}

// Requests returns a copy of every recorded request.
func (m *MockTransport) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.calls...)
}

// RequestCount returns how many requests were recorded.
func (m *MockTransport) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastRequest returns the most recent request and false when none was made.
func (m *MockTransport) LastRequest() (RecordedRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return RecordedRequest{}, false
	}
	return m.calls[len(m.calls)-1], true
}

// Reset drops all stubs and recorded requests.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = nil
	m.fallback = nil
	m.calls = nil
}
