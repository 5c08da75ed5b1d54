package httpx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"
)

// scripted RoundTripper: one entry per attempt
type mockRoundTripper struct {
	responses []*http.Response
	errs      []error
	index     int
}

func (m *mockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	if m.index >= len(m.responses) {
		return nil, errors.New("no more scripted responses")
	}
	resp, err := m.responses[m.index], m.errs[m.index]
	m.index++
	return resp, err
}

func resp(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func client(responses []*http.Response, errs []error) *http.Client {
	for len(errs) < len(responses) {
		errs = append(errs, nil)
	}
	return &http.Client{Transport: &mockRoundTripper{responses: responses, errs: errs}}
}

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestGetSuccess(t *testing.T) {
	c := client([]*http.Response{resp(200, "<html>ok</html>", nil)}, nil)
	body, err := Get(context.Background(), c, "https://example.com/", nil, fastRetry(3))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(body) != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
}

func TestGetRetriesServerErrors(t *testing.T) {
	c := client([]*http.Response{
		resp(503, "unavailable", nil),
		resp(502, "bad gateway", nil),
		resp(200, "ok", nil),
	}, nil)

	body, err := Get(context.Background(), c, "https://example.com/", nil, fastRetry(3))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("body = %q, want the third response", body)
	}
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	c := client([]*http.Response{
		resp(404, "missing", nil),
		resp(200, "should not be reached", nil),
	}, nil)

	_, err := Get(context.Background(), c, "https://example.com/", nil, fastRetry(3))
	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("error = %v, want *HTTPError", err)
	}
	if herr.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", herr.StatusCode)
	}
}

func TestGetExhaustsRetries(t *testing.T) {
	c := client([]*http.Response{
		resp(500, "boom", nil),
		resp(500, "boom", nil),
		resp(500, "boom", nil),
	}, nil)

	_, err := Get(context.Background(), c, "https://example.com/", nil, fastRetry(3))
	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("error = %v, want the last *HTTPError", err)
	}
	if herr.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", herr.StatusCode)
	}
}

func TestGetHonorsRetryAfter(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "0")
	c := client([]*http.Response{
		resp(429, "slow down", h),
		resp(200, "ok", nil),
	}, nil)

	body, err := Get(context.Background(), c, "https://example.com/", nil, fastRetry(3))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("body = %q", body)
	}
}

func TestGetSendsHeaders(t *testing.T) {
	var seen http.Header
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		seen = req.Header
		return resp(200, "ok", nil), nil
	})

	header := http.Header{}
	header.Set("User-Agent", "test-agent")
	header.Set("Cookie", "ud_locale=en_US")

	_, err := Get(context.Background(), &http.Client{Transport: rt}, "https://example.com/", header, fastRetry(1))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if seen.Get("User-Agent") != "test-agent" {
		t.Errorf("User-Agent = %q", seen.Get("User-Agent"))
	}
	if seen.Get("Cookie") != "ud_locale=en_US" {
		t.Errorf("Cookie = %q", seen.Get("Cookie"))
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }
