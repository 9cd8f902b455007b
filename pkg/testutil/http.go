// Package testutil provides common test utilities for handler and router tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebula/internal/command/envelope"
)

// NewRequest creates a simple HTTP request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// NewCommandRequest creates a GET request for path with the given query
// values encoded in order of the map's sorted keys.
func NewCommandRequest(t *testing.T, path string, query url.Values) *http.Request {
	t.Helper()
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return httptest.NewRequest(http.MethodGet, target, nil)
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// DecodeEnvelope unmarshals the response body as a command envelope.
func DecodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope.Envelope {
	t.Helper()
	var env envelope.Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), "failed to unmarshal envelope")
	return env
}

// UnmarshalResponse unmarshals the response body into the target struct.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var result T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result), "failed to unmarshal response")
	return &result
}

// AssertStatus asserts the response status code matches expected.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code")
}

// AssertCommandHeaders asserts the JSON, no-cache and CORS headers every
// command response carries.
func AssertCommandHeaders(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	h := rr.Header()
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	AssertCORSHeaders(t, rr)
}

// AssertCORSHeaders asserts the no-cache and CORS headers.
func AssertCORSHeaders(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	h := rr.Header()
	assert.Equal(t, "no-cache", h.Get("Cache-Control"))
	assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", h.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", h.Get("Access-Control-Allow-Headers"))
}

// AssertEnvelopeError asserts a failed envelope with the given status and code.
func AssertEnvelopeError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedCode string) envelope.Envelope {
	t.Helper()
	AssertStatus(t, rr, expectedStatus)
	env := DecodeEnvelope(t, rr)
	assert.False(t, env.Status)
	assert.Nil(t, env.Payload)
	require.NotNil(t, env.Error)
	assert.Equal(t, expectedCode, env.Error.Code)
	assert.Equal(t, expectedStatus, env.Error.Status)
	return env
}

// AssertErrorCode asserts a non-envelope JSON error body carries expectedCode.
func AssertErrorCode(t *testing.T, rr *httptest.ResponseRecorder, expectedCode string) {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "failed to unmarshal error response")
	assert.Equal(t, expectedCode, body["error"], "unexpected error code")
}
