package proxy

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPingResponse(t *testing.T) {
	b, err := json.Marshal(NewPingResponse())
	require.NoError(t, err)

	assert.JSONEq(t, `{"statusCode":200,"body":"{\"message\":\"Pong\"}"}`, string(b))
}

func TestTransportFailure(t *testing.T) {
	err := NewFailureError(TransportFailure(), errors.Wrap(ErrTransport, "dial tcp: connection refused"))

	assert.Equal(t, `{"status":500,"bodyJson":"{\"message\":\"Internal server error\"}"}`, err.Error())
	assert.NotContains(t, err.Error(), "refused")
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestFailureError_noHTMLEscape(t *testing.T) {
	err := NewFailureError(Failure{Status: 404, BodyJSON: "<h1>not found & gone</h1>"}, ErrUpstreamStatus)

	assert.Equal(t, `{"status":404,"bodyJson":"<h1>not found & gone</h1>"}`, err.Error())
	assert.Equal(t, ErrUpstreamStatus, errors.Cause(err))
}

func TestFlattenHeaders(t *testing.T) {
	header := http.Header{
		"Content-Type": {"application/json"},
		"Set-Cookie":   {"a=1", "b=2"},
		"X-Request-Id": {"abc"},
	}

	expected := map[string]string{
		"content-type": "application/json",
		"set-cookie":   "a=1, b=2",
		"x-request-id": "abc",
	}

	assert.Equal(t, expected, flattenHeaders(header))
}

func TestFlattenHeaders_empty(t *testing.T) {
	flat := flattenHeaders(nil)

	assert.NotNil(t, flat)
	assert.Empty(t, flat)
}

func TestEnvelope_marshal(t *testing.T) {
	envelope := Envelope{
		Status:   200,
		BodyJSON: json.RawMessage(`{"ok": true}`),
		Headers:  map[string]string{},
	}

	b, err := json.Marshal(envelope)
	require.NoError(t, err)

	assert.JSONEq(t, `{"status":200,"bodyJson":{"ok":true},"headers":{}}`, string(b))
}
