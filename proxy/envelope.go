package proxy

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
)

const internalServerError = `{"message":"Internal server error"}`

// Envelope is the handler result for a backend that answered 200.
type Envelope struct {
	Status   int               `json:"status"`
	BodyJSON json.RawMessage   `json:"bodyJson"`
	Headers  map[string]string `json:"headers"`
}

// Failure is the handler result for every other outcome. BodyJSON always holds
// text, never parsed json.
type Failure struct {
	Status   int    `json:"status"`
	BodyJSON string `json:"bodyJson"`
}

// PingResponse answers warm up pings. Its shape differs from Envelope because
// the ping integration reads statusCode/body.
type PingResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// NewPingResponse returns the fixed Pong response.
func NewPingResponse() PingResponse {
	return PingResponse{
		StatusCode: http.StatusOK,
		Body:       `{"message":"Pong"}`,
	}
}

// TransportFailure is the fixed failure reported when the backend could not
// be reached. The underlying error is never exposed.
func TransportFailure() Failure {
	return Failure{
		Status:   http.StatusInternalServerError,
		BodyJSON: internalServerError,
	}
}

// flattenHeaders lower cases header names and joins repeated values.
func flattenHeaders(header http.Header) map[string]string {
	flat := make(map[string]string, len(header))

	for k, v := range header {
		flat[strings.ToLower(k)] = strings.Join(v, ", ")
	}

	return flat
}

// marshal encodes v as compact json without html escaping.
func marshal(v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
