package proxy

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// PingName is the reserved Event name sent by the scheduled warm up rule.
const PingName = "pinger"

// Event is the payload the api gateway mapping template builds for each
// invocation.
type Event struct {
	Name          string          `json:"name,omitempty"`
	RequestParams RequestParams   `json:"requestParams"`
	Params        EventParams     `json:"params"`
	Context       CallerContext   `json:"context"`
	BodyJSON      json.RawMessage `json:"bodyJson,omitempty"`
}

// RequestParams describes the backend the request is forwarded to.
type RequestParams struct {
	Hostname string `json:"hostname" validate:"required"`
	Port     Port   `json:"port"`
	Path     string `json:"path"`
	Method   string `json:"method" validate:"required"`
}

// EventParams holds the request parameters the gateway extracted from the
// incoming call. Every member is optional.
type EventParams struct {
	Header      Headers `json:"header"`
	Path        Params  `json:"path"`
	Querystring Params  `json:"querystring"`
}

// CallerContext carries the identity of the original caller as seen by the
// gateway.
type CallerContext struct {
	UserAgent string `json:"user-agent"`
	SourceIP  string `json:"source-ip"`
}

// Port is the backend port as text. Numbers and strings are both accepted;
// an empty string or null leaves it unset.
type Port string

// UnmarshalJSON decodes any json value into its textual form.
func (p *Port) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return errors.Wrap(err, "failed decoding port")
	}

	if v == nil {
		*p = ""
		return nil
	}

	*p = Port(anyText(v))
	return nil
}

// String returns the port text.
func (p Port) String() string {
	return string(p)
}

// Headers maps header names to values. Non string values are rendered as text
// and null values are dropped.
type Headers map[string]string

// UnmarshalJSON decodes a json object (or null) into h.
func (h *Headers) UnmarshalJSON(b []byte) error {
	params := Params{}
	if err := params.UnmarshalJSON(b); err != nil {
		return errors.Wrap(err, "failed decoding headers")
	}

	if params == nil {
		*h = nil
		return nil
	}

	headers := make(Headers, len(params))
	for _, param := range params {
		if param.Value == nil {
			continue
		}

		headers[param.Key] = anyText(param.Value)
	}

	*h = headers
	return nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// DecodeEvent decodes an invocation payload. When the payload does not fit the
// Event schema the error wraps ErrInvalidEvent and the returned Event only
// carries the name, so a warm up ping is still recognised.
func DecodeEvent(payload []byte) (Event, error) {
	event := Event{}

	err := json.Unmarshal(payload, &event)
	if err == nil {
		return event, nil
	}

	var marker struct {
		Name interface{} `json:"name"`
	}

	partial := Event{}
	if json.Unmarshal(payload, &marker) == nil {
		if name, ok := marker.Name.(string); ok {
			partial.Name = name
		}
	}

	return partial, errors.Wrap(ErrInvalidEvent, err.Error())
}

// IsPing returns true when the event is a scheduled warm up ping.
func (event Event) IsPing() bool {
	return event.Name == PingName
}

// Validate checks the fields a forward needs are present.
func (event Event) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New()
	})

	if err := validate.Struct(event); err != nil {
		return errors.Wrap(ErrInvalidEvent, err.Error())
	}

	return nil
}

// HasBody returns true when BodyJSON holds a value that should be sent
// upstream. Absent, null, "", false and zero values are treated as no body.
func (event Event) HasBody() bool {
	raw := bytes.TrimSpace(event.BodyJSON)
	if len(raw) == 0 {
		return false
	}

	switch string(raw) {
	case "null", `""`, "false":
		return false
	}

	if raw[0] == '"' {
		return true
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if f, err := n.Float64(); err == nil && f == 0 {
			return false
		}
	}

	return true
}
