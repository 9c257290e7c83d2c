package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const defaultPort = "80"

// OutboundRequest describes the single request sent to the backend.
type OutboundRequest struct {
	Method  string
	Host    string
	Port    string
	Path    string
	Headers map[string]string
	Body    []byte
}

// BuildRequest assembles the outbound request for event. The caller's user
// agent and source ip always replace any header of the same name, and the
// content type defaults to application/json.
func BuildRequest(event Event) (*OutboundRequest, error) {
	port := event.RequestParams.Port.String()
	if port == "" {
		port = defaultPort
	}

	path := Supplant(event.RequestParams.Path, event.Params.Path)
	if query := QueryString(event.Params.Querystring); query != "" {
		path += "?" + query
	}

	headers := make(map[string]string, len(event.Params.Header)+3)
	for k, v := range event.Params.Header {
		headers[k] = v
	}

	setHeader(headers, "User-Agent", event.Context.UserAgent)
	setHeader(headers, "X-Forwarded-For", event.Context.SourceIP)

	if v, ok := findHeader(headers, "Content-Type"); !ok || v == "" {
		setHeader(headers, "Content-Type", "application/json")
	}

	request := &OutboundRequest{
		Method:  event.RequestParams.Method,
		Host:    event.RequestParams.Hostname,
		Port:    port,
		Path:    path,
		Headers: headers,
	}

	if event.HasBody() {
		body := new(bytes.Buffer)
		if err := json.Compact(body, event.BodyJSON); err != nil {
			return nil, errors.Wrap(err, "failed serializing request body")
		}

		request.Body = body.Bytes()
	}

	return request, nil
}

// String returns a short representation for logging.
func (r *OutboundRequest) String() string {
	return fmt.Sprintf("%s http://%s%s", r.Method, net.JoinHostPort(r.Host, r.Port), r.Path)
}

// HTTPRequest converts the descriptor into an *http.Request. The resolved
// path is written to the wire verbatim and must not contain spaces, control
// characters or non ascii bytes.
func (r *OutboundRequest) HTTPRequest(ctx context.Context) (*http.Request, error) {
	if err := checkPath(r.Path); err != nil {
		return nil, errors.Wrapf(err, "failed creating request for %v", r)
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	target := "http://" + net.JoinHostPort(r.Host, r.Port)

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed creating request for %v", r)
	}

	if strings.HasPrefix(r.Path, "//") {
		// an opaque "//" target would be written in absolute form
		if err := setEscapedPath(req.URL, r.Path); err != nil {
			return nil, errors.Wrapf(err, "failed creating request for %v", r)
		}
	} else {
		req.URL.Opaque = r.Path
	}

	for k, v := range r.Headers {
		switch http.CanonicalHeaderKey(k) {
		case "Host":
			req.Host = v
		case "Content-Length", "Transfer-Encoding", "Connection", "Accept-Encoding":
			// managed by the transport
		case "User-Agent", "Content-Type", "X-Forwarded-For":
			req.Header.Set(k, v)
		default:
			req.Header[k] = []string{v}
		}
	}

	return req, nil
}

// checkPath rejects request targets that cannot be written on a request line.
func checkPath(path string) error {
	for i := 0; i < len(path); i++ {
		if c := path[i]; c <= ' ' || c >= 0x7f {
			return errors.Errorf("request path contains unescaped characters at offset %d", i)
		}
	}

	return nil
}

// setEscapedPath stores path, already escaped, in u.
func setEscapedPath(u *url.URL, path string) error {
	raw, query, _ := strings.Cut(path, "?")

	unescaped, err := url.PathUnescape(raw)
	if err != nil {
		return errors.Wrap(err, "invalid request path escaping")
	}

	u.Path = unescaped
	u.RawPath = raw
	u.RawQuery = query
	u.ForceQuery = strings.Contains(path, "?") && query == ""

	return nil
}

// setHeader sets name to value after removing any header with the same name in
// a different case.
func setHeader(headers map[string]string, name, value string) {
	for k := range headers {
		if strings.EqualFold(k, name) {
			delete(headers, k)
		}
	}

	headers[name] = value
}

// findHeader looks up name ignoring case.
func findHeader(headers map[string]string, name string) (string, bool) {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}

	return "", false
}
