package proxy

import (
	"net/http"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// HTTPClient abstracts the outbound call. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns the client used for the backend call. When tracing is
// enabled the client is instrumented with X-Ray so the call shows up as a
// subsegment of the lambda trace.
func NewHTTPClient(tracing bool) *http.Client {
	client := &http.Client{
		// redirects are returned to the caller as is
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	if tracing {
		return xray.Client(client)
	}

	return client
}
