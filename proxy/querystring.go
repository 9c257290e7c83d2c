package proxy

import (
	"net/url"
	"strings"
)

// QueryString builds an & joined list of key=value pairs from values, in
// document order. Keys and values are escaped as uri components.
func QueryString(values Params) string {
	pairs := make([]string, 0, len(values))

	for _, param := range values {
		pairs = append(pairs, escapeComponent(param.Key)+"="+escapeComponent(anyText(param.Value)))
	}

	return strings.Join(pairs, "&")
}

// escapeComponent percent encodes everything outside the unreserved set,
// including spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
