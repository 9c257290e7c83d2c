package proxy

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// dummyPayload returns the raw content of testdata/events/<category>.json.
func dummyPayload(t *testing.T, category string) []byte {
	t.Helper()

	content, err := os.ReadFile(fmt.Sprintf("testdata/events/%s.json", category))
	require.NoError(t, err)

	return content
}

// dummyEvent loads testdata/events/<category>.json.
func dummyEvent(t *testing.T, category string) Event {
	t.Helper()

	event := Event{}
	require.NoError(t, json.Unmarshal(dummyPayload(t, category), &event))

	return event
}

// pointAt rewrites the event target to the given test server.
func pointAt(t *testing.T, event Event, server *httptest.Server) Event {
	t.Helper()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)

	event.RequestParams.Hostname = host
	event.RequestParams.Port = Port(port)

	return event
}

func testParams(t *testing.T, s string) Params {
	t.Helper()

	params := Params{}
	require.NoError(t, json.Unmarshal([]byte(s), &params))

	return params
}

func testLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	return logger, hook
}
