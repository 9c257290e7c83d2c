package proxy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_noRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			http.Redirect(w, r, "/target", http.StatusFound)
			return
		}

		t.Errorf("redirect followed to %s", r.URL.Path)
	}))
	defer server.Close()

	req, err := http.NewRequest("GET", server.URL+"/moved", nil)
	require.NoError(t, err)

	resp, err := NewHTTPClient(false).Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/target", resp.Header.Get("Location"))
}

func TestNewHTTPClient_tracing(t *testing.T) {
	plain := NewHTTPClient(false)
	traced := NewHTTPClient(true)

	assert.Nil(t, plain.Transport)
	assert.NotNil(t, traced.Transport)
	assert.NotNil(t, traced.CheckRedirect)
}
