package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_NormalizesHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><h1>hello</h1><p>world`))
	}))
	defer server.Close()

	f := New(WithHTTPClient(server.Client()))

	content, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	// the parser closes unterminated tags and fills in the document skeleton
	assert.Contains(t, content, "<h1>hello</h1>")
	assert.Contains(t, content, "<p>world</p>")
	assert.Contains(t, content, "<head>")
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	f := New(WithHTTPClient(server.Client()))

	_, err := f.Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestFetch_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	f := New()

	_, err := f.Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestFetch_InvalidURL(t *testing.T) {
	f := New()

	_, err := f.Fetch(context.Background(), "http://\x7f")
	assert.ErrorIs(t, err, ErrRequestFailed)
}
