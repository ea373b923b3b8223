package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MissingWebhookURL(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrMissingWebhookURL)
}

func TestSend_PostsMessage(t *testing.T) {
	var received Message

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	msg := ThreatAlert("http://example.com", "XSS", "High", "reflected input in search box")

	require.NoError(t, client.Send(context.Background(), msg))
	assert.Equal(t, msg.Text, received.Text)
	require.NotEmpty(t, received.Blocks)
	assert.Equal(t, "header", received.Blocks[0].Type)
}

func TestSend_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	err = client.Send(context.Background(), Message{Text: "hi"})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestThreatAlert_TruncatesFindings(t *testing.T) {
	findings := strings.Repeat("x", findingsTruncateLimit+500)

	msg := ThreatAlert("http://example.com", "XSS", "High", findings)

	last := msg.Blocks[len(msg.Blocks)-1]
	require.NotNil(t, last.Text)
	assert.LessOrEqual(t, len(last.Text.Text), findingsTruncateLimit+100)
	assert.True(t, strings.HasSuffix(last.Text.Text, "..."))
}
