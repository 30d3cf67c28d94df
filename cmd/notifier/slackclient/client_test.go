package slackclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresTokenAndChannel(t *testing.T) {
	_, err := New("", "C1")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = New("xoxb-test", "")
	assert.Error(t, err)
}

func TestNotify_PostsToChannel(t *testing.T) {
	var gotChannel, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		gotChannel = r.FormValue("channel")
		gotText = r.FormValue("text")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C1","ts":"1700000000.000100"}`))
	}))
	defer srv.Close()

	c, err := New("xoxb-test", "C1", slack.OptionAPIURL(srv.URL+"/"))
	require.NoError(t, err)

	require.NoError(t, c.Notify(context.Background(), "hello"))
	assert.Equal(t, "C1", gotChannel)
	assert.Equal(t, "hello", gotText)
}

func TestNotify_SlackError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	}))
	defer srv.Close()

	c, err := New("xoxb-test", "C404", slack.OptionAPIURL(srv.URL+"/"))
	require.NoError(t, err)

	err = c.Notify(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}
