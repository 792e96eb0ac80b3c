package assistkit

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestNewFake(t *testing.T) {
	client := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			t.Fatalf("unexpected request to %s", req.URL)
			return nil, nil
		}),
	}

	conn, err := NewFake(client)
	require.NoError(t, err)
	assert.NotNil(t, conn.GmailService())
	assert.NotNil(t, conn.CalendarService())
}

func TestUserAgent(t *testing.T) {
	assert.Contains(t, userAgent(), "assistkit")
}
