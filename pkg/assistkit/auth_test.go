package assistkit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTokenFile(t *testing.T, rec TokenRecord) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token.json")
	data, err := json.MarshalIndent(rec, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func readTokenFile(t *testing.T, path string) TokenRecord {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec TokenRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	return rec
}

func TestLoadTokenMissingFile(t *testing.T) {
	_, err := LoadToken(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLoadTokenFreshNoRefresh(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rec := TokenRecord{
		Token:        "fresh-token",
		RefreshToken: "refresh-1",
		TokenURI:     srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Expiry:       time.Now().Add(time.Hour),
	}
	path := writeTokenFile(t, rec)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	tok, err := LoadToken(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", tok.AccessToken)
	assert.Equal(t, 0, hits, "fresh token must not hit the token endpoint")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "fresh token must not rewrite the file")
}

func TestLoadTokenZeroExpiryTreatedAsValid(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := writeTokenFile(t, TokenRecord{
		Token:        "no-expiry-token",
		RefreshToken: "refresh-1",
		TokenURI:     srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})

	tok, err := LoadToken(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "no-expiry-token", tok.AccessToken)
	assert.Equal(t, 0, hits)
}

func TestLoadTokenRefreshesExpired(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.FormValue("grant_type"))
		assert.Equal(t, "refresh-1", r.FormValue("refresh_token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"new-token","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	path := writeTokenFile(t, TokenRecord{
		Token:        "stale-token",
		RefreshToken: "refresh-1",
		TokenURI:     srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Expiry:       time.Now().Add(-time.Hour),
	})

	tok, err := LoadToken(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "new-token", tok.AccessToken)
	assert.Equal(t, 1, hits)

	rec := readTokenFile(t, path)
	assert.Equal(t, "new-token", rec.Token)
	assert.Equal(t, "refresh-1", rec.RefreshToken)
	assert.Equal(t, srv.URL, rec.TokenURI)
	assert.Equal(t, "client-id", rec.ClientID)
	assert.Equal(t, "client-secret", rec.ClientSecret)
	assert.True(t, rec.Expiry.After(time.Now()), "persisted expiry should be in the future")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadTokenRefreshFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	path := writeTokenFile(t, TokenRecord{
		Token:        "stale-token",
		RefreshToken: "revoked",
		TokenURI:     srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Expiry:       time.Now().Add(-time.Hour),
	})
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = LoadToken(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRefreshFailed)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed refresh must not rewrite the file")
}

func TestTokenRecordExpired(t *testing.T) {
	tests := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{"zero expiry", time.Time{}, false},
		{"future", time.Now().Add(time.Hour), false},
		{"past", time.Now().Add(-time.Minute), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := TokenRecord{Expiry: tt.expiry}
			assert.Equal(t, tt.want, rec.Expired())
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.config/gcal/token.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "gcal", "token.json"), got)

	got, err = ExpandPath("/tmp/token.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/token.json", got)
}
