package assistkit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// TokenRecord is the on-disk OAuth credential bundle, one file per service.
// It is created by an external OAuth setup flow; this package only reads it
// and rewrites the access token after a refresh.
type TokenRecord struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	TokenURI     string    `json:"token_uri"`
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	Expiry       time.Time `json:"expiry"`
}

// Expired reports whether the access token is past its expiry.
// A record without an expiry is treated as still valid.
func (r *TokenRecord) Expired() bool {
	if r.Expiry.IsZero() {
		return false
	}
	return time.Now().After(r.Expiry)
}

func (r *TokenRecord) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     r.ClientID,
		ClientSecret: r.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: r.TokenURI,
		},
	}
}

func (r *TokenRecord) token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  r.Token,
		RefreshToken: r.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       r.Expiry,
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return path, nil
}

// ReadTokenRecord reads and parses the token record at path.
func ReadTokenRecord(path string) (*TokenRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: token file %s not found, run the OAuth setup first", ErrNotAuthenticated, path)
		}
		return nil, errors.Wrap(err, "reading token file")
	}
	var rec TokenRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(err, "parsing token file")
	}
	return &rec, nil
}

func (r *TokenRecord) write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling token record")
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(err, "writing token file")
	}
	return nil
}

// LoadToken loads the token record at path and returns a usable access
// token. If the stored token is expired and a refresh token is present, it
// performs one refresh against the record's token endpoint and rewrites the
// file; the write happens only after a successful refresh. The returned
// token is meant for oauth2.StaticTokenSource, so a token that was fresh on
// load never triggers a network call.
func LoadToken(ctx context.Context, path string) (*oauth2.Token, error) {
	rec, err := ReadTokenRecord(path)
	if err != nil {
		return nil, err
	}

	if !rec.Expired() || rec.RefreshToken == "" {
		log.Debugf("access token at %s still valid", path)
		return rec.token(), nil
	}

	log.Debugf("access token expired, refreshing against %s", rec.TokenURI)
	fresh, err := rec.oauthConfig().TokenSource(ctx, rec.token()).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	// Only the access token and expiry change on disk. The refresh token
	// and client identity must survive every rewrite.
	rec.Token = fresh.AccessToken
	rec.Expiry = fresh.Expiry
	if err := rec.write(path); err != nil {
		return nil, errors.Wrap(err, "persisting refreshed token")
	}
	log.Debugf("refreshed token persisted to %s", path)

	return rec.token(), nil
}
