package assistkit

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Version is the app version as reported in RPCs.
var Version = "dev"

// Conn holds the authenticated API clients for one invocation.
type Conn struct {
	authedClient *http.Client
	gmail        *gmail.Service
	calendar     *calendar.Service
}

func userAgent() string {
	return "assistkit " + Version
}

// New creates a Conn authenticated by the token record at tokenPath,
// refreshing and persisting the token first if it has expired.
func New(ctx context.Context, tokenPath string) (*Conn, error) {
	path, err := ExpandPath(tokenPath)
	if err != nil {
		return nil, err
	}

	tok, err := LoadToken(ctx, path)
	if err != nil {
		return nil, err
	}
	log.Debugf("authenticated with token from %s", path)

	conn := &Conn{
		authedClient: oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok)),
	}
	return conn, conn.setupClients(ctx)
}

// NewFake creates a fake client, used for testing.
func NewFake(client *http.Client) (*Conn, error) {
	conn := &Conn{authedClient: client}
	return conn, conn.setupClients(context.Background())
}

func (c *Conn) setupClients(ctx context.Context) error {
	var err error

	c.gmail, err = gmail.NewService(ctx, option.WithHTTPClient(c.authedClient))
	if err != nil {
		return errors.Wrap(err, "creating GMail client")
	}
	c.gmail.UserAgent = userAgent()

	c.calendar, err = calendar.NewService(ctx, option.WithHTTPClient(c.authedClient))
	if err != nil {
		return errors.Wrap(err, "creating Calendar client")
	}
	c.calendar.UserAgent = userAgent()

	return nil
}

// GmailService returns the Gmail API service.
func (c *Conn) GmailService() *gmail.Service {
	return c.gmail
}

// CalendarService returns the Google Calendar API service client.
func (c *Conn) CalendarService() *calendar.Service {
	return c.calendar
}
