// Package auth guards provider calls behind a credential check.
package auth

import (
	"context"

	"github.com/Sternrassler/geo-location-client/pkg/geo"
	"github.com/Sternrassler/geo-location-client/pkg/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var authFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "geo_auth_failures_total",
	Help: "Total credential gate failures by cause",
}, []string{"cause"})

// Failure causes, as logged and counted.
const (
	CauseNoCredentials = "no_credentials"
	CauseFetchError    = "fetch_error"
)

// Session is the result of a session fetch. Credentials is nil when the
// session carries none (e.g. signed-out user without guest access).
type Session struct {
	Credentials *aws.Credentials
}

// SessionProvider is the external authentication collaborator.
type SessionProvider interface {
	FetchSession(ctx context.Context) (Session, error)
}

// SessionProviderFunc adapts a function to SessionProvider.
type SessionProviderFunc func(ctx context.Context) (Session, error)

// FetchSession calls f.
func (f SessionProviderFunc) FetchSession(ctx context.Context) (Session, error) {
	return f(ctx)
}

// Gate ensures credentials are available before a provider call.
type Gate struct {
	sessions SessionProvider
	logger   zerolog.Logger
}

// NewGate creates a gate over sessions.
func NewGate(sessions SessionProvider) *Gate {
	return &Gate{
		sessions: sessions,
		logger:   logging.NewLogger(logging.ComponentAuth),
	}
}

// Ensure returns the current credentials. A failed fetch and a session
// without credentials both return geo.ErrNoCredentials; the cause is only
// visible in logs and the geo_auth_failures_total metric.
func (g *Gate) Ensure(ctx context.Context) (aws.Credentials, error) {
	session, err := g.sessions.FetchSession(ctx)
	if err != nil {
		g.logger.Debug().Err(err).Str("cause", CauseFetchError).Msg("Ensure credentials failed")
		authFailuresTotal.WithLabelValues(CauseFetchError).Inc()
		return aws.Credentials{}, geo.ErrNoCredentials
	}
	if session.Credentials == nil {
		g.logger.Debug().Str("cause", CauseNoCredentials).Msg("Session has no credentials")
		authFailuresTotal.WithLabelValues(CauseNoCredentials).Inc()
		return aws.Credentials{}, geo.ErrNoCredentials
	}

	g.logger.Debug().
		Str("source", session.Credentials.Source).
		Bool("can_expire", session.Credentials.CanExpire).
		Msg("Credentials available")
	return *session.Credentials, nil
}
