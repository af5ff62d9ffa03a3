package auth

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// CredentialsSession adapts an aws.CredentialsProvider (static keys, the
// default chain, an assumed role) to SessionProvider. Retrieved credentials
// are cached until shortly before they expire.
type CredentialsSession struct {
	cache *aws.CredentialsCache
}

// NewCredentialsSession wraps provider in an aws.CredentialsCache.
func NewCredentialsSession(provider aws.CredentialsProvider) *CredentialsSession {
	return &CredentialsSession{cache: aws.NewCredentialsCache(provider)}
}

// FetchSession retrieves credentials. Credentials without keys yield a
// session with nil Credentials rather than an error.
func (s *CredentialsSession) FetchSession(ctx context.Context) (Session, error) {
	creds, err := s.cache.Retrieve(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("retrieve credentials: %w", err)
	}
	if !creds.HasKeys() {
		return Session{}, nil
	}
	return Session{Credentials: &creds}, nil
}
