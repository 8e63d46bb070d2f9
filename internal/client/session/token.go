package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims decodes the subject and expiry from the bearer token the
// backend issues. The token is not verified here; the server is the
// authority on validity, the client only reads the claims it displays
// and uses to decide whether a restored credential is worth keeping.
func tokenClaims(token string) (subject string, expiresAt time.Time, err error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}, fmt.Errorf("decoding token: %w", err)
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return claims.Subject, expiresAt, nil
}
