package identity

import (
	"context"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// JWTResolver verifies HS256 access tokens locally using the secret shared
// with the auth service. The subject claim carries the numeric user ID.
// Verification is local, so this resolver never reports the authority as
// unavailable.
type JWTResolver struct {
	secret []byte
}

// NewJWTResolver creates a resolver that verifies tokens with the shared secret
func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

// Resolve parses and verifies the token and extracts the user ID from 'sub'
func (r *JWTResolver) Resolve(ctx context.Context, credential string) (int64, error) {
	token, err := jwt.Parse(credential, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrUnauthenticated
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, fmt.Errorf("%w: missing subject claim", ErrUnauthenticated)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric subject claim", ErrUnauthenticated)
	}

	return userID, nil
}
