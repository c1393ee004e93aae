package auth // package auth provides access token signing/verification and password hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned by VerifyAccessToken for any token that does
// not verify: bad signature, wrong algorithm, malformed string or missing
// subject claim. Callers must not distinguish between these cases.
var ErrInvalidToken = errors.New("invalid token")

// SignAccessToken builds and signs an HS256 JWT binding the subject's id.
// The token carries only an `id` and an `iat` claim. No `exp` claim is set:
// issued tokens never expire, matching the behavior this API is contracted
// to keep.
func SignAccessToken(secret, subjectID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  subjectID,
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// VerifyAccessToken parses a token signed by SignAccessToken and returns the
// subject id it carries. The signing method is pinned to HMAC; tokens signed
// with any other algorithm are rejected. No expiry check is performed.
func VerifyAccessToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}
