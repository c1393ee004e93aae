package middleware // package middleware contains reusable HTTP middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/booking-api/internal/auth"
)

// SubjectKey is the context key under which TokenAuth stores the verified
// subject id. Handlers may read it but no handler uses it for ownership
// checks: a valid token authorizes every mutation.
const SubjectKey = "subject_id"

// TokenAuth returns an Echo middleware that gates mutating routes behind a
// Bearer access token. A missing, malformed or unverifiable token yields
// the same 401 body in every case so callers cannot probe which check
// failed. On success the token's subject id is stored in the context and
// the wrapped handler runs.
func TokenAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			subjectID, err := auth.VerifyAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(SubjectKey, subjectID)
			return next(c)
		}
	}
}
