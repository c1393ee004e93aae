package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/booking-api/internal/auth"
	"github.com/stayhub/booking-api/internal/model"
	"github.com/stayhub/booking-api/internal/repository"
)

// HostFinder looks up login identities. The password is not part of the
// predicate; it is compared after fetch.
type HostFinder interface {
	GetByUsername(ctx context.Context, username string) (model.Host, error)
}

// LoginHandler implements the credential check endpoint. It is the only
// route that hands out access tokens and it sits outside the token gate.
type LoginHandler struct {
	Secret string
	Hosts  HostFinder
}

func NewLoginHandler(secret string, hosts HostFinder) *LoginHandler {
	return &LoginHandler{Secret: secret, Hosts: hosts}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /login. Unknown username and wrong password produce
// the identical 401 body so the response does not reveal which check
// failed. On a match a token bound to the host's id is returned.
func (h *LoginHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	host, err := h.Hosts.GetByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Service unavailable"})
		}
		return err
	}
	if !auth.VerifyPassword(host.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	token, err := auth.SignAccessToken(h.Secret, host.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
