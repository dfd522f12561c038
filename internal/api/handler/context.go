package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simplebanking/banking-system/internal/core/domain"
)

// ctxActor extracts the actor injected by the Auth middleware and performs a
// fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - a non-admin token without a user id is structurally valid but
//     operationally unusable — reject with 401.
func ctxActor(c echo.Context) (domain.Actor, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get("user_id").(string)
	if role != domain.RoleAdmin && userID == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	return domain.Actor{UserID: userID, Role: role}, nil
}
