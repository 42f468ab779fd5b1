package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/community-api/internal/core/domain"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the actor id and
// a known role must be present — presence proves the middleware ran and the
// token carries a usable identity.
func ctxActor(c echo.Context) (domain.Actor, error) {
	id, _ := c.Get("actor_id").(string)
	role, _ := c.Get("role").(string)
	if id == "" || !domain.ValidRole(role) {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Actor{ID: id, Role: role}, nil
}
