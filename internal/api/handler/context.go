package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/villageconnect/grievance-system/internal/core/domain"
	"github.com/villageconnect/grievance-system/internal/core/ports"
)

// actorFromContext assembles the acting identity from the claims injected by
// the Auth middleware and performs a fast-fail check before any service call:
//   - uid and role must be non-empty (presence proves the middleware ran).
//   - department role requires a non-empty department claim; without it the
//     JWT is structurally valid but operationally unusable — reject with 401.
func actorFromContext(c echo.Context) (ports.Actor, error) {
	actor := ports.Actor{}
	actor.ID, _ = c.Get("uid").(string)
	actor.Name, _ = c.Get("name").(string)
	actor.Email, _ = c.Get("email").(string)
	actor.Role, _ = c.Get("role").(string)
	actor.Department, _ = c.Get("department").(string)

	if actor.ID == "" || actor.Role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if actor.Role == domain.RoleDepartment && actor.Department == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing department identity")
	}

	return actor, nil
}
