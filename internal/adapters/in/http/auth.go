package http

import (
	"strings"

	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "staff_actor"

// StaffAuth resolves the bearer session token into an actor. Role checks
// are left to the use cases.
func StaffAuth(sessions ports.StaffRepository, s *Server) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return s.writeError(c, errs.NewUnauthenticatedError(c.Request().Method+" "+c.Path()))
			}

			actor, err := sessions.ResolveSession(c.Request().Context(), token)
			if err != nil {
				return s.writeError(c, err)
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) staff.Actor {
	actor, _ := c.Get(actorContextKey).(staff.Actor)
	return actor
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
