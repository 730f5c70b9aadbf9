package controller

import (
	"art-auction-api/internal/service"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo"
)

const userIdContextKey = "userId"

// authenticateUser resolves the caller's session token (cookie set by the
// auth provider, or a bearer header) to a user id and stores it on the
// request context.
func authenticateUser(userService service.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if cookie, err := c.Cookie("access_token"); err == nil {
				token = cookie.Value
			}
			if token == "" {
				header := c.Request().Header.Get(echo.HeaderAuthorization)
				if strings.HasPrefix(header, "Bearer ") {
					token = strings.TrimPrefix(header, "Bearer ")
				}
			}

			userId, err := userService.Authenticate(c.Request().Context(), token)
			if err == nil {
				c.Set(userIdContextKey, userId)

				return next(c)
			}

			if err == service.ErrInvalidSession {
				if e := c.JSON(http.StatusUnauthorized, errorResponse{"Session expired or invalid"}); e != nil {
					return e
				}

				return err
			}

			if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
				return e
			}

			return err
		}
	}
}

func currentUserId(c echo.Context) uuid.UUID {
	userId, _ := c.Get(userIdContextKey).(uuid.UUID)

	return userId
}
