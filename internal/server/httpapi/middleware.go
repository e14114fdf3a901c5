package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/salaysay-tracker/backend/internal/common"
	"github.com/salaysay-tracker/backend/internal/server/auth"
)

// Context key under which the authenticated user's ID is stored.
const ctxUserID = "userID"

const accessTokenCookie = "access_token"

// requireAuth accepts either a Bearer header or the access-token cookie and
// puts the verified user ID on the request context. The cookie path serves
// the browser client, the header path everything else.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request())
		if token == "" {
			if cookie, err := c.Cookie(accessTokenCookie); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			return common.ErrUnauthorized
		}

		userID, err := auth.GetUserIDFromToken(token, s.opts.JWTSecret)
		if err != nil {
			return err
		}
		c.Set(ctxUserID, userID)
		return next(c)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return h[7:]
	}
	return ""
}

func userID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}
