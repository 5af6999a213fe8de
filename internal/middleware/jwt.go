package middleware // middleware provides shared request processing for handlers

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/nsm-example/internal/auth"
)

// Context keys set by JWTAuth.
const (
    CtxSubject = "subject"
    CtxRole    = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// signed with secret and stores its subject and role claims in the context
// under CtxSubject and CtxRole.  Failures are returned as 401 HTTP errors so
// the global error handler renders them.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            header := c.Request().Header.Get(echo.HeaderAuthorization)
            if !strings.HasPrefix(header, "Bearer ") {
                return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
            }
            raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

            claims, err := auth.ParseAccessToken(secret, raw)
            if err != nil {
                return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
            }
            c.Set(CtxSubject, claims["sub"])
            c.Set(CtxRole, claims["role"])
            return next(c)
        }
    }
}
