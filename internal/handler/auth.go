package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/nsm-example/internal/auth"
)

// AuthHandler issues access tokens for the configured admin account.  A nil
// Admin means auth is disabled and the endpoint answers 404.
type AuthHandler struct {
    Admin *auth.Admin
}

func NewAuthHandler(a *auth.Admin) *AuthHandler { return &AuthHandler{Admin: a} }

type loginReq struct {
    Username string `json:"username" validate:"required"`
    Password string `json:"password" validate:"required"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}

type tokenResp struct {
    Access tokenPart `json:"access"`
}

// Token: verify admin credentials and return an access token.
func (h *AuthHandler) Token(c echo.Context) error {
    if h.Admin == nil {
        return echo.ErrNotFound
    }
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return badRequest("invalid JSON body")
    }
    req.Username = strings.TrimSpace(req.Username)
    if err := c.Validate(&req); err != nil {
        return badRequest("%s", err.Error())
    }

    access, err := h.Admin.Login(req.Username, req.Password)
    if err != nil {
        if errors.Is(err, auth.ErrInvalidCredentials) {
            return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
        }
        return err
    }
    return c.JSON(http.StatusOK, tokenResp{Access: tokenPart{Token: access.Token, Expires: access.Exp}})
}
