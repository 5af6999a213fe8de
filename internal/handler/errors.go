package handler

import (
    "errors"
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"
)

// errorResp is the JSON envelope shared by every error response.
type errorResp struct {
    Error     string    `json:"error"`
    Message   string    `json:"message"`
    Timestamp time.Time `json:"timestamp"`
}

// Messages used when an error carries no detail of its own.
var fixedMessages = map[int]string{
    http.StatusNotFound:            "The requested resource was not found",
    http.StatusMethodNotAllowed:    "The requested method is not allowed for this resource",
    http.StatusInternalServerError: "An unexpected error occurred",
}

// ErrorHandler renders errors as {error, message, timestamp}.  Echo HTTP
// errors keep their code; anything else is logged and becomes a 500 without
// leaking the cause to the client.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
    if log == nil {
        log = zap.NewNop()
    }
    return func(err error, c echo.Context) {
        if c.Response().Committed {
            return
        }

        code := http.StatusInternalServerError
        message := ""
        var he *echo.HTTPError
        if errors.As(err, &he) {
            code = he.Code
            if he.Message != nil {
                message = fmt.Sprint(he.Message)
            }
        } else {
            log.Error("unhandled error",
                zap.String("method", c.Request().Method),
                zap.String("uri", c.Request().RequestURI),
                zap.Error(err))
        }

        // Echo's own errors carry the bare status text; replace it with a
        // sentence.  5xx details are never shown.
        if code == http.StatusInternalServerError || message == "" || message == http.StatusText(code) {
            if fixed, ok := fixedMessages[code]; ok {
                message = fixed
            } else {
                message = http.StatusText(code)
            }
        }

        body := errorResp{Error: http.StatusText(code), Message: message, Timestamp: time.Now().UTC()}
        if c.Request().Method == http.MethodHead {
            err = c.NoContent(code)
        } else {
            err = c.JSON(code, body)
        }
        if err != nil {
            log.Warn("write error response", zap.Error(err))
        }
    }
}

// badRequest builds a 400 whose message is shown to the client.
func badRequest(format string, args ...any) error {
    return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}
