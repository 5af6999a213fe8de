package handler

import (
    "bytes"
    "context"
    "embed"
    "html/template"
    "net/http"
    "runtime"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/nsm-example/internal/config"
)

//go:embed templates/index.html
var templateFS embed.FS

var homeTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Check reports whether one backend is reachable for the health endpoint.
type Check func(ctx context.Context) error

// endpoint is one row of the API list on the home page.
type endpoint struct {
    Method  string
    Path    string
    Summary string
}

var endpoints = []endpoint{
    {"GET", "/api/info", "Application information"},
    {"GET", "/api/health", "Health check"},
    {"POST", "/api/echo", "Echo a message back"},
    {"POST", "/api/message", "Process a message"},
    {"GET", "/api/tasks", "List tasks"},
    {"POST", "/api/tasks", "Create a task"},
    {"GET", "/api/tasks/:id", "Fetch a task"},
    {"PUT", "/api/tasks/:id", "Update a task"},
    {"DELETE", "/api/tasks/:id", "Delete a task"},
    {"POST", "/api/auth/token", "Issue an admin access token"},
    {"GET", "/metrics", "Prometheus metrics"},
    {"GET", "/static/*", "Static files"},
    {"GET", "/", "This page"},
}

// AppHandler serves the home page and the informational endpoints.
type AppHandler struct {
    Cfg     config.Config
    Started time.Time
    Checks  map[string]Check // backend name -> check; empty when none configured
}

func NewAppHandler(cfg config.Config, checks map[string]Check) *AppHandler {
    return &AppHandler{Cfg: cfg, Started: time.Now(), Checks: checks}
}

type homeData struct {
    Name       string
    Domain     string
    Version    string
    NSMEnabled bool
    Endpoints  []endpoint
}

// Home renders the landing page.
func (h *AppHandler) Home(c echo.Context) error {
    var buf bytes.Buffer
    err := homeTmpl.Execute(&buf, homeData{
        Name:       h.Cfg.Name,
        Domain:     h.Cfg.Domain,
        Version:    h.Cfg.Version,
        NSMEnabled: config.NSMEnabled(),
        Endpoints:  endpoints,
    })
    if err != nil {
        return err
    }
    return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

type infoResp struct {
    Name        string            `json:"name"`
    Version     string            `json:"version"`
    Domain      string            `json:"domain"`
    NSMEnabled  bool              `json:"nsm_enabled"`
    Environment string            `json:"environment"`
    GoVersion   string            `json:"go_version"`
    Timestamp   time.Time         `json:"timestamp"`
    Headers     map[string]string `json:"headers,omitempty"`
}

// Info describes the running application.  Request headers are echoed back
// only when the debug query parameter is present.
func (h *AppHandler) Info(c echo.Context) error {
    resp := infoResp{
        Name:        h.Cfg.Name,
        Version:     h.Cfg.Version,
        Domain:      h.Cfg.Domain,
        NSMEnabled:  config.NSMEnabled(),
        Environment: h.Cfg.Env,
        GoVersion:   runtime.Version(),
        Timestamp:   time.Now().UTC(),
    }
    if _, debug := c.QueryParams()["debug"]; debug {
        resp.Headers = make(map[string]string, len(c.Request().Header))
        for name, values := range c.Request().Header {
            if len(values) > 0 {
                resp.Headers[name] = values[0]
            }
        }
    }
    return c.JSON(http.StatusOK, resp)
}

type healthResp struct {
    Status       string            `json:"status"`
    Timestamp    time.Time         `json:"timestamp"`
    Uptime       string            `json:"uptime"`
    Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Health always answers 200; a failing backend only marks the status
// degraded.
func (h *AppHandler) Health(c echo.Context) error {
    resp := healthResp{
        Status:    "healthy",
        Timestamp: time.Now().UTC(),
        Uptime:    time.Since(h.Started).Round(time.Second).String(),
    }
    if len(h.Checks) > 0 {
        ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
        defer cancel()

        resp.Dependencies = make(map[string]string, len(h.Checks))
        for name, check := range h.Checks {
            if err := check(ctx); err != nil {
                resp.Dependencies[name] = "down"
                resp.Status = "degraded"
                continue
            }
            resp.Dependencies[name] = "up"
        }
    }
    return c.JSON(http.StatusOK, resp)
}
