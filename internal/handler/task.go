package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/nsm-example/internal/model"
    "github.com/iliyamo/nsm-example/internal/queue"
    "github.com/iliyamo/nsm-example/internal/repository"
)

// TaskHandler exposes CRUD endpoints over a TaskStore.
type TaskHandler struct {
    Store  repository.TaskStore
    Events *queue.Notifier
}

func NewTaskHandler(store repository.TaskStore, events *queue.Notifier) *TaskHandler {
    if events == nil {
        events = queue.NewNotifier(nil, nil, 0)
    }
    return &TaskHandler{Store: store, Events: events}
}

// ----- DTOs -----

type createTaskReq struct {
    Title       string `json:"title" validate:"required,max=200"`
    Description string `json:"description" validate:"max=2000"`
    Priority    string `json:"priority"`
}

// Nil fields are left unchanged.
type updateTaskReq struct {
    Title       *string `json:"title" validate:"omitempty,max=200"`
    Description *string `json:"description" validate:"omitempty,max=2000"`
    Priority    *string `json:"priority"`
    Status      *string `json:"status"`
}

// storeErr maps repository errors to HTTP errors.
func storeErr(err error) error {
    switch {
    case errors.Is(err, repository.ErrTaskNotFound):
        return echo.NewHTTPError(http.StatusNotFound, "task not found")
    case errors.Is(err, repository.ErrConflict):
        return echo.NewHTTPError(http.StatusConflict, "task already exists")
    }
    return err
}

// List returns all tasks, newest first.
func (h *TaskHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    tasks, err := h.Store.List(ctx)
    if err != nil {
        return storeErr(err)
    }
    return c.JSON(http.StatusOK, tasks)
}

// Get returns one task by id.
func (h *TaskHandler) Get(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.Store.Get(ctx, c.Param("id"))
    if err != nil {
        return storeErr(err)
    }
    return c.JSON(http.StatusOK, t)
}

// Create stores a new TODO task and announces it with a task.created event.
func (h *TaskHandler) Create(c echo.Context) error {
    var req createTaskReq
    if err := c.Bind(&req); err != nil {
        return badRequest("invalid JSON body")
    }
    req.Title = strings.TrimSpace(req.Title)
    if err := c.Validate(&req); err != nil {
        return badRequest("%s", err.Error())
    }
    prio, ok := model.ParsePriority(req.Priority)
    if !ok {
        return badRequest("priority must be one of [LOW MEDIUM HIGH]")
    }

    now := time.Now().UTC()
    t := &model.Task{
        ID:          uuid.NewString(),
        Title:       req.Title,
        Description: req.Description,
        Priority:    prio,
        Status:      model.StatusTodo,
        CreatedAt:   now,
        UpdatedAt:   now,
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    if err := h.Store.Create(ctx, t); err != nil {
        return storeErr(err)
    }

    h.Events.Notify(queue.TypeTaskCreated, queue.TaskCreated{
        TaskID:    t.ID,
        Title:     t.Title,
        Priority:  string(t.Priority),
        CreatedAt: t.CreatedAt,
    })
    return c.JSON(http.StatusCreated, t)
}

// Update applies a partial update to a task.
func (h *TaskHandler) Update(c echo.Context) error {
    var req updateTaskReq
    if err := c.Bind(&req); err != nil {
        return badRequest("invalid JSON body")
    }
    if err := c.Validate(&req); err != nil {
        return badRequest("%s", err.Error())
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.Store.Get(ctx, c.Param("id"))
    if err != nil {
        return storeErr(err)
    }

    if req.Title != nil {
        title := strings.TrimSpace(*req.Title)
        if title == "" {
            return badRequest("title must not be empty")
        }
        t.Title = title
    }
    if req.Description != nil {
        t.Description = *req.Description
    }
    if req.Priority != nil {
        p, ok := model.ParsePriority(*req.Priority)
        if !ok || strings.TrimSpace(*req.Priority) == "" {
            return badRequest("priority must be one of [LOW MEDIUM HIGH]")
        }
        t.Priority = p
    }
    if req.Status != nil {
        s, ok := model.ParseStatus(*req.Status)
        if !ok || strings.TrimSpace(*req.Status) == "" {
            return badRequest("status must be one of [TODO IN_PROGRESS DONE]")
        }
        t.Status = s
    }
    t.UpdatedAt = time.Now().UTC()

    if err := h.Store.Update(ctx, t); err != nil {
        return storeErr(err)
    }
    return c.JSON(http.StatusOK, t)
}

// Delete removes a task.
func (h *TaskHandler) Delete(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Store.Delete(ctx, c.Param("id")); err != nil {
        return storeErr(err)
    }
    return c.NoContent(http.StatusNoContent)
}
