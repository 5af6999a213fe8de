package handler

import (
    "net/http"
    "strconv"
    "strings"
    "time"
    "unicode/utf8"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/nsm-example/internal/queue"
)

// EchoHandler serves the echo and message demo endpoints.
type EchoHandler struct {
    Events *queue.Notifier
}

func NewEchoHandler(events *queue.Notifier) *EchoHandler {
    if events == nil {
        events = queue.NewNotifier(nil, nil, 0)
    }
    return &EchoHandler{Events: events}
}

// ----- DTOs -----

// The pointer distinguishes a missing field from an empty string.
type echoReq struct {
    Message *string `json:"message"`
}

type echoResp struct {
    Echo      string    `json:"echo"`
    Timestamp time.Time `json:"timestamp"`
    ID        string    `json:"id"`
}

type messageReq struct {
    Message *string `json:"message"`
    Author  *string `json:"author"`
}

type messageResp struct {
    ProcessedMessage string    `json:"processed_message"`
    OriginalMessage  string    `json:"original_message"`
    Author           string    `json:"author"`
    Length           int       `json:"length"`
    WordCount        int       `json:"word_count"`
    Timestamp        time.Time `json:"timestamp"`
    ID               string    `json:"id"`
}

// Echo returns the posted message with a timestamp and a fresh UUID.
func (h *EchoHandler) Echo(c echo.Context) error {
    var req echoReq
    if err := c.Bind(&req); err != nil {
        return badRequest("invalid JSON body")
    }
    if req.Message == nil {
        return badRequest("message is required")
    }

    now := time.Now().UTC()
    resp := echoResp{Echo: *req.Message, Timestamp: now, ID: uuid.NewString()}
    h.Events.Notify(queue.TypeEchoReceived, queue.EchoReceived{
        ID:         resp.ID,
        Message:    resp.Echo,
        ReceivedAt: now,
    })
    return c.JSON(http.StatusOK, resp)
}

// Message upper-cases the posted message and reports simple statistics
// about it.
func (h *EchoHandler) Message(c echo.Context) error {
    var req messageReq
    if err := c.Bind(&req); err != nil || req.Message == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "Message is required"})
    }
    msg := *req.Message
    author := "Anonymous"
    if req.Author != nil {
        author = *req.Author
    }

    now := time.Now().UTC()
    return c.JSON(http.StatusOK, messageResp{
        ProcessedMessage: strings.ToUpper(msg),
        OriginalMessage:  msg,
        Author:           author,
        Length:           utf8.RuneCountInString(msg),
        WordCount:        len(strings.Fields(msg)),
        Timestamp:        now,
        ID:               "msg_" + strconv.FormatInt(now.Unix(), 10),
    })
}
