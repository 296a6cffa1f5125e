package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lunch/internal/commands"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, log *slog.Logger, err error, context string) {
	log.Error("Internal error", "context", context, "err", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondCommandError maps a command-layer error onto a status code. The body carries
// the command's user-facing message.
func respondCommandError(c *gin.Context, log *slog.Logger, err error) {
	kind := commands.KindOf(err)
	status := statusForKind(kind)
	if status == http.StatusInternalServerError {
		log.Error("Command failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: string(kind)})
}

func statusForKind(kind commands.ErrorKind) int {
	switch kind {
	case commands.KindConflict:
		return http.StatusConflict
	case commands.KindEmpty, commands.KindNotFound:
		return http.StatusNotFound
	case commands.KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseLimitQuery reads a non-negative integer query parameter, falling back to def
// when it is absent. Responds with 400 and returns false when it is malformed.
func parseLimitQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return limit, true
}
