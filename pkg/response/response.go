package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the unified API response body.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// AppError carries an HTTP status alongside a user-facing message.
type AppError struct {
	HTTPStatus int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequest(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Message: msg}
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Message: msg}
}

func NewServerError(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Message: msg}
}

// Success sends a 200 with data.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 with data.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Accepted sends a 202, used when work continues after the response.
func Accepted(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusAccepted, Envelope{Success: true, Message: message, Data: data})
}

// ValidationFailed sends a 400 carrying the collected field errors.
func ValidationFailed(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Error maps an error to a response. *AppError chooses its own status;
// anything else becomes a 500.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Envelope{Success: false, Message: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, Envelope{Success: false, Message: err.Error()})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, Envelope{Success: false, Message: msg})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Envelope{Success: false, Message: msg})
}

func ServerError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Envelope{Success: false, Message: msg})
}
