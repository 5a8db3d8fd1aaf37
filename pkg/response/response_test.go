package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/test", nil)
	handler(c)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return env
}

func TestSuccess(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Success(c, "ok", map[string]string{"name": "test"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	env := parseEnvelope(t, w)
	if !env.Success {
		t.Error("expected success=true")
	}
	if env.Message != "ok" {
		t.Errorf("expected message 'ok', got %q", env.Message)
	}
}

func TestAccepted(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Accepted(c, "accepted for processing", map[string]string{"jobId": "abc"})
	})

	if w.Code != http.StatusAccepted {
		t.Errorf("expected status %d, got %d", http.StatusAccepted, w.Code)
	}

	env := parseEnvelope(t, w)
	if !env.Success {
		t.Error("expected success=true")
	}
}

func TestCreated(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Created(c, "created", map[string]int{"id": 1})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
}

func TestValidationFailed(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		ValidationFailed(c, []string{"NGO ID is required", "Month is required"})
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	env := parseEnvelope(t, w)
	if env.Success {
		t.Error("expected success=false")
	}
	if len(env.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d", len(env.Errors))
	}
}

func TestError_AppError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewNotFound("Job not found"))
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	env := parseEnvelope(t, w)
	if env.Message != "Job not found" {
		t.Errorf("expected message 'Job not found', got %q", env.Message)
	}
}

func TestError_GenericError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, errors.New("database exploded"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestError_WrappedAppError(t *testing.T) {
	wrapped := NewUnauthorized("invalid credentials")
	w := performRequest(func(c *gin.Context) {
		Error(c, wrapped)
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestConvenienceHelpers(t *testing.T) {
	cases := []struct {
		name    string
		handler gin.HandlerFunc
		status  int
	}{
		{"BadRequest", func(c *gin.Context) { BadRequest(c, "bad") }, http.StatusBadRequest},
		{"Unauthorized", func(c *gin.Context) { Unauthorized(c, "no") }, http.StatusUnauthorized},
		{"Forbidden", func(c *gin.Context) { Forbidden(c, "nope") }, http.StatusForbidden},
		{"NotFound", func(c *gin.Context) { NotFound(c, "gone") }, http.StatusNotFound},
		{"ServerError", func(c *gin.Context) { ServerError(c, "boom") }, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performRequest(tc.handler)
			if w.Code != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, w.Code)
			}
			env := parseEnvelope(t, w)
			if env.Success {
				t.Error("expected success=false")
			}
		})
	}
}
