package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogger_JSONCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentStudio, Output: &buf})

	l.Info("client created", FieldClientID, "c1")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if line[FieldComponent] != ComponentStudio {
		t.Errorf("component = %v", line[FieldComponent])
	}
	if line[FieldClientID] != "c1" {
		t.Errorf("client_id = %v", line[FieldClientID])
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf}).WithComponent(ComponentAuth)

	if l.Component() != ComponentAuth {
		t.Fatalf("Component() = %q", l.Component())
	}
	l.Warn("login blocked")
	if !strings.Contains(buf.String(), "component=auth") {
		t.Errorf("output %q missing component", buf.String())
	}
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Output: &buf})

	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered, got %q", buf.String())
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().WithOperation(OpRename).WithError(errors.New("boom")).With(FieldCount, 3)
	if len(f.ToSlice()) != 6 {
		t.Errorf("ToSlice() = %v", f.ToSlice())
	}
	if NewFields().WithError(nil)[FieldError] != nil {
		t.Error("nil error should not be recorded")
	}
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	l := New(Config{Output: &buf})

	r := gin.New()
	r.Use(GinMiddleware(l))
	r.GET("/ping", func(c *gin.Context) {
		if FromGin(c, nil) == nil {
			t.Error("request logger missing from context")
		}
		c.Status(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	r.ServeHTTP(w, req)

	if w.Header().Get(HeaderRequestID) != "req-1" {
		t.Errorf("request id header = %q", w.Header().Get(HeaderRequestID))
	}
	out := buf.String()
	for _, want := range []string{"request_id=req-1", "status_code=418", "level=WARN"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}
