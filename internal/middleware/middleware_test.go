package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/photo-studio/internal/auth"
)

type fakeAuthn struct {
	err error
}

func (f fakeAuthn) Authenticate(_ context.Context, token string) (*auth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &auth.Claims{
		Email:            "ana@estudio.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-" + token},
	}, nil
}

func newAuthRouter(authn Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/p", AuthMiddleware(authn), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		authn  Authenticator
		status int
		body   string
	}{
		{"missing header", "", fakeAuthn{}, http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", fakeAuthn{}, http.StatusUnauthorized, ""},
		{"empty token", "Bearer  ", fakeAuthn{}, http.StatusUnauthorized, ""},
		{"rejected token", "Bearer abc", fakeAuthn{err: &auth.Error{Code: auth.CodeInvalidCredential}}, http.StatusUnauthorized, ""},
		{"store down", "Bearer abc", fakeAuthn{err: &auth.Error{Code: auth.CodeNetworkFailed}}, http.StatusServiceUnavailable, ""},
		{"valid", "bearer abc", fakeAuthn{}, http.StatusOK, "u-abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(tt.authn)
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Errorf("body = %q", w.Body.String())
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		allowed []string
		origin  string
		method  string
		wantHdr string
		status  int
	}{
		{"any origin when unset", nil, "http://a.test", http.MethodGet, "http://a.test", http.StatusOK},
		{"listed origin", []string{"http://a.test"}, "http://a.test", http.MethodGet, "http://a.test", http.StatusOK},
		{"unlisted origin", []string{"http://a.test"}, "http://evil.test", http.MethodGet, "", http.StatusOK},
		{"preflight", []string{"http://a.test"}, "http://a.test", http.MethodOptions, "http://a.test", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(tt.allowed))
			r.Handle(tt.method, "/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tt.method, "/x", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHdr {
				t.Errorf("allow-origin = %q, want %q", got, tt.wantHdr)
			}
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}
