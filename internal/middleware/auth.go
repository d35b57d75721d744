package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/photo-studio/internal/auth"
	"github.com/BruksfildServices01/photo-studio/internal/httperr"
	ucStudio "github.com/BruksfildServices01/photo-studio/internal/usecase/studio"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextToken     = "token"
)

// Authenticator é o recorte do serviço de auth usado aqui.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "missing_authorization_header", auth.MessageFor(auth.CodeInvalidCredential))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abort(c, http.StatusUnauthorized, "invalid_authorization_header", auth.MessageFor(auth.CodeInvalidCredential))
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		claims, err := authn.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			var authErr *auth.Error
			if errors.As(err, &authErr) && authErr.Code == auth.CodeNetworkFailed {
				abort(c, http.StatusServiceUnavailable, authErr.Code, authErr.Message())
				return
			}
			abort(c, http.StatusUnauthorized, auth.CodeInvalidCredential, auth.MessageFor(auth.CodeInvalidCredential))
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextToken, tokenString)

		// mutações feitas nesta requisição são auditadas em nome do usuário
		c.Request = c.Request.WithContext(ucStudio.WithActor(c.Request.Context(), claims.Subject))

		c.Next()
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, httperr.HTTPError{Code: code, Message: message})
}
