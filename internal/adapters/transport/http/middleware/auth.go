package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/auth/model"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const identityKey = "auth.identity"

type Verifier interface {
	Verify(ctx context.Context, accessToken string) (model.Identity, error)
}

// RequireBearer rejects the request with 401 unless it carries a bearer token
// the verifier accepts. The resolved identity is available through IdentityFrom.
// rejected may be nil.
func RequireBearer(v Verifier, log *zap.Logger, rejected prometheus.Counter) gin.HandlerFunc {
	reject := func(c *gin.Context, detail, reason string) {
		log.Warn("request rejected",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("reason", reason),
		)
		if rejected != nil {
			rejected.Inc()
		}
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
	}

	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject(c, "Not authenticated", "missing bearer token")
			return
		}

		id, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			reject(c, "Could not validate credentials", err.Error())
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// BearerToken extracts the credential from an Authorization header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

func IdentityFrom(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return model.Identity{}, false
	}
	id, ok := v.(model.Identity)
	return id, ok
}
