package handlers

import (
	"crypto/subtle"
	"net/http"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/atharvakonge/crypto-portfolio-api/internal/auth"
	"github.com/atharvakonge/crypto-portfolio-api/internal/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDHeader   = "X-Request-ID"
	internalKeyHeader = "X-Internal-Key"

	ctxRequestID = "request_id"
	ctxClaims    = "claims"
)

// RequestLogger tags each request with an id and logs it once it completes.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(requestIDHeader, id)

		c.Next()

		entry := log.WithFields(requestFields(c)).WithFields(logrus.Fields{
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})

		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request completed")
		case status >= 400:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}

func requestFields(c *gin.Context) logrus.Fields {
	fields := logrus.Fields{
		"request_id": c.GetString(ctxRequestID),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}
	if claims := currentClaims(c); claims != nil {
		fields["user_id"] = claims.UserID
	}
	return fields
}

// Recovery turns a panic into the generic 500 body.
func Recovery(log *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.WithFields(requestFields(c)).WithField("panic", recovered).Error("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	})
}

// CORS lets the browser frontend call the API. No origins, or a "*"
// entry, allows any origin.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader, internalKeyHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}

// RequireUser validates the bearer token and stores its claims on the context.
func (h *Handler) RequireUser(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		h.respondError(c, common.New(common.ErrUnauthenticated, "missing token"))
		return
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		h.respondError(c, common.New(common.ErrInvalidToken, "invalid token"))
		return
	}

	c.Set(ctxClaims, claims)
	c.Next()
}

// RequireInternalKey guards routes meant for the price feed process.
// An unset key locks the routes entirely.
func (h *Handler) RequireInternalKey(c *gin.Context) {
	got := c.GetHeader(internalKeyHeader)
	if h.internalKey == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.internalKey)) != 1 {
		h.respondError(c, common.New(common.ErrForbidden, "forbidden"))
		return
	}
	c.Next()
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func currentClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func userID(c *gin.Context) int64 {
	if claims := currentClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

var jsonFieldNames sync.Once

// useJSONFieldNames makes validation messages name fields as clients send them.
func useJSONFieldNames() {
	jsonFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}
