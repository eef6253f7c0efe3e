package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/atharvakonge/crypto-portfolio-api/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const internalErrorMessage = "internal server error"

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(kind, common.ErrUnauthenticated), errors.Is(kind, common.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, common.ErrInvalidToken), errors.Is(kind, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, common.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the client-facing error. Anything that is not a
// *common.Error is logged and hidden behind a generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var e *common.Error
	if errors.As(err, &e) {
		if status := statusFor(e.Kind); status != http.StatusInternalServerError {
			c.AbortWithStatusJSON(status, gin.H{"error": e.Message})
			return
		}
	}

	_ = c.Error(err)
	h.log.WithFields(requestFields(c)).WithError(err).Error("request failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
}

// bindJSON decodes the body into dst, reporting problems as validation errors.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return common.Validation(formatBindError(err))
	}
	return nil
}

func formatBindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				msgs = append(msgs, fmt.Sprintf("%s is required", field))
			case "min":
				msgs = append(msgs, fmt.Sprintf("%s must have minimum length %s", field, e.Param()))
			case "max":
				msgs = append(msgs, fmt.Sprintf("%s must have maximum length %s", field, e.Param()))
			default:
				msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", field, e.Tag()))
			}
		}
		return strings.Join(msgs, "; ")
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return "malformed JSON body"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%s has the wrong type", typeErr.Field)
	default:
		return "invalid request body"
	}
}
