package middleware

import (
	"context"
	"errors"
	"net/http"
	"price-stream-backend/internal/api/constant"
	"price-stream-backend/internal/api/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error turns errors attached to the gin context into JSON responses.
// It runs after the handler and only looks at the first recorded error.
func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		ctxErr := c.Request.Context().Err()
		if ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				c.AbortWithStatusJSON(http.StatusGatewayTimeout, dto.Res{
					Success: false,
					Error:   "request timed out",
				})
				return
			}
		}

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors[0]

		// Validation errors from JSON binding
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			validationErrors := make([]dto.ErrorType, 0)
			for _, fe := range ve {
				validationErrors = append(validationErrors, dto.ErrorType{
					Field:   fe.Field(),
					Message: fe.Error(),
				})
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.Res{
				Success: false,
				Error:   validationErrors,
			})
			return
		}

		// Known application errors carry their own status code
		var ce constant.CustomError
		if errors.As(err, &ce) {
			c.AbortWithStatusJSON(ce.StatusCode, dto.Res{
				Success: false,
				Error:   ce.Error(),
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Res{
			Success: false,
			Error:   err.Error(),
		})
	}
}
