package handler

import (
	"errors"
	"net/http"
	"strings"

	"bikeshop/auth-service/internal/app/auth/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func abortWithError(c *gin.Context, status int, message string) {
	respondError(c, status, message)
	c.Abort()
}

// bindJSON разбирает тело и прогоняет validator, при ошибке отвечает 400
func bindJSON(c *gin.Context, v *validator.Validate, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := v.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			respondError(c, http.StatusBadRequest, fe.Field()+" validation failed on '"+fe.Tag()+"'")
			return false
		}
		respondError(c, http.StatusBadRequest, "Validation failed")
		return false
	}
	return true
}

// bearerToken достает токен из заголовка Authorization: Bearer <token>
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
