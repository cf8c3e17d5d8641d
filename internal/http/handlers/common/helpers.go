package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/gallery-backend/internal/dto"
	"github.com/ignatzorin/gallery-backend/internal/pkg/apperror"
)

// Ключ email администратора в gin.Context.
const ContextEmailKey = "adminEmail"

// ErrNoIdentity возвращается, когда в контексте нет авторизованного email.
var ErrNoIdentity = errors.New("авторизованный email не найден в контексте")

// CurrentEmail извлекает email администратора из gin.Context.
func CurrentEmail(c *gin.Context) (string, error) {
	raw, exists := c.Get(ContextEmailKey)
	if !exists {
		return "", ErrNoIdentity
	}

	email, ok := raw.(string)
	if !ok || email == "" {
		return "", ErrNoIdentity
	}

	return email, nil
}

// RespondError отправляет стандартный ответ с ошибкой.
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondAppError переводит типизированную ошибку в HTTP ответ.
// Для отказов в авторизации прокидывается конкретная причина,
// чтобы интерфейс мог показать правильное сообщение.
func RespondAppError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
			Error:  appErr.Message,
			Reason: string(appErr.Reason),
		})
		return
	}

	RespondError(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
}
