package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/gallery-backend/internal/dto"
	"github.com/ignatzorin/gallery-backend/internal/http/handlers/common"
	"github.com/ignatzorin/gallery-backend/internal/service"
)

// AuthHandler обслуживает маршруты аутентификации.
type AuthHandler struct {
	auth *service.AuthService
	env  string
}

// NewAuthHandler создаёт новый хэндлер.
func NewAuthHandler(auth *service.AuthService, env string) *AuthHandler {
	return &AuthHandler{auth: auth, env: env}
}

// Login обрабатывает POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "email обязателен")
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RequestMagicLink обрабатывает POST /api/auth/magic-link.
// Отправка письма — внешний коллаборатор: в development токен
// возвращается в ответе, чтобы сквозной сценарий работал без почты.
func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var req dto.MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "email обязателен")
		return
	}

	token, err := h.auth.RequestLink(c.Request.Context(), req.Email)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	resp := dto.MagicLinkResponse{Message: "ссылка для входа отправлена, проверьте почту"}
	if h.env == "development" {
		resp.Token = token
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyMagicLink обрабатывает POST /api/auth/magic-link/verify.
func (h *AuthHandler) VerifyMagicLink(c *gin.Context) {
	var req dto.VerifyLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "токен и email обязательны")
		return
	}

	result, err := h.auth.VerifyLink(c.Request.Context(), req.Token, req.Email)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Session обрабатывает GET /api/auth/session.
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, h.auth.State())
}

// Logout обрабатывает POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context())
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "сессия завершена"})
}
