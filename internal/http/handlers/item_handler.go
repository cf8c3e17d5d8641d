package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/gallery-backend/internal/dto"
	"github.com/ignatzorin/gallery-backend/internal/http/handlers/common"
	"github.com/ignatzorin/gallery-backend/internal/models"
	"github.com/ignatzorin/gallery-backend/internal/pkg/apperror"
	"github.com/ignatzorin/gallery-backend/internal/service"
)

// ItemHandler обслуживает маршруты галереи.
type ItemHandler struct {
	items *service.ItemService
}

// NewItemHandler создаёт новый хэндлер.
func NewItemHandler(items *service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// ListItems обрабатывает GET /api/items.
// Коллекция отдаётся целиком; limit/offset — необязательная нарезка
// для бесконечной прокрутки на стороне интерфейса.
func (h *ItemHandler) ListItems(c *gin.Context) {
	items := h.items.List()

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	if offset > 0 {
		if offset >= len(items) {
			items = nil
		} else {
			items = items[offset:]
		}
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	c.JSON(http.StatusOK, dto.NewItemListResponse(items))
}

// GetItem обрабатывает GET /api/items/:id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "неверный идентификатор элемента")
		return
	}

	item, err := h.items.Get(id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewItemResponse(item))
}

// CreateItem обрабатывает POST /api/items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "некорректное тело запроса: "+err.Error())
		return
	}

	item, err := h.items.Add(c.Request.Context(), service.ItemInput{
		Title:        req.Title,
		Description:  req.Description,
		Type:         models.ItemType(req.Type),
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil && !apperror.IsPersistenceWarning(err) {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ItemMutationResponse{
		ItemResponse: dto.NewItemResponse(item),
		Warning:      warningText(err),
	})
}

// UpdateItem обрабатывает PUT /api/items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "неверный идентификатор элемента")
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "некорректное тело запроса: "+err.Error())
		return
	}

	item, err := h.items.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil && !apperror.IsPersistenceWarning(err) {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ItemMutationResponse{
		ItemResponse: dto.NewItemResponse(item),
		Warning:      warningText(err),
	})
}

// DeleteItem обрабатывает DELETE /api/items/:id.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "неверный идентификатор элемента")
		return
	}

	err = h.items.Delete(c.Request.Context(), id)
	if err != nil && !apperror.IsPersistenceWarning(err) {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{
		Message: "элемент удалён",
		Warning: warningText(err),
	})
}

// warningText достаёт текст предупреждения о несохранённом изменении.
func warningText(err error) string {
	var appErr *apperror.AppError
	if err != nil && errors.As(err, &appErr) && appErr.Code == apperror.ErrCodePersistence {
		return appErr.Message
	}
	return ""
}
