package dto

import (
	"github.com/ignatzorin/gallery-backend/internal/media"
	"github.com/ignatzorin/gallery-backend/internal/models"
)

// ErrorResponse — единый формат ошибки.
// Reason заполняется для отказов в авторизации (expired/invalid/unauthorized).
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// MessageResponse — простой ответ с сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// ItemResponse — элемент галереи вместе с вычисленной стратегией отображения.
type ItemResponse struct {
	*models.GalleryItem
	Preview media.Preview `json:"preview"`
}

// NewItemResponse вычисляет превью для элемента.
func NewItemResponse(item *models.GalleryItem) *ItemResponse {
	return &ItemResponse{
		GalleryItem: item,
		Preview:     media.Dispatch(item.Type, item.URL, item.ThumbnailURL),
	}
}

// NewItemListResponse вычисляет превью для всей коллекции.
func NewItemListResponse(items []models.GalleryItem) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, NewItemResponse(&items[i]))
	}
	return out
}

// ItemMutationResponse — результат изменяющей операции.
// Warning заполняется, когда изменение применено, но не сохранено.
type ItemMutationResponse struct {
	*ItemResponse
	Warning string `json:"warning,omitempty"`
}

// DeleteResponse — результат удаления.
type DeleteResponse struct {
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

// MagicLinkResponse — результат запроса magic-link.
// Token возвращается только в development, доставка письма — внешняя забота.
type MagicLinkResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}
