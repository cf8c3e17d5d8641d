package dto

import "github.com/ignatzorin/gallery-backend/internal/models"

// CreateItemRequest — тело POST /api/items.
// Обязательность полей проверяет хранилище, а не транспортный слой.
type CreateItemRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Type         string  `json:"type"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

// UpdateItemRequest — тело PUT /api/items/:id. nil-поле не меняется.
type UpdateItemRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Type         *string `json:"type"`
	URL          *string `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

// ToPatch переводит запрос в частичное обновление модели.
func (r UpdateItemRequest) ToPatch() models.GalleryItemPatch {
	patch := models.GalleryItemPatch{
		Title:        r.Title,
		Description:  r.Description,
		URL:          r.URL,
		ThumbnailURL: r.ThumbnailURL,
	}
	if r.Type != nil {
		t := models.ItemType(*r.Type)
		patch.Type = &t
	}
	return patch
}

// LoginRequest — тело POST /api/auth/login.
type LoginRequest struct {
	Email string `json:"email" binding:"required"`
}

// MagicLinkRequest — тело POST /api/auth/magic-link.
type MagicLinkRequest struct {
	Email string `json:"email" binding:"required"`
}

// VerifyLinkRequest — тело POST /api/auth/magic-link/verify.
type VerifyLinkRequest struct {
	Token string `json:"token" binding:"required"`
	Email string `json:"email" binding:"required"`
}
