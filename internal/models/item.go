package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemType определяет тип медиа элемента галереи.
type ItemType string

const (
	ItemTypeImage ItemType = "image"
	ItemTypeVideo ItemType = "video"
	ItemTypePDF   ItemType = "pdf"
	ItemTypeURL   ItemType = "url"
)

// IsValid проверяет, что тип входит в фиксированное перечисление.
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeImage, ItemTypeVideo, ItemTypePDF, ItemTypeURL:
		return true
	}
	return false
}

// GalleryItem описывает элемент портфолио.
// URL хранится как непрозрачная строка, доступность никогда не проверяется.
type GalleryItem struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  *string   `db:"description" json:"description,omitempty"`
	Type         ItemType  `db:"item_type" json:"type"`
	URL          string    `db:"url" json:"url"`
	ThumbnailURL *string   `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// GalleryItemPatch описывает частичное обновление элемента.
// nil-поле означает "не менять".
type GalleryItemPatch struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Type         *ItemType `json:"type,omitempty"`
	URL          *string   `json:"url,omitempty"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
}
