package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/gallery-backend/internal/models"
)

// ItemRepository хранит коллекцию галереи в PostgreSQL.
// Контракт тот же, что у файлового хранилища: коллекция читается
// и перезаписывается целиком, порядок — по времени создания, новые сверху.
type ItemRepository struct {
	db *sqlx.DB
}

// NewItemRepository создаёт экземпляр репозитория.
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// LoadAll возвращает всю коллекцию, новые элементы первыми.
func (r *ItemRepository) LoadAll(ctx context.Context) ([]models.GalleryItem, error) {
	query := `
		SELECT id, title, description, item_type, url, thumbnail_url, created_at, updated_at
		FROM gallery_items
		ORDER BY created_at DESC, id
	`

	var items []models.GalleryItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("item repository: load all %w", err)
	}

	return items, nil
}

// SaveAll перезаписывает коллекцию в одной транзакции.
func (r *ItemRepository) SaveAll(ctx context.Context, items []models.GalleryItem) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("item repository: begin tx %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM gallery_items`); err != nil {
		return fmt.Errorf("item repository: clear items %w", err)
	}

	if len(items) > 0 {
		// Batch INSERT, чтобы не плодить запросы по одному на элемент.
		query := `INSERT INTO gallery_items (id, title, description, item_type, url, thumbnail_url, created_at, updated_at) VALUES `
		values := make([]interface{}, 0, len(items)*8)

		for i, item := range items {
			if i > 0 {
				query += ", "
			}
			query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
				i*8+1, i*8+2, i*8+3, i*8+4, i*8+5, i*8+6, i*8+7, i*8+8)
			values = append(values,
				item.ID, item.Title, item.Description, item.Type,
				item.URL, item.ThumbnailURL, item.CreatedAt, item.UpdatedAt)
		}

		if _, err = tx.ExecContext(ctx, query, values...); err != nil {
			return fmt.Errorf("item repository: batch insert %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("item repository: commit %w", err)
	}

	return nil
}
