package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ignatzorin/gallery-backend/internal/models"
)

const (
	itemsFileName   = "items.json"
	sessionFileName = "session.json"
)

// FileStore хранит коллекцию и сессию в JSON файлах на диске —
// локальный вариант хранилища, аналог browser local storage.
// Коллекция сериализуется одним массивом, даты — в ISO-8601.
type FileStore struct {
	dir string
}

// NewFileStore готовит каталог хранилища.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("file store: не удалось создать каталог %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// LoadAll читает коллекцию. Отсутствующий файл — пустая коллекция,
// повреждённый — ошибка (вызывающий откатывается на примеры).
func (f *FileStore) LoadAll(ctx context.Context) ([]models.GalleryItem, error) {
	raw, err := os.ReadFile(filepath.Join(f.dir, itemsFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("file store: не удалось прочитать коллекцию: %w", err)
	}

	var items []models.GalleryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("file store: коллекция повреждена: %w", err)
	}

	return items, nil
}

// SaveAll записывает коллекцию целиком.
func (f *FileStore) SaveAll(ctx context.Context, items []models.GalleryItem) error {
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: не удалось сериализовать коллекцию: %w", err)
	}

	if err := f.writeAtomic(itemsFileName, raw); err != nil {
		return fmt.Errorf("file store: не удалось записать коллекцию: %w", err)
	}
	return nil
}

// GetSession читает сохранённую сессию. (nil, nil) — сессии нет.
func (f *FileStore) GetSession(ctx context.Context) (*models.StoredSession, error) {
	raw, err := os.ReadFile(filepath.Join(f.dir, sessionFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("file store: не удалось прочитать сессию: %w", err)
	}

	var session models.StoredSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("file store: сессия повреждена: %w", err)
	}

	return &session, nil
}

// SetSession сохраняет сессию администратора.
func (f *FileStore) SetSession(ctx context.Context, session models.StoredSession) error {
	raw, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: не удалось сериализовать сессию: %w", err)
	}

	if err := f.writeAtomic(sessionFileName, raw); err != nil {
		return fmt.Errorf("file store: не удалось записать сессию: %w", err)
	}
	return nil
}

// ClearSession удаляет файл сессии. Отсутствие файла не ошибка.
func (f *FileStore) ClearSession(ctx context.Context) error {
	err := os.Remove(filepath.Join(f.dir, sessionFileName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file store: не удалось удалить сессию: %w", err)
	}
	return nil
}

// writeAtomic пишет во временный файл и подменяет его rename-ом,
// чтобы повреждённая запись не испортила текущие данные.
func (f *FileStore) writeAtomic(name string, data []byte) error {
	target := filepath.Join(f.dir, name)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
