package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/gallery-backend/internal/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore вернул ошибку: %v", err)
	}
	return store
}

func TestFileStore_LoadAllMissingFile(t *testing.T) {
	store := newTestStore(t)

	items, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("отсутствующий файл не ошибка: %v", err)
	}
	if items != nil {
		t.Fatalf("отсутствующий файл — пустая коллекция, получено %v", items)
	}
}

func TestFileStore_SaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	desc := "Описание работы"
	thumb := "https://example.com/poster.jpg"
	items := []models.GalleryItem{
		{
			ID:           uuid.New(),
			Title:        "Работа",
			Description:  &desc,
			Type:         models.ItemTypeVideo,
			URL:          "https://example.com/v.mp4",
			ThumbnailURL: &thumb,
			CreatedAt:    time.Now().UTC().Truncate(time.Second),
			UpdatedAt:    time.Now().UTC().Truncate(time.Second),
		},
		{
			ID:        uuid.New(),
			Title:     "Вторая работа",
			Type:      models.ItemTypeImage,
			URL:       "https://example.com/a.png",
			CreatedAt: time.Now().UTC().Truncate(time.Second),
			UpdatedAt: time.Now().UTC().Truncate(time.Second),
		},
	}

	if err := store.SaveAll(context.Background(), items); err != nil {
		t.Fatalf("SaveAll вернул ошибку: %v", err)
	}

	loaded, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll вернул ошибку: %v", err)
	}
	if len(loaded) != len(items) {
		t.Fatalf("ожидается %d элементов, получено %d", len(items), len(loaded))
	}
	for i := range items {
		if loaded[i].ID != items[i].ID || loaded[i].Title != items[i].Title {
			t.Fatalf("элемент %d не совпал после перечитывания: %+v", i, loaded[i])
		}
		if !loaded[i].CreatedAt.Equal(items[i].CreatedAt) {
			t.Fatalf("дата элемента %d потерялась при сериализации", i)
		}
	}
	if loaded[0].Description == nil || *loaded[0].Description != desc {
		t.Fatal("описание потерялось при перечитывании")
	}
	if loaded[1].Description != nil {
		t.Fatal("отсутствующее описание должно остаться nil")
	}
}

func TestFileStore_LoadAllCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore вернул ошибку: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "items.json"), []byte("{не json"), 0o600); err != nil {
		t.Fatalf("не удалось подготовить файл: %v", err)
	}

	if _, err := store.LoadAll(context.Background()); err == nil {
		t.Fatal("повреждённый файл должен возвращать ошибку")
	}
}

func TestFileStore_SessionLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session, err := store.GetSession(ctx)
	if err != nil || session != nil {
		t.Fatalf("до записи сессии не должно быть: %v, %v", session, err)
	}

	stored := models.StoredSession{
		Email:    "admin@example.com",
		IssuedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := store.SetSession(ctx, stored); err != nil {
		t.Fatalf("SetSession вернул ошибку: %v", err)
	}

	session, err = store.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession вернул ошибку: %v", err)
	}
	if session == nil || session.Email != stored.Email || !session.IssuedAt.Equal(stored.IssuedAt) {
		t.Fatalf("сессия не совпала после перечитывания: %+v", session)
	}

	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession вернул ошибку: %v", err)
	}
	session, err = store.GetSession(ctx)
	if err != nil || session != nil {
		t.Fatalf("после очистки сессии быть не должно: %v, %v", session, err)
	}

	// Повторная очистка не ошибка.
	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("повторный ClearSession вернул ошибку: %v", err)
	}
}
