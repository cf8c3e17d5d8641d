package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/gallery-backend/internal/models"
	"github.com/ignatzorin/gallery-backend/internal/pkg/apperror"
)

// mockItemPersistence реализует ItemPersistence для тестов.
type mockItemPersistence struct {
	saved    []models.GalleryItem
	loadErr  error
	saveErr  error
	saveCnt  int
	hasSaved bool
}

func (m *mockItemPersistence) LoadAll(ctx context.Context) ([]models.GalleryItem, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]models.GalleryItem, len(m.saved))
	copy(out, m.saved)
	return out, nil
}

func (m *mockItemPersistence) SaveAll(ctx context.Context, items []models.GalleryItem) error {
	m.saveCnt++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = make([]models.GalleryItem, len(items))
	copy(m.saved, items)
	m.hasSaved = true
	return nil
}

func strPtr(s string) *string { return &s }

func validInput() ItemInput {
	return ItemInput{
		Title: "Новая работа",
		Type:  models.ItemTypeImage,
		URL:   "https://example.com/a.png",
	}
}

func TestItemService_InitSeedsEmptyStore(t *testing.T) {
	store := &mockItemPersistence{}
	svc := NewItemService(store, nil)
	svc.Init(context.Background())

	items := svc.List()
	if len(items) == 0 {
		t.Fatal("пустое хранилище должно засеваться примерами")
	}
	if !store.hasSaved {
		t.Fatal("стартовое наполнение должно сразу сохраняться")
	}
	if len(store.saved) != len(items) {
		t.Fatalf("в хранилище %d элементов, в памяти %d", len(store.saved), len(items))
	}
}

func TestItemService_InitFallsBackOnLoadError(t *testing.T) {
	store := &mockItemPersistence{loadErr: errors.New("коллекция повреждена")}
	svc := NewItemService(store, nil)
	svc.Init(context.Background())

	if len(svc.List()) == 0 {
		t.Fatal("при ошибке чтения галерея должна стартовать с примерами")
	}
}

func TestItemService_InitKeepsPersistedCollection(t *testing.T) {
	existing := models.GalleryItem{
		ID:        uuid.New(),
		Title:     "Сохранённая работа",
		Type:      models.ItemTypeImage,
		URL:       "https://example.com/x.png",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	store := &mockItemPersistence{saved: []models.GalleryItem{existing}}
	svc := NewItemService(store, nil)
	svc.Init(context.Background())

	items := svc.List()
	if len(items) != 1 || items[0].ID != existing.ID {
		t.Fatalf("сохранённая коллекция не должна замещаться примерами: %+v", items)
	}
}

func TestItemService_AddPrependsAndPersists(t *testing.T) {
	store := &mockItemPersistence{}
	svc := NewItemService(store, nil)
	svc.Init(context.Background())

	before := svc.List()
	seen := make(map[uuid.UUID]struct{}, len(before))
	for _, it := range before {
		seen[it.ID] = struct{}{}
	}

	item, err := svc.Add(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Add вернул ошибку: %v", err)
	}

	items := svc.List()
	if len(items) != len(before)+1 {
		t.Fatalf("коллекция должна вырасти ровно на один: %d -> %d", len(before), len(items))
	}
	if items[0].ID != item.ID {
		t.Fatal("новый элемент должен быть первым в списке")
	}
	if _, dup := seen[item.ID]; dup {
		t.Fatal("идентификатор нового элемента обязан быть уникальным")
	}
	if !item.CreatedAt.Equal(item.UpdatedAt) {
		t.Fatal("у нового элемента createdAt и updatedAt должны совпадать")
	}
	if len(store.saved) != len(items) {
		t.Fatal("коллекция должна сохраняться синхронно при добавлении")
	}
}

func TestItemService_AddTrimsFields(t *testing.T) {
	store := &mockItemPersistence{}
	svc := NewItemService(store, nil)
	svc.Init(context.Background())

	in := validInput()
	in.Title = "  Работа с пробелами  "
	in.URL = "  https://example.com/b.png  "

	item, err := svc.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("Add вернул ошибку: %v", err)
	}
	if item.Title != "Работа с пробелами" || item.URL != "https://example.com/b.png" {
		t.Fatalf("поля должны сохраняться без крайних пробелов: %+v", item)
	}
}

func TestItemService_AddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ItemInput)
	}{
		{"пустой заголовок", func(in *ItemInput) { in.Title = "" }},
		{"заголовок из пробелов", func(in *ItemInput) { in.Title = "   " }},
		{"пустая ссылка", func(in *ItemInput) { in.URL = "" }},
		{"ссылка из пробелов", func(in *ItemInput) { in.URL = "\t " }},
		{"неизвестный тип", func(in *ItemInput) { in.Type = "gallery" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockItemPersistence{}
			svc := NewItemService(store, nil)
			svc.Init(context.Background())

			before := svc.List()
			saves := store.saveCnt

			in := validInput()
			tt.mutate(&in)

			if _, err := svc.Add(context.Background(), in); !apperror.IsValidation(err) {
				t.Fatalf("ожидается ошибка валидации, получено: %v", err)
			}
			if len(svc.List()) != len(before) {
				t.Fatal("при отказе валидации коллекция не должна меняться")
			}
			if store.saveCnt != saves {
				t.Fatal("при отказе валидации запись в хранилище не выполняется")
			}
		})
	}
}

func TestItemService_UpdateMergesFields(t *testing.T) {
	store := &mockItemPersistence{}
	svc := NewItemService(store, nil)
	svc.Init(context.Background())

	created, err := svc.Add(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Add вернул ошибку: %v", err)
	}
	othersBefore := svc.List()[1:]

	time.Sleep(time.Millisecond)

	newType := models.ItemTypeVideo
	updated, err := svc.Update(context.Background(), created.ID, models.GalleryItemPatch{
		Title:        strPtr("Обновлённая работа"),
		Type:         &newType,
		ThumbnailURL: strPtr("https://example.com/poster.jpg"),
	})
	if err != nil {
		t.Fatalf("Update вернул ошибку: %v", err)
	}

	if updated.Title != "Обновлённая работа" || updated.Type != models.ItemTypeVideo {
		t.Fatalf("частичные поля не влились: %+v", updated)
	}
	if updated.URL != created.URL {
		t.Fatal("незатронутые поля должны сохраняться")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatal("updatedAt обязан строго расти при обновлении")
	}

	othersAfter := svc.List()[1:]
	for i := range othersBefore {
		if othersAfter[i].UpdatedAt != othersBefore[i].UpdatedAt {
			t.Fatal("остальные элементы не должны затрагиваться обновлением")
		}
	}
}

func TestItemService_UpdateUnknownIDLeavesCollectionIntact(t *testing.T) {
	store := &mockItemPersistence{}
	svc := NewItemService(store, nil)
	svc.Init(context.Background())

	before := svc.List()
	saves := store.saveCnt

	_, err := svc.Update(context.Background(), uuid.New(), models.GalleryItemPatch{Title: strPtr("x")})
	if !apperror.IsNotFound(err) {
		t.Fatalf("ожидается NOT_FOUND, получено: %v", err)
	}

	after := svc.List()
	if len(after) != len(before) {
		t.Fatal("коллекция не должна меняться при неизвестном id")
	}
	for i := range before {
		if after[i] != before[i] {
			t.Fatal("коллекция должна остаться неизменной при неизвестном id")
		}
	}
	if store.saveCnt != saves {
		t.Fatal("запись в хранилище не выполняется при неизвестном id")
	}
}

func TestItemService_Delete(t *testing.T) {
	store := &mockItemPersistence{}
	svc := NewItemService(store, nil)
	svc.Init(context.Background())

	created, err := svc.Add(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Add вернул ошибку: %v", err)
	}
	sizeBefore := len(svc.List())

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete вернул ошибку: %v", err)
	}
	if len(svc.List()) != sizeBefore-1 {
		t.Fatal("удаление должно уменьшать коллекцию на один элемент")
	}
	if _, err := svc.Get(created.ID); !apperror.IsNotFound(err) {
		t.Fatal("удалённый элемент не должен находиться")
	}

	if err := svc.Delete(context.Background(), created.ID); !apperror.IsNotFound(err) {
		t.Fatalf("повторное удаление должно возвращать NOT_FOUND, получено: %v", err)
	}
}

func TestItemService_PersistFailureKeepsMemoryState(t *testing.T) {
	store := &mockItemPersistence{}
	svc := NewItemService(store, nil)
	svc.Init(context.Background())

	store.saveErr = errors.New("диск переполнен")

	item, err := svc.Add(context.Background(), validInput())
	if !apperror.IsPersistenceWarning(err) {
		t.Fatalf("ожидается предупреждение о сохранении, получено: %v", err)
	}
	if item == nil {
		t.Fatal("элемент должен вернуться несмотря на сбой записи")
	}
	if svc.List()[0].ID != item.ID {
		t.Fatal("изменение должно остаться в памяти несмотря на сбой записи")
	}
}
