package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/gallery-backend/internal/logger"
	"github.com/ignatzorin/gallery-backend/internal/models"
	"github.com/ignatzorin/gallery-backend/internal/pkg/apperror"
	"github.com/ignatzorin/gallery-backend/internal/validation"
)

// ItemPersistence описывает контракт хранилища коллекции:
// коллекция читается и записывается целиком.
type ItemPersistence interface {
	LoadAll(ctx context.Context) ([]models.GalleryItem, error)
	SaveAll(ctx context.Context, items []models.GalleryItem) error
}

// ItemNotifier получает события об изменениях коллекции.
type ItemNotifier interface {
	Broadcast(event string, data any) error
}

// ItemService владеет коллекцией элементов галереи.
// Источник истины — список в памяти, каждое изменение зеркалируется
// в хранилище. Неудачная запись не откатывает изменение.
type ItemService struct {
	mu       sync.RWMutex
	items    []models.GalleryItem
	store    ItemPersistence
	notifier ItemNotifier
}

// ItemInput содержит все поля элемента кроме id и таймстампов.
type ItemInput struct {
	Title        string
	Description  *string
	Type         models.ItemType
	URL          string
	ThumbnailURL *string
}

// NewItemService создаёт сервис галереи. Notifier может быть nil.
func NewItemService(store ItemPersistence, notifier ItemNotifier) *ItemService {
	return &ItemService{store: store, notifier: notifier}
}

// sampleItems — стартовое наполнение пустой галереи.
func sampleItems() []models.GalleryItem {
	now := time.Now()
	desc1 := "Дизайн интерфейса для технологической компании"
	desc2 := "Логотип для нового модного бренда"
	desc3 := "Рекламный ролик для стартапа"
	thumb := "https://images.unsplash.com/photo-1605810230434-7631ac76ec81"

	return []models.GalleryItem{
		{
			ID:          uuid.New(),
			Title:       "Дизайн корпоративного сайта",
			Description: &desc1,
			Type:        models.ItemTypeImage,
			URL:         "https://images.unsplash.com/photo-1488590528505-98d2b5aba04b",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New(),
			Title:       "Логотип модного бренда",
			Description: &desc2,
			Type:        models.ItemTypeImage,
			URL:         "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:           uuid.New(),
			Title:        "Имиджевый ролик",
			Description:  &desc3,
			Type:         models.ItemTypeVideo,
			URL:          "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			ThumbnailURL: &thumb,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}

// Init загружает коллекцию из хранилища. Пустое хранилище засевается
// примерами и сразу сохраняется. Ошибка чтения не фатальна:
// галерея стартует с примерами, сбой пишется в лог.
func (s *ItemService) Init(ctx context.Context) {
	items, err := s.store.LoadAll(ctx)
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithField("error", err.Error()).
				Warn("item service: не удалось прочитать коллекцию, используем примеры")
		}
		items = nil
	}

	if len(items) == 0 {
		items = sampleItems()
		if err := s.store.SaveAll(ctx, items); err != nil && logger.Log != nil {
			logger.Log.WithField("error", err.Error()).
				Warn("item service: не удалось сохранить стартовое наполнение")
		}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// List возвращает коллекцию: новые элементы первыми.
func (s *ItemService) List() []models.GalleryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.GalleryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get возвращает элемент по идентификатору.
func (s *ItemService) Get(id uuid.UUID) (*models.GalleryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			item := s.items[i]
			return &item, nil
		}
	}
	return nil, apperror.ErrItemNotFound
}

// Add создаёт новый элемент и ставит его в начало коллекции.
// Валидация выполняется до любого изменения состояния.
// Если запись в хранилище не удалась, элемент остаётся в памяти,
// а вызывающему возвращается PERSISTENCE_ERROR как предупреждение.
func (s *ItemService) Add(ctx context.Context, in ItemInput) (*models.GalleryItem, error) {
	if err := validation.ValidateItemTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateItemURL(in.URL); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateItemType(in.Type); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateItemDescription(in.Description); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	now := time.Now()
	item := models.GalleryItem{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Type:         in.Type,
		URL:          strings.TrimSpace(in.URL),
		ThumbnailURL: in.ThumbnailURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.mu.Lock()
	s.items = append([]models.GalleryItem{item}, s.items...)
	snapshot := make([]models.GalleryItem, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	s.notify("item_created", item)

	if err := s.store.SaveAll(ctx, snapshot); err != nil {
		return &item, s.persistWarning(err)
	}

	return &item, nil
}

// Update вливает частичные поля в существующий элемент
// и обновляет updated_at. Остальные элементы не затрагиваются.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, patch models.GalleryItemPatch) (*models.GalleryItem, error) {
	if patch.Title != nil {
		if err := validation.ValidateItemTitle(*patch.Title); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if patch.URL != nil {
		if err := validation.ValidateItemURL(*patch.URL); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if patch.Type != nil {
		if err := validation.ValidateItemType(*patch.Type); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if err := validation.ValidateItemDescription(patch.Description); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	s.mu.Lock()
	idx := -1
	for i := range s.items {
		if s.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, apperror.ErrItemNotFound
	}

	item := &s.items[idx]
	if patch.Title != nil {
		item.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		item.Description = patch.Description
	}
	if patch.Type != nil {
		item.Type = *patch.Type
	}
	if patch.URL != nil {
		item.URL = strings.TrimSpace(*patch.URL)
	}
	if patch.ThumbnailURL != nil {
		item.ThumbnailURL = patch.ThumbnailURL
	}
	item.UpdatedAt = time.Now()

	updated := *item
	snapshot := make([]models.GalleryItem, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	s.notify("item_updated", updated)

	if err := s.store.SaveAll(ctx, snapshot); err != nil {
		return &updated, s.persistWarning(err)
	}

	return &updated, nil
}

// Delete удаляет элемент из коллекции.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	idx := -1
	for i := range s.items {
		if s.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperror.ErrItemNotFound
	}

	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	snapshot := make([]models.GalleryItem, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	s.notify("item_deleted", removed)

	if err := s.store.SaveAll(ctx, snapshot); err != nil {
		return s.persistWarning(err)
	}

	return nil
}

// persistWarning логирует сбой записи и оборачивает его в предупреждение.
func (s *ItemService) persistWarning(err error) error {
	if logger.Log != nil {
		logger.Log.WithField("error", err.Error()).
			Warn("item service: изменение применено в памяти, но не сохранено")
	}
	return apperror.Wrap(err, apperror.ErrCodePersistence,
		"изменение применено, но не сохранено в хранилище")
}

// notify отправляет событие об изменении коллекции, если подключён хаб.
func (s *ItemService) notify(event string, data any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Broadcast(event, data); err != nil && logger.Log != nil {
		logger.Log.WithField("error", err.Error()).
			Warn("item service: не удалось отправить событие")
	}
}
