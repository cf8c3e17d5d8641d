package media

import (
	"net/url"
	"path"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"

	"github.com/ignatzorin/gallery-backend/internal/models"
)

// RenderStrategy определяет способ отображения элемента галереи.
type RenderStrategy string

const (
	StrategyImage RenderStrategy = "image"
	StrategyVideo RenderStrategy = "video"
	StrategyPDF   RenderStrategy = "pdf"
	StrategyLink  RenderStrategy = "link"
)

// Preview — результат диспетчеризации: стратегия отображения
// и постер для превью (пустая строка, если постер не задан).
type Preview struct {
	Strategy  RenderStrategy `json:"strategy"`
	PosterURL string         `json:"poster_url,omitempty"`
}

// Dispatch выбирает стратегию отображения по типу элемента.
// Чистая функция без состояния и побочных эффектов.
//
// Для типа url тип контента определяется по расширению в пути ссылки:
// расширения изображений дают стратегию image, видео — video,
// всё остальное — generic link.
func Dispatch(itemType models.ItemType, rawURL string, thumbnailURL *string) Preview {
	poster := ""
	if thumbnailURL != nil {
		poster = strings.TrimSpace(*thumbnailURL)
	}

	switch itemType {
	case models.ItemTypeImage:
		// Изображение само себе превью, постер не нужен.
		return Preview{Strategy: StrategyImage}
	case models.ItemTypeVideo:
		return Preview{Strategy: StrategyVideo, PosterURL: poster}
	case models.ItemTypePDF:
		return Preview{Strategy: StrategyPDF, PosterURL: poster}
	default:
		return sniffLink(rawURL, poster)
	}
}

// sniffLink определяет стратегию для элемента типа url по расширению файла.
func sniffLink(rawURL, poster string) Preview {
	switch extensionKind(rawURL) {
	case "image":
		return Preview{Strategy: StrategyImage}
	case "video":
		return Preview{Strategy: StrategyVideo, PosterURL: poster}
	default:
		return Preview{Strategy: StrategyLink, PosterURL: poster}
	}
}

// extensionKind возвращает семейство MIME ("image", "video" или "")
// по расширению в пути ссылки. Сами байты никогда не скачиваются.
func extensionKind(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(parsed.Path), "."))
	if ext == "" {
		return ""
	}

	// Браузер играет .ogg в видеоплеере, filetype относит его к аудио.
	if ext == "ogg" {
		return "video"
	}
	// В реестре filetype jpeg зарегистрирован под расширением jpg.
	if ext == "jpeg" {
		ext = "jpg"
	}

	t := filetype.GetType(ext)
	if t == types.Unknown {
		return ""
	}

	switch t.MIME.Type {
	case "image", "video":
		return t.MIME.Type
	}
	return ""
}
