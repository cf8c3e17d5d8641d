package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/gallery-backend/internal/models"
)

// Константы валидации
const (
	MinItemTitleLength       = 1
	MaxItemTitleLength       = 200
	MaxItemDescriptionLength = 2000
	MaxItemURLLength         = 2000
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateItemTitle проверяет заголовок элемента галереи.
func ValidateItemTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("заголовок обязателен")
	}
	return ValidateLength("заголовок", title, MinItemTitleLength, MaxItemTitleLength)
}

// ValidateItemURL проверяет ссылку на медиа.
// Ссылка хранится как непрозрачная строка, проверяется только непустота и длина.
func ValidateItemURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return fmt.Errorf("ссылка на медиа обязательна")
	}
	return ValidateLength("ссылка", rawURL, 1, MaxItemURLLength)
}

// ValidateItemDescription проверяет необязательное описание.
func ValidateItemDescription(description *string) error {
	if description != nil && *description != "" {
		desc := strings.TrimSpace(*description)
		if err := ValidateLength("описание", desc, 0, MaxItemDescriptionLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateItemType проверяет тип против фиксированного перечисления.
// Валидация выполняется в хранилище, а не на уровне вызывающего кода.
func ValidateItemType(t models.ItemType) error {
	if !t.IsValid() {
		return fmt.Errorf("недопустимый тип элемента: %q (ожидается image, video, pdf или url)", t)
	}
	return nil
}

var (
	localPartRegex = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	domainRegex    = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
)

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !localPartRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}
