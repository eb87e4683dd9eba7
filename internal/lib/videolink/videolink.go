// Package videolink проверяет ссылки на видеоматериалы уроков.
// Разрешены только ссылки на youtube.com.
package videolink

import (
	"fmt"
	"net/url"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

// Validate возвращает ErrValidation, если ссылка не ведет на youtube.com.
func Validate(raw string) error {
	const op = "videolink.Validate"
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w: invalid url: %v", op, models.ErrValidation, err)
	}
	host := parsed.Hostname()
	if host != "youtube.com" && host != "www.youtube.com" {
		return fmt.Errorf("%s: %w: only youtube.com links are allowed", op, models.ErrValidation)
	}
	return nil
}
