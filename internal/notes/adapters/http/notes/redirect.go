package notes

import "strings"

// IndexURL - адрес списка заметок.
const IndexURL = "/"

// SanitizeNext возвращает next, если это локальный путь, иначе fallback.
// Пути, начинающиеся с "//", ведут на другой хост и отклоняются.
func SanitizeNext(next, fallback string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return fallback
}
