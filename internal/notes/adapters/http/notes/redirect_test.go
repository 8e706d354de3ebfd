package notes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notedesk/internal/notes/adapters/http/notes"
)

func TestSanitizeNext(t *testing.T) {
	tests := map[string]string{
		"/?view=trash":         "/?view=trash",
		"/notes/1/edit":        "/notes/1/edit",
		"//evil.example":       notes.IndexURL,
		"https://evil.example": notes.IndexURL,
		"":                     notes.IndexURL,
		"relative":             notes.IndexURL,
	}
	for next, want := range tests {
		assert.Equal(t, want, notes.SanitizeNext(next, notes.IndexURL), next)
	}
}
