package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notedesk/internal/notes/domain/entities"
)

func TestNormalizeFilter(t *testing.T) {
	testCases := []struct {
		name   string
		values map[string]string
		want   entities.Filter
	}{
		{
			name:   "empty input yields defaults",
			values: map[string]string{},
			want:   entities.DefaultFilter(),
		},
		{
			name: "valid values are kept and trimmed",
			values: map[string]string{
				"q": "  Alpha ", "status": "done", "priority": " high",
				"category": " work ", "view": "archived",
			},
			want: entities.Filter{Query: "Alpha", Status: "done", Priority: "high", Category: "work", View: entities.ViewArchived},
		},
		{
			name: "invalid enums reset",
			values: map[string]string{
				"status": "finished", "priority": "urgent", "view": "everything",
			},
			want: entities.DefaultFilter(),
		},
		{
			name:   "blank category normalizes to all",
			values: map[string]string{"category": "   "},
			want:   entities.DefaultFilter(),
		},
		{
			name:   "category is open ended",
			values: map[string]string{"category": "Side Projects"},
			want:   entities.Filter{Status: "all", Priority: "all", Category: "Side Projects", View: entities.ViewActive},
		},
		{
			name:   "unknown keys are ignored",
			values: map[string]string{"page": "2", "view": "trash"},
			want:   entities.Filter{Status: "all", Priority: "all", Category: "all", View: entities.ViewTrash},
		},
		{
			name:   "enum values are case sensitive",
			values: map[string]string{"status": "DONE", "view": "Trash"},
			want:   entities.DefaultFilter(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := entities.NormalizeFilter(tc.values)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeFilter_Idempotent(t *testing.T) {
	inputs := []map[string]string{
		{},
		{"q": " x ", "status": "bogus", "priority": "low", "category": "", "view": "trash"},
		{"q": "Alpha", "status": "in_progress", "priority": "all", "category": "all", "view": "active"},
		{"category": " home ", "view": "nope"},
	}

	for _, in := range inputs {
		once := entities.NormalizeFilter(in)
		twice := entities.NormalizeFilter(once.Values())
		assert.Equal(t, once, twice)
	}
}
