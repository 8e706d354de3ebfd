package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedesk/internal/notes/app/dto"
	"notedesk/internal/notes/domain/entities"
)

func TestFormatLabel(t *testing.T) {
	tests := map[string]string{
		"in_progress": "In Progress",
		"todo":        "Todo",
		"high":        "High",
		"":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, dto.FormatLabel(in), in)
	}
}

func TestNewNoteRecord(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	due := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	note := &entities.Note{
		ID: 9, Title: "Plan", Content: "Body", Category: "work",
		Status: entities.StatusInProgress, Priority: entities.PriorityHigh, DueDate: &due,
		IsPinned: true, CreatedAt: created, UpdatedAt: created.Add(time.Hour),
	}

	record := dto.NewNoteRecord(note)
	assert.Equal(t, "In Progress", record.StatusLabel())
	assert.Equal(t, "High", record.PriorityLabel())
	assert.Equal(t, "2026-03-05", record.DueDateValue())

	raw, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 9, "title": "Plan", "content": "Body", "category": "work",
		"status": "in_progress", "priority": "high", "due_date": "2026-03-05",
		"is_pinned": true, "is_archived": false, "is_deleted": false,
		"created_at": "2026-01-02 03:04:05", "updated_at": "2026-01-02 04:04:05"
	}`, string(raw))
}

func TestNewNoteRecord_NoDueDate(t *testing.T) {
	record := dto.NewNoteRecord(&entities.Note{ID: 1, Status: entities.StatusTodo, Priority: entities.PriorityLow})

	raw, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "due_date")
	assert.Nil(t, decoded["due_date"])
	assert.Empty(t, record.DueDateValue())
}

func TestListResponse(t *testing.T) {
	resp := dto.ListResponse{
		Filters: entities.DefaultFilter(),
		Counts:  entities.ViewCounts{Active: 1},
		Notes:   dto.NewNoteRecords(nil),
	}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"filters": {"q": "", "status": "all", "priority": "all", "category": "all", "view": "active"},
		"counts": {"active": 1, "archived": 0, "trash": 0},
		"notes": []
	}`, string(raw))
}

func TestNewNoteForm(t *testing.T) {
	form := dto.NewNoteForm(entities.NoteInput{Title: "x", DueDate: "bad", IsPinned: "on"})
	assert.Equal(t, "x", form.Title)
	assert.Equal(t, "bad", form.DueDate)
	assert.Equal(t, entities.DefaultCategory, form.Category)
	assert.Equal(t, "todo", form.Status)
	assert.Equal(t, "medium", form.Priority)
	assert.True(t, form.IsPinned)

	form = dto.NewNoteForm(entities.NoteInput{Status: "later"})
	assert.Equal(t, "later", form.Status)
	assert.False(t, form.IsPinned)
}

func TestNoteForm_Merge(t *testing.T) {
	base := dto.FormFromRecord(dto.NewNoteRecord(&entities.Note{
		Title: "Old", Category: "work", Status: entities.StatusDone, Priority: entities.PriorityHigh, IsPinned: true,
	}))

	form := base.Merge(entities.NoteInput{Title: "", Content: "new", Priority: "urgent"})
	assert.Empty(t, form.Title)
	assert.Equal(t, "new", form.Content)
	assert.Equal(t, "work", form.Category)
	assert.Equal(t, "done", form.Status)
	assert.Equal(t, "urgent", form.Priority)
	assert.False(t, form.IsPinned)
}

func TestOptions(t *testing.T) {
	assert.Equal(t, []dto.Option{
		{Value: "todo", Label: "Todo"},
		{Value: "in_progress", Label: "In Progress"},
		{Value: "done", Label: "Done"},
	}, dto.StatusOptions())
	assert.Len(t, dto.PriorityOptions(), 3)
}

func TestFilterURL(t *testing.T) {
	assert.Equal(t, "/", dto.FilterURL(entities.DefaultFilter()))

	f := entities.NormalizeFilter(map[string]string{"view": "trash", "status": "done", "q": "a&b"})
	assert.Equal(t, "/?q=a%26b&status=done&view=trash", dto.FilterURL(f))

	back := entities.NormalizeFilter(map[string]string{"view": "trash", "status": "done", "q": "a&b", "priority": "all"})
	assert.Equal(t, f, back)
}
