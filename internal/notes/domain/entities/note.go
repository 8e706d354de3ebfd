// Package entities определяет доменные сущности сервиса заметок.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена заметок.
var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// DateLayout - формат даты выполнения (ISO 8601, только дата).
const DateLayout = "2006-01-02"

// DefaultCategory подставляется вместо пустой категории.
const DefaultCategory = "general"

// Status - статус выполнения заметки.
type Status string

// Допустимые статусы.
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses перечисляет статусы в порядке отображения.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// ParseStatus строго разбирает статус.
func ParseStatus(raw string) (Status, bool) {
	for _, s := range Statuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// Priority - приоритет заметки.
type Priority string

// Допустимые приоритеты.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities перечисляет приоритеты в порядке отображения.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority строго разбирает приоритет.
func ParsePriority(raw string) (Priority, bool) {
	for _, p := range Priorities {
		if string(p) == raw {
			return p, true
		}
	}
	return "", false
}

// Rank возвращает позицию приоритета в сортировке: high=0, medium=1, low=2.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Note представляет собой заметку.
type Note struct {
	ID         int64
	Title      string
	Content    string
	Category   string
	Status     Status
	Priority   Priority
	DueDate    *time.Time
	IsPinned   bool
	IsArchived bool
	IsDeleted  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// View возвращает представление, в которое попадает заметка.
func (n *Note) View() View {
	switch {
	case n.IsDeleted:
		return ViewTrash
	case n.IsArchived:
		return ViewArchived
	default:
		return ViewActive
	}
}

// Editable сообщает, допускает ли заметка изменения: заметки в корзине неизменяемы.
func (n *Note) Editable() bool {
	return n.View() != ViewTrash
}

// NewNote создает активную заметку из проверенных полей.
func NewNote(fields NoteFields, now time.Time) *Note {
	return &Note{
		Title:     fields.Title,
		Content:   fields.Content,
		Category:  fields.Category,
		Status:    fields.Status,
		Priority:  fields.Priority,
		DueDate:   fields.DueDate,
		IsPinned:  fields.IsPinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ViewCounts содержит количество заметок в каждом представлении.
type ViewCounts struct {
	Active   int `json:"active"`
	Archived int `json:"archived"`
	Trash    int `json:"trash"`
}
