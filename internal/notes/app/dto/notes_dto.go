// Package dto содержит представления заметок для HTML-шаблонов и JSON API.
package dto

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"notedesk/internal/notes/domain/entities"
)

// TimestampLayout - формат меток времени в ответах.
const TimestampLayout = "2006-01-02 15:04:05"

// FormatLabel превращает значение перечисления в подпись: "in_progress" -> "In Progress".
func FormatLabel(value string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(value, "_", " "))
}

// FilterURL возвращает ссылку на список с фильтром f. Значения, совпадающие
// с entities.DefaultFilter, в ссылку не попадают.
func FilterURL(f entities.Filter) string {
	defaults := entities.DefaultFilter().Values()
	query := url.Values{}
	for key, value := range f.Values() {
		if value != defaults[key] {
			query.Set(key, value)
		}
	}
	if len(query) == 0 {
		return "/"
	}
	return "/?" + query.Encode()
}

// NoteRecord - единая запись заметки для шаблонов и API.
type NoteRecord struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Category   string  `json:"category"`
	Status     string  `json:"status"`
	Priority   string  `json:"priority"`
	DueDate    *string `json:"due_date"`
	IsPinned   bool    `json:"is_pinned"`
	IsArchived bool    `json:"is_archived"`
	IsDeleted  bool    `json:"is_deleted"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// NewNoteRecord строит запись из доменной заметки.
func NewNoteRecord(note *entities.Note) NoteRecord {
	record := NoteRecord{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		Category:   note.Category,
		Status:     string(note.Status),
		Priority:   string(note.Priority),
		IsPinned:   note.IsPinned,
		IsArchived: note.IsArchived,
		IsDeleted:  note.IsDeleted,
		CreatedAt:  formatTimestamp(note.CreatedAt),
		UpdatedAt:  formatTimestamp(note.UpdatedAt),
	}
	if note.DueDate != nil {
		due := note.DueDate.Format(entities.DateLayout)
		record.DueDate = &due
	}
	return record
}

// NewNoteRecords строит записи для списка заметок.
func NewNoteRecords(notes []*entities.Note) []NoteRecord {
	records := make([]NoteRecord, 0, len(notes))
	for _, note := range notes {
		records = append(records, NewNoteRecord(note))
	}
	return records
}

// StatusLabel возвращает подпись статуса.
func (r NoteRecord) StatusLabel() string {
	return FormatLabel(r.Status)
}

// PriorityLabel возвращает подпись приоритета.
func (r NoteRecord) PriorityLabel() string {
	return FormatLabel(r.Priority)
}

// DueDateValue возвращает срок для поля формы или пустую строку.
func (r NoteRecord) DueDateValue() string {
	if r.DueDate == nil {
		return ""
	}
	return *r.DueDate
}

// ListResponse - ответ списка заметок.
type ListResponse struct {
	Filters entities.Filter     `json:"filters"`
	Counts  entities.ViewCounts `json:"counts"`
	Notes   []NoteRecord        `json:"notes"`
}

// ErrorResponse - тело JSON-ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NoteForm хранит поля формы как есть, чтобы показать их снова после ошибки проверки.
type NoteForm struct {
	Title    string
	Content  string
	Category string
	Status   string
	Priority string
	DueDate  string
	IsPinned bool
}

// DefaultNoteForm возвращает значения формы создания по умолчанию.
func DefaultNoteForm() NoteForm {
	return NoteForm{
		Category: entities.DefaultCategory,
		Status:   string(entities.StatusTodo),
		Priority: string(entities.PriorityMedium),
	}
}

// NewNoteForm заполняет форму создания из отправленных значений.
func NewNoteForm(in entities.NoteInput) NoteForm {
	return DefaultNoteForm().Merge(in)
}

// Merge накладывает отправленные значения на форму, чтобы показать их снова
// после ошибки проверки. Пустые категория, статус и приоритет не затирают
// текущие значения; любое значение флажка считается включенным.
func (f NoteForm) Merge(in entities.NoteInput) NoteForm {
	f.Title = in.Title
	f.Content = in.Content
	f.DueDate = in.DueDate
	f.IsPinned = in.IsPinned != ""
	if in.Category != "" {
		f.Category = in.Category
	}
	if in.Status != "" {
		f.Status = in.Status
	}
	if in.Priority != "" {
		f.Priority = in.Priority
	}
	return f
}

// FormFromRecord заполняет форму редактирования текущими значениями заметки.
func FormFromRecord(r NoteRecord) NoteForm {
	return NoteForm{
		Title:    r.Title,
		Content:  r.Content,
		Category: r.Category,
		Status:   r.Status,
		Priority: r.Priority,
		DueDate:  r.DueDateValue(),
		IsPinned: r.IsPinned,
	}
}

// Option - значение выпадающего списка с подписью.
type Option struct {
	Value string
	Label string
}

// StatusOptions возвращает статусы для формы.
func StatusOptions() []Option {
	options := make([]Option, 0, len(entities.Statuses))
	for _, s := range entities.Statuses {
		options = append(options, Option{Value: string(s), Label: FormatLabel(string(s))})
	}
	return options
}

// PriorityOptions возвращает приоритеты для формы.
func PriorityOptions() []Option {
	options := make([]Option, 0, len(entities.Priorities))
	for _, p := range entities.Priorities {
		options = append(options, Option{Value: string(p), Label: FormatLabel(string(p))})
	}
	return options
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}
