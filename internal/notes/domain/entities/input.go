package entities

import (
	"fmt"
	"strings"
	"time"
)

// Имена полей формы заметки.
const (
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldCategory = "category"
	FieldStatus   = "status"
	FieldPriority = "priority"
	FieldDueDate  = "due_date"
	FieldIsPinned = "is_pinned"
)

// Сообщения об ошибках проверки, показываемые пользователю.
const (
	MsgTitleRequired   = "Title is required."
	MsgStatusInvalid   = "Status is invalid."
	MsgPriorityInvalid = "Priority is invalid."
	MsgDueDateInvalid  = "Due date has an invalid date format, expected YYYY-MM-DD."
)

// pinTokens - значения флажка, которые считаются включенными.
var pinTokens = map[string]struct{}{"on": {}, "1": {}, "true": {}}

// ValidationError описывает ошибку проверки конкретного поля.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is позволяет сопоставлять ошибку с ErrValidation и с причиной.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || (e.Err != nil && target == e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NoteInput - необработанные поля формы создания или редактирования.
type NoteInput struct {
	Title    string
	Content  string
	Category string
	Status   string
	Priority string
	DueDate  string
	IsPinned string
}

// DefaultNoteInput возвращает ввод со значениями полей, не переданных в форме.
func DefaultNoteInput() NoteInput {
	return NoteInput{Status: string(StatusTodo), Priority: string(PriorityMedium)}
}

// NoteFields - проверенные изменяемые поля заметки.
type NoteFields struct {
	Title    string
	Content  string
	Category string
	Status   Status
	Priority Priority
	DueDate  *time.Time
	IsPinned bool
}

// Validate строго проверяет ввод. Пустые статус и приоритет недопустимы:
// значения по умолчанию подставляются только для полей, которых нет в форме.
func (in NoteInput) Validate() (NoteFields, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return NoteFields{}, &ValidationError{Field: FieldTitle, Message: MsgTitleRequired}
	}

	status, ok := ParseStatus(strings.TrimSpace(in.Status))
	if !ok {
		return NoteFields{}, &ValidationError{Field: FieldStatus, Message: MsgStatusInvalid}
	}

	priority, ok := ParsePriority(strings.TrimSpace(in.Priority))
	if !ok {
		return NoteFields{}, &ValidationError{Field: FieldPriority, Message: MsgPriorityInvalid}
	}

	dueDate, err := ParseDueDate(in.DueDate)
	if err != nil {
		return NoteFields{}, &ValidationError{Field: FieldDueDate, Message: MsgDueDateInvalid, Err: err}
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}

	return NoteFields{
		Title:    title,
		Content:  strings.TrimSpace(in.Content),
		Category: category,
		Status:   status,
		Priority: priority,
		DueDate:  dueDate,
		IsPinned: IsPinToken(in.IsPinned),
	}, nil
}

// ParseDueDate разбирает дату выполнения; пустая строка означает отсутствие даты.
func ParseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}
	return &parsed, nil
}

// IsPinToken сообщает, включен ли флажок закрепления.
func IsPinToken(raw string) bool {
	_, ok := pinTokens[raw]
	return ok
}
