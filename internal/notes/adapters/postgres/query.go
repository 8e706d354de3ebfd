package postgres

import (
	"slices"
	"strconv"
	"strings"

	"notedesk/internal/notes/domain/entities"
)

// OrderBy - фиксированный порядок списка: закрепленные, приоритет, наличие срока,
// срок, время изменения, идентификатор.
var OrderBy = `ORDER BY
    is_pinned DESC,
    ` + priorityRankSQL() + `,
    CASE WHEN due_date IS NULL THEN 1 ELSE 0 END,
    due_date ASC,
    updated_at DESC,
    id DESC`

// Условия представлений.
const (
	clauseNotDeleted  = "is_deleted = FALSE"
	clauseDeleted     = "is_deleted = TRUE"
	clauseArchived    = "is_archived = TRUE"
	clauseNotArchived = "is_archived = FALSE"
)

// priorityRankSQL переносит Priority.Rank в выражение CASE; значения с рангом
// по умолчанию попадают в ELSE.
func priorityRankSQL() string {
	ranked := slices.Clone(entities.Priorities)
	slices.SortFunc(ranked, func(a, b entities.Priority) int { return a.Rank() - b.Rank() })
	fallback := entities.Priority("").Rank()

	var sb strings.Builder
	sb.WriteString("CASE priority")
	for _, p := range ranked {
		if p.Rank() == fallback {
			continue
		}
		sb.WriteString(" WHEN '" + string(p) + "' THEN " + strconv.Itoa(p.Rank()))
	}
	sb.WriteString(" ELSE " + strconv.Itoa(fallback) + " END")
	return sb.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereBuilder собирает конъюнкцию условий с позиционными параметрами.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (b *whereBuilder) add(clauses ...string) {
	b.clauses = append(b.clauses, clauses...)
}

// bind добавляет параметр и возвращает его placeholder.
func (b *whereBuilder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// BuildWhere превращает каноническую запись фильтра в условие WHERE и список параметров.
// Условие представления присутствует всегда, поэтому результат никогда не пуст.
func BuildWhere(filter entities.Filter) (string, []any) {
	b := &whereBuilder{}

	switch filter.View {
	case entities.ViewTrash:
		b.add(clauseDeleted)
	case entities.ViewArchived:
		b.add(clauseNotDeleted, clauseArchived)
	default:
		b.add(clauseNotDeleted, clauseNotArchived)
	}

	if filter.Query != "" {
		pattern := "%" + likeEscaper.Replace(filter.Query) + "%"
		b.add("(" +
			"title ILIKE " + b.bind(pattern) + ` ESCAPE '\'` +
			" OR content ILIKE " + b.bind(pattern) + ` ESCAPE '\'` +
			" OR category ILIKE " + b.bind(pattern) + ` ESCAPE '\'` +
			")")
	}

	if filter.Status != entities.All && filter.Status != "" {
		b.add("status = " + b.bind(filter.Status))
	}

	if filter.Priority != entities.All && filter.Priority != "" {
		b.add("priority = " + b.bind(filter.Priority))
	}

	if filter.Category != entities.All && filter.Category != "" {
		b.add("category = " + b.bind(filter.Category))
	}

	return strings.Join(b.clauses, " AND "), b.args
}
