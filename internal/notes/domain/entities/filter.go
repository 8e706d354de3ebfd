package entities

import "strings"

// All означает отсутствие ограничения по полю фильтра.
const All = "all"

// View - взаимоисключающее представление заметок.
type View string

// Доступные представления.
const (
	ViewActive   View = "active"
	ViewArchived View = "archived"
	ViewTrash    View = "trash"
)

// Views перечисляет представления в порядке отображения.
var Views = []View{ViewActive, ViewArchived, ViewTrash}

// Ключи параметров запроса для фильтра.
const (
	FilterKeyQuery    = "q"
	FilterKeyStatus   = "status"
	FilterKeyPriority = "priority"
	FilterKeyCategory = "category"
	FilterKeyView     = "view"
)

// FilterKeys перечисляет все ключи фильтра.
var FilterKeys = []string{FilterKeyQuery, FilterKeyStatus, FilterKeyPriority, FilterKeyCategory, FilterKeyView}

// Filter - каноническая запись фильтра списка заметок.
type Filter struct {
	Query    string `json:"q"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Category string `json:"category"`
	View     View   `json:"view"`
}

// DefaultFilter возвращает самый широкий фильтр активного представления.
func DefaultFilter() Filter {
	return Filter{Status: All, Priority: All, Category: All, View: ViewActive}
}

// NormalizeFilter приводит произвольные параметры запроса к канонической записи.
// Некорректные значения никогда не приводят к ошибке, а заменяются значениями по умолчанию.
func NormalizeFilter(values map[string]string) Filter {
	return Filter{
		Query:    strings.TrimSpace(values[FilterKeyQuery]),
		Status:   ParseStatusFilter(values[FilterKeyStatus]),
		Priority: ParsePriorityFilter(values[FilterKeyPriority]),
		Category: ParseCategoryFilter(values[FilterKeyCategory]),
		View:     ParseView(values[FilterKeyView]),
	}
}

// ParseStatusFilter возвращает статус или All для всего, что статусом не является.
func ParseStatusFilter(raw string) string {
	if s, ok := ParseStatus(strings.TrimSpace(raw)); ok {
		return string(s)
	}
	return All
}

// ParsePriorityFilter возвращает приоритет или All.
func ParsePriorityFilter(raw string) string {
	if p, ok := ParsePriority(strings.TrimSpace(raw)); ok {
		return string(p)
	}
	return All
}

// ParseCategoryFilter принимает любую категорию; пустая строка означает All.
func ParseCategoryFilter(raw string) string {
	if c := strings.TrimSpace(raw); c != "" {
		return c
	}
	return All
}

// ParseView возвращает представление или ViewActive по умолчанию.
func ParseView(raw string) View {
	raw = strings.TrimSpace(raw)
	for _, v := range Views {
		if string(v) == raw {
			return v
		}
	}
	return ViewActive
}

// Values возвращает фильтр в виде параметров запроса.
func (f Filter) Values() map[string]string {
	return map[string]string{
		FilterKeyQuery:    f.Query,
		FilterKeyStatus:   f.Status,
		FilterKeyPriority: f.Priority,
		FilterKeyCategory: f.Category,
		FilterKeyView:     string(f.View),
	}
}
