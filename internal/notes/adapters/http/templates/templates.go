// Package templates содержит встроенные HTML-шаблоны страниц заметок.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v3"

	"notedesk/internal/notes/app/dto"
	"notedesk/internal/notes/domain/entities"
)

// Имена страниц.
const (
	PageIndex    = "index.html"
	PageEdit     = "edit.html"
	PageNotFound = "404.html"
	PageError    = "500.html"
)

const layoutFile = "views/layout.html"

// ErrUnknownPage возвращается для незарегистрированной страницы.
const ErrUnknownPage = "unknown page"

//go:embed views/*.html
var views embed.FS

var pages = []string{PageIndex, PageEdit, PageNotFound, PageError}

// IndexPage - данные страницы списка.
type IndexPage struct {
	Notes      []dto.NoteRecord
	Filters    entities.Filter
	Counts     entities.ViewCounts
	Categories []string
	Views      []entities.View
	Statuses   []dto.Option
	Priorities []dto.Option
	Form       dto.NoteForm
	Error      string
	CurrentURL string
}

// ViewURL возвращает ссылку на представление view с сохранением остальных фильтров.
func (p IndexPage) ViewURL(view entities.View) string {
	f := p.Filters
	f.View = view
	return dto.FilterURL(f)
}

// EditPage - данные страницы редактирования.
type EditPage struct {
	NoteID     int64
	Form       dto.NoteForm
	Statuses   []dto.Option
	Priorities []dto.Option
	Error      string
	NextURL    string
}

// Renderer исполняет страницы, каждая из которых собрана вместе с общим макетом.
type Renderer struct {
	pages map[string]*template.Template
}

// New разбирает все страницы.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"formatLabel": dto.FormatLabel,
		"viewCount":   viewCount,
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(views, layoutFile, "views/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// MustNew - как New, но паникует при ошибке.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render исполняет страницу и возвращает готовый HTML.
func (r *Renderer) Render(page string, data any) ([]byte, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("%s: %s", ErrUnknownPage, page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

// Send отрисовывает страницу и отправляет ее с указанным статусом.
func (r *Renderer) Send(c fiber.Ctx, status int, page string, data any) error {
	html, err := r.Render(page, data)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(html)
}

func viewCount(counts entities.ViewCounts, view entities.View) int {
	switch view {
	case entities.ViewArchived:
		return counts.Archived
	case entities.ViewTrash:
		return counts.Trash
	default:
		return counts.Active
	}
}
