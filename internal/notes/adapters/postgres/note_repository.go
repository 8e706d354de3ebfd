// Package postgres предоставляет реализацию репозитория заметок на PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"notedesk/internal/notes/domain/entities"
	"notedesk/internal/notes/ports/repositories"
	"notedesk/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrCreateNote    = "failed to create note"
	ErrGetNote       = "failed to get note"
	ErrListNotes     = "failed to list notes"
	ErrScanNote      = "failed to scan note"
	ErrIterateRows   = "error iterating rows"
	ErrCountNotes    = "failed to count notes"
	ErrListCategory  = "failed to list categories"
	ErrUpdateNote    = "failed to update note"
	ErrTogglePin     = "failed to toggle pin"
	ErrToggleArchive = "failed to toggle archive"
	ErrTrashNote     = "failed to move note to trash"
	ErrRestoreNote   = "failed to restore note"
	ErrPurgeNote     = "failed to purge note"
	ErrBeginTx       = "failed to begin transaction"
	ErrCommitTx      = "failed to commit transaction"
)

// Querier - общий интерфейс пула, соединения и транзакции pgx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

const selectNote = `SELECT id, title, COALESCE(content, ''), category, status, priority, due_date,
       is_pinned, is_archived, is_deleted, created_at, updated_at
  FROM notes`

const (
	queryInsert = `INSERT INTO notes (title, content, category, status, priority, due_date, is_pinned, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	queryGetByID = selectNote + ` WHERE id = $1`

	queryCounts = `SELECT
    COUNT(*) FILTER (WHERE is_deleted = FALSE AND is_archived = FALSE),
    COUNT(*) FILTER (WHERE is_deleted = FALSE AND is_archived = TRUE),
    COUNT(*) FILTER (WHERE is_deleted = TRUE)
  FROM notes`

	queryCategories = `SELECT category FROM notes
 WHERE TRIM(category) <> ''
 GROUP BY category
 ORDER BY LOWER(category) ASC, category ASC`

	queryUpdate = `UPDATE notes
   SET title = $1, content = $2, category = $3, status = $4, priority = $5,
       due_date = $6, is_pinned = $7, updated_at = $8
 WHERE id = $9 AND is_deleted = FALSE`

	queryTogglePin = `UPDATE notes SET is_pinned = NOT is_pinned, updated_at = $1
 WHERE id = $2 AND is_deleted = FALSE`

	queryToggleArchive = `UPDATE notes SET is_archived = NOT is_archived, updated_at = $1
 WHERE id = $2 AND is_deleted = FALSE`

	queryTrash = `UPDATE notes SET is_deleted = TRUE, is_archived = FALSE, is_pinned = FALSE, updated_at = $1
 WHERE id = $2 AND is_deleted = FALSE`

	queryRestore = `UPDATE notes SET is_deleted = FALSE, is_archived = FALSE, updated_at = $1
 WHERE id = $2 AND is_deleted = TRUE`

	queryExists = `SELECT EXISTS (SELECT 1 FROM notes WHERE id = $1)`

	queryPurge = `DELETE FROM notes WHERE id = $1`
)

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	db Querier
}

// NewNoteRepository создает репозиторий заметок поверх пула, соединения или транзакции.
func NewNoteRepository(db Querier) repositories.NoteRepository {
	return &NoteRepository{db: db}
}

// Create сохраняет новую заметку и возвращает ее идентификатор.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("title", note.Title))

	var id int64
	err := r.db.QueryRow(ctx, queryInsert,
		note.Title, note.Content, note.Category, string(note.Status), string(note.Priority),
		note.DueDate, note.IsPinned, note.CreatedAt, note.UpdatedAt,
	).Scan(&id)
	if err != nil {
		log.Error(ctx, ErrCreateNote, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrCreateNote, err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", id))
	return id, nil
}

// GetByID возвращает заметку в любом состоянии.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))

	note, err := scanNote(r.db.QueryRow(ctx, queryGetByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", id))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, ErrGetNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGetNote, err)
	}

	return note, nil
}

// List возвращает заметки, подходящие под фильтр, в фиксированном порядке.
func (r *NoteRepository) List(ctx context.Context, filter entities.Filter) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))

	where, args := BuildWhere(filter)
	log.Debug(ctx, "listing notes", zap.String("view", string(filter.View)), zap.String("where", where))

	rows, err := r.db.Query(ctx, selectNote+"\n WHERE "+where+"\n "+OrderBy, args...)
	if err != nil {
		log.Error(ctx, ErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, ErrScanNote, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanNote, err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIterateRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrIterateRows, err)
	}

	return notes, nil
}

// Counts возвращает количество заметок в каждом представлении.
func (r *NoteRepository) Counts(ctx context.Context) (entities.ViewCounts, error) {
	var active, archived, trash int64
	if err := r.db.QueryRow(ctx, queryCounts).Scan(&active, &archived, &trash); err != nil {
		logger.Log(ctx).Error(ctx, ErrCountNotes, zap.Error(err))
		return entities.ViewCounts{}, fmt.Errorf("%s: %w", ErrCountNotes, err)
	}
	return entities.ViewCounts{Active: int(active), Archived: int(archived), Trash: int(trash)}, nil
}

// Categories возвращает различные непустые категории без учета регистра по алфавиту.
func (r *NoteRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, queryCategories)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrListCategory, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListCategory, err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrListCategory, err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrIterateRows, err)
	}
	return categories, nil
}

// Update перезаписывает все изменяемые поля заметки, не находящейся в корзине.
func (r *NoteRepository) Update(ctx context.Context, id int64, fields entities.NoteFields, at time.Time) error {
	return r.execOne(ctx, "NoteRepository.Update", ErrUpdateNote, id, queryUpdate,
		fields.Title, fields.Content, fields.Category, string(fields.Status), string(fields.Priority),
		fields.DueDate, fields.IsPinned, at, id)
}

// TogglePin инвертирует флаг закрепления.
func (r *NoteRepository) TogglePin(ctx context.Context, id int64, at time.Time) error {
	return r.execOne(ctx, "NoteRepository.TogglePin", ErrTogglePin, id, queryTogglePin, at, id)
}

// ToggleArchive инвертирует флаг архива.
func (r *NoteRepository) ToggleArchive(ctx context.Context, id int64, at time.Time) error {
	return r.execOne(ctx, "NoteRepository.ToggleArchive", ErrToggleArchive, id, queryToggleArchive, at, id)
}

// Trash помечает заметку удаленной и снимает флаги архива и закрепления.
func (r *NoteRepository) Trash(ctx context.Context, id int64, at time.Time) error {
	return r.execOne(ctx, "NoteRepository.Trash", ErrTrashNote, id, queryTrash, at, id)
}

// Restore возвращает заметку из корзины в активное представление.
func (r *NoteRepository) Restore(ctx context.Context, id int64, at time.Time) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Restore"))

	tag, err := r.db.Exec(ctx, queryRestore, at, id)
	if err != nil {
		log.Error(ctx, ErrRestoreNote, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrRestoreNote, err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, queryExists, id).Scan(&exists); err != nil {
		log.Error(ctx, ErrRestoreNote, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrRestoreNote, err)
	}
	if !exists {
		log.Debug(ctx, "note not found", zap.Int64("noteID", id))
		return false, entities.ErrNoteNotFound
	}
	return false, nil
}

// Purge безвозвратно удаляет заметку в любом состоянии.
func (r *NoteRepository) Purge(ctx context.Context, id int64) error {
	return r.execOne(ctx, "NoteRepository.Purge", ErrPurgeNote, id, queryPurge, id)
}

// InTx выполняет fn в транзакции.
func (r *NoteRepository) InTx(ctx context.Context, fn func(repo repositories.NoteRepository) error) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.InTx"))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		log.Error(ctx, ErrBeginTx, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrBeginTx, err)
	}

	if err := fn(&NoteRepository{db: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Warn(ctx, "failed to roll back transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, ErrCommitTx, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCommitTx, err)
	}
	return nil
}

// execOne выполняет изменяющий запрос и превращает ноль затронутых строк в ErrNoteNotFound.
func (r *NoteRepository) execOne(ctx context.Context, method, errMsg string, id int64, sql string, args ...any) error {
	log := logger.Log(ctx).With(zap.String("method", method))
	log.Debug(ctx, "executing note mutation", zap.Int64("noteID", id))

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		log.Error(ctx, errMsg, zap.Error(err))
		return fmt.Errorf("%s: %w", errMsg, err)
	}

	if tag.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or in trash", zap.Int64("noteID", id))
		return entities.ErrNoteNotFound
	}

	return nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var (
		note     entities.Note
		status   string
		priority string
	)
	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.Category,
		&status,
		&priority,
		&note.DueDate,
		&note.IsPinned,
		&note.IsArchived,
		&note.IsDeleted,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	note.Status = entities.Status(status)
	note.Priority = entities.Priority(priority)
	return &note, nil
}
