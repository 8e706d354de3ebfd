package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"notedesk/internal/notes/ports/repositories"
)

// Acquirer выдает соединения пула; реализуется pkg/db/postgres.Database.
type Acquirer interface {
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
}

// Connector выдает репозиторий поверх отдельного соединения пула на время запроса.
type Connector struct {
	pool Acquirer
}

// NewConnector создает Connector.
func NewConnector(pool Acquirer) *Connector {
	return &Connector{pool: pool}
}

// Acquire реализует repositories.Store.
func (c *Connector) Acquire(ctx context.Context) (repositories.NoteRepository, func(), error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, func() {}, err
	}
	return NewNoteRepository(conn), conn.Release, nil
}
