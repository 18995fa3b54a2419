package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bookshelf/cmd/api/facade"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/google/uuid"

	_ "github.com/golang-migrate/migrate/v4/source/file"

	_ "github.com/lib/pq"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store keeps every collection as rows of the documents table.
type Store struct {
	db  *sql.DB
	exc *Exectuor
}

type Exectuor struct {
	DBTX
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:  db,
		exc: NewExc(db),
	}
}

func NewExc(dbtx DBTX) *Exectuor {
	return &Exectuor{DBTX: dbtx}
}

/* Connects to the database trought a connection string and returns a pointer to a valid DB object (*sql.DB). */
func ConnectDb(connStr string) (*sql.DB, error) {
	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to db, openning: %w", err)
	}

	err = sqlDB.Ping()
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connecting to db, pingging: %w", err)
	}

	slog.Info("connected to postgres")
	return sqlDB, nil
}

func MigrationUp(store *Store, path string) error {
	driver, err := postgres.WithInstance(store.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", path),
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	err = m.Up()
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}
	return nil
}

func (store *Store) Open(ctx context.Context, name string) (facade.Collection, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("opening collection: %w", facade.ErrUnknownCollection)
	}
	if err := store.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("opening collection %s: %w", name, err)
	}
	return &Collection{exc: store.exc, name: name}, nil
}

// Collection is a handle on the rows of one collection. Closing it does not
// close the *sql.DB, which is shared by every handle of the store.
type Collection struct {
	exc    *Exectuor
	name   string
	closed atomic.Bool
}

func (c *Collection) Get(ctx context.Context) ([]facade.Document, error) {
	if c.closed.Load() {
		return nil, fmt.Errorf("listing documents from db: %w", facade.ErrClosed)
	}
	sqlStatement := `SELECT id, data FROM documents
	WHERE collection = $1
	ORDER BY created_at, id;`

	rows, err := c.exc.QueryContext(ctx, sqlStatement, c.name)
	if err != nil {
		return nil, fmt.Errorf("listing documents from db: %w", err)
	}
	defer rows.Close()

	docs := []facade.Document{}
	for rows.Next() {
		var doc facade.Document
		if err := rows.Scan(&doc.ID, &doc.Data); err != nil {
			return nil, fmt.Errorf("listing documents from db: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing documents from db: %w", err)
	}
	return docs, nil
}

/* Searches a document in database based on ID and returns it if succeed. */
func (c *Collection) GetByID(ctx context.Context, id string) (facade.Document, error) {
	if c.closed.Load() {
		return facade.Document{}, fmt.Errorf("searching by ID: %w", facade.ErrClosed)
	}
	sqlStatement := `SELECT id, data FROM documents
	WHERE collection = $1 AND id = $2;`

	var doc facade.Document
	err := c.exc.QueryRowContext(ctx, sqlStatement, c.name, id).Scan(&doc.ID, &doc.Data)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return facade.Document{}, fmt.Errorf("searching by ID: %w", facade.ErrNotFound)
		default:
			return facade.Document{}, fmt.Errorf("searching by ID: %w", err)
		}
	}
	return doc, nil
}

/* Stores the document into the database, checks and returns it if succeed. */
func (c *Collection) Post(ctx context.Context, doc facade.Document) (facade.Document, error) {
	if c.closed.Load() {
		return facade.Document{}, fmt.Errorf("storing document on db: %w", facade.ErrClosed)
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	sqlStatement := `
	INSERT INTO documents (collection, id, data, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $4)
	ON CONFLICT (collection, id) DO NOTHING
	RETURNING id, data`

	now := time.Now().UTC().Round(time.Millisecond)
	var stored facade.Document
	err := c.exc.QueryRowContext(ctx, sqlStatement, c.name, doc.ID, string(doc.Data), now).Scan(&stored.ID, &stored.Data)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return facade.Document{}, fmt.Errorf("storing document on db: %w", facade.ErrAlreadyExists)
		default:
			return facade.Document{}, fmt.Errorf("storing document on db: %w", err)
		}
	}
	return stored, nil
}

func (c *Collection) Put(ctx context.Context, doc facade.Document) (facade.Document, error) {
	if c.closed.Load() {
		return facade.Document{}, fmt.Errorf("updating document on db: %w", facade.ErrClosed)
	}
	sqlStatement := `
	UPDATE documents
	SET data = $3, updated_at = $4
	WHERE collection = $1 AND id = $2
	RETURNING id, data`

	now := time.Now().UTC().Round(time.Millisecond)
	var stored facade.Document
	err := c.exc.QueryRowContext(ctx, sqlStatement, c.name, doc.ID, string(doc.Data), now).Scan(&stored.ID, &stored.Data)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return facade.Document{}, fmt.Errorf("updating document on db: %w", facade.ErrNotFound)
		default:
			return facade.Document{}, fmt.Errorf("updating document on db: %w", err)
		}
	}
	return stored, nil
}

func (c *Collection) Delete(ctx context.Context, id string) error {
	if c.closed.Load() {
		return fmt.Errorf("deleting document from db: %w", facade.ErrClosed)
	}
	sqlStatement := `
	DELETE FROM documents
	WHERE collection = $1 AND id = $2;`

	res, err := c.exc.ExecContext(ctx, sqlStatement, c.name, id)
	if err != nil {
		return fmt.Errorf("deleting document from db: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document from db: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deleting document from db: %w", facade.ErrNotFound)
	}
	return nil
}

func (c *Collection) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return fmt.Errorf("closing collection %s: %w", c.name, facade.ErrClosed)
	}
	return nil
}
