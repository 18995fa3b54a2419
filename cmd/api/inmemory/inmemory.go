package inmemory

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bookshelf/cmd/api/facade"
	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

type InMemoryStore struct {
	db *memdb.MemDB
}

/* Creates an in-memory document store with one table per collection name. */
func NewInMemoryStore(collections ...string) (*InMemoryStore, error) {
	tables := make(map[string]*memdb.TableSchema, len(collections))
	for _, name := range collections {
		tables[name] = &memdb.TableSchema{
			Name: name,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
			},
		}
	}
	schema := &memdb.DBSchema{Tables: tables}

	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("validating in-memory schema: %w", err)
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}
	return &InMemoryStore{db: db}, nil
}

func (store *InMemoryStore) Open(ctx context.Context, name string) (facade.Collection, error) {
	if _, ok := store.db.DBSchema().Tables[name]; !ok {
		return nil, fmt.Errorf("opening %s: %w", name, facade.ErrUnknownCollection)
	}
	return &Collection{db: store.db, table: name}, nil
}

// AdaptedDocument is the row kept in memdb.
type AdaptedDocument struct {
	ID   string
	Data []byte
}

func adaptDocument(doc facade.Document) AdaptedDocument {
	data := make([]byte, len(doc.Data))
	copy(data, doc.Data)
	return AdaptedDocument{ID: doc.ID, Data: data}
}

func adaptToDocument(a AdaptedDocument) facade.Document {
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	return facade.Document{ID: a.ID, Data: data}
}

// Collection is a handle on one memdb table.
type Collection struct {
	db     *memdb.MemDB
	table  string
	closed atomic.Bool
}

func (c *Collection) Get(ctx context.Context) ([]facade.Document, error) {
	if c.closed.Load() {
		return nil, fmt.Errorf("listing documents from db: %w", facade.ErrClosed)
	}
	txn := c.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(c.table, "id")
	if err != nil {
		return nil, fmt.Errorf("listing documents from db: %w", err)
	}

	docs := []facade.Document{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		docs = append(docs, adaptToDocument(obj.(AdaptedDocument)))
	}
	return docs, nil
}

func (c *Collection) GetByID(ctx context.Context, id string) (facade.Document, error) {
	if c.closed.Load() {
		return facade.Document{}, fmt.Errorf("searching by ID: %w", facade.ErrClosed)
	}
	txn := c.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(c.table, "id", id)
	if err != nil {
		return facade.Document{}, fmt.Errorf("searching by ID: %w", err)
	}
	if raw == nil {
		return facade.Document{}, fmt.Errorf("searching by ID: %w", facade.ErrNotFound)
	}
	return adaptToDocument(raw.(AdaptedDocument)), nil
}

func (c *Collection) Post(ctx context.Context, doc facade.Document) (facade.Document, error) {
	if c.closed.Load() {
		return facade.Document{}, fmt.Errorf("storing document on db: %w", facade.ErrClosed)
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	txn := c.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(c.table, "id", doc.ID)
	if err != nil {
		return facade.Document{}, fmt.Errorf("storing document on db: %w", err)
	}
	if raw != nil {
		return facade.Document{}, fmt.Errorf("storing document on db: %w", facade.ErrAlreadyExists)
	}

	if err := txn.Insert(c.table, adaptDocument(doc)); err != nil {
		return facade.Document{}, fmt.Errorf("storing document on db: %w", err)
	}
	txn.Commit()
	return doc, nil
}

func (c *Collection) Put(ctx context.Context, doc facade.Document) (facade.Document, error) {
	if c.closed.Load() {
		return facade.Document{}, fmt.Errorf("updating document on db: %w", facade.ErrClosed)
	}
	txn := c.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(c.table, "id", doc.ID)
	if err != nil {
		return facade.Document{}, fmt.Errorf("updating document on db: %w", err)
	}
	if raw == nil {
		return facade.Document{}, fmt.Errorf("updating document on db: %w", facade.ErrNotFound)
	}

	if err := txn.Insert(c.table, adaptDocument(doc)); err != nil {
		return facade.Document{}, fmt.Errorf("updating document on db: %w", err)
	}
	txn.Commit()
	return doc, nil
}

func (c *Collection) Delete(ctx context.Context, id string) error {
	if c.closed.Load() {
		return fmt.Errorf("deleting document from db: %w", facade.ErrClosed)
	}
	txn := c.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(c.table, "id", id)
	if err != nil {
		return fmt.Errorf("deleting document from db: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("deleting document from db: %w", facade.ErrNotFound)
	}
	if err := txn.Delete(c.table, raw); err != nil {
		return fmt.Errorf("deleting document from db: %w", err)
	}
	txn.Commit()
	return nil
}

/* Marks the handle closed. The data stays in the store for other handles. */
func (c *Collection) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return fmt.Errorf("closing collection %s: %w", c.table, facade.ErrClosed)
	}
	return nil
}
