package database_test

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/bookshelf/cmd/api/book"
	"github.com/bookshelf/cmd/api/database"
	"github.com/bookshelf/cmd/api/facade"
	"github.com/golang-migrate/migrate/v4"
	"github.com/matryer/is"

	_ "github.com/lib/pq"
)

var store *database.Store
var sqlDB *sql.DB
var ctx context.Context = context.Background()

const testCollection = "books_test"

// TestMain sets up the database shared by the tests. Without DATABASE_URL
// there is nothing to test against and the package is skipped.
func TestMain(m *testing.M) {
	var err error
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Println("DATABASE_URL not set, skipping postgres tests")
		os.Exit(0)
	}
	sqlDB, err = database.ConnectDb(connStr)
	if err != nil {
		log.Fatalln(err)
	}

	store = database.NewStore(sqlDB)
	path := os.Getenv("DATABASE_MIGRATIONS_PATH")
	if path == "" {
		path = "migrations"
	}
	err = database.MigrationUp(store, path)
	if err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalln(err)
		}
		log.Println(err)
	}

	code := m.Run()
	sqlDB.Close()
	os.Exit(code)
}

func openCollection(t *testing.T) facade.Collection {
	t.Helper()
	t.Cleanup(func() {
		teardownDB(t)
	})
	coll, err := store.Open(ctx, testCollection)
	if err != nil {
		t.Fatalf("opening collection: %v", err)
	}
	return coll
}

func TestPost(t *testing.T) {
	coll := openCollection(t)

	t.Run("stores a document without errors", func(t *testing.T) {
		is := is.New(t)

		doc, err := coll.Post(ctx, facade.Document{Data: []byte(`{"isbn13": "1"}`)})
		is.NoErr(err)
		is.True(doc.ID != "")

		found, err := coll.GetByID(ctx, doc.ID)
		is.NoErr(err)
		is.Equal(found.ID, doc.ID)
		is.Equal(string(found.Data), `{"isbn13": "1"}`)
	})

	t.Run("stores a document with a taken id should return an already exists error", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.Post(ctx, facade.Document{ID: "taken", Data: []byte(`{}`)})
		is.NoErr(err)
		_, err = coll.Post(ctx, facade.Document{ID: "taken", Data: []byte(`{}`)})
		is.True(errors.Is(err, facade.ErrAlreadyExists))
	})
}

func TestGet(t *testing.T) {
	coll := openCollection(t)

	t.Run("lists without errors even if there is no documents in the database", func(t *testing.T) {
		is := is.New(t)

		docs, err := coll.Get(ctx)
		is.NoErr(err)
		is.Equal(docs, []facade.Document{})
	})

	t.Run("lists only the documents of the collection", func(t *testing.T) {
		is := is.New(t)

		other, err := store.Open(ctx, "other_collection")
		is.NoErr(err)
		_, err = other.Post(ctx, facade.Document{ID: "x", Data: []byte(`{}`)})
		is.NoErr(err)
		_, err = coll.Post(ctx, facade.Document{ID: "a", Data: []byte(`{}`)})
		is.NoErr(err)

		docs, err := coll.Get(ctx)
		is.NoErr(err)
		is.Equal(len(docs), 1)
		is.Equal(docs[0].ID, "a")
	})

	t.Run("gets an non existing document should return a not found error", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.GetByID(ctx, "missing")
		is.True(errors.Is(err, facade.ErrNotFound))
	})
}

func TestPut(t *testing.T) {
	coll := openCollection(t)

	t.Run("updates a document without errors", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.Post(ctx, facade.Document{ID: "a", Data: []byte(`{"v": 1}`)})
		is.NoErr(err)

		updated, err := coll.Put(ctx, facade.Document{ID: "a", Data: []byte(`{"v": 2}`)})
		is.NoErr(err)
		is.Equal(string(updated.Data), `{"v": 2}`)
	})

	t.Run("updates an non existing document should return a not found error", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.Put(ctx, facade.Document{ID: "missing", Data: []byte(`{}`)})
		is.True(errors.Is(err, facade.ErrNotFound))
	})
}

func TestDelete(t *testing.T) {
	coll := openCollection(t)

	t.Run("deletes a document without errors", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.Post(ctx, facade.Document{ID: "a", Data: []byte(`{}`)})
		is.NoErr(err)
		is.NoErr(coll.Delete(ctx, "a"))

		_, err = coll.GetByID(ctx, "a")
		is.True(errors.Is(err, facade.ErrNotFound))
	})

	t.Run("deletes an non existing document should return a not found error", func(t *testing.T) {
		is := is.New(t)

		err := coll.Delete(ctx, "a")
		is.True(errors.Is(err, facade.ErrNotFound))
	})
}

func TestBookshelfOnPostgres(t *testing.T) {
	t.Cleanup(func() {
		teardownDB(t)
	})
	is := is.New(t)

	shelf, err := book.NewBookshelf(store, testCollection).Init(ctx)
	is.NoErr(err)

	created, err := shelf.Create(ctx, book.PersistedBook{
		ISBN13:   "9780000000001",
		Title:    "A Wizard of Earthsea",
		Authors:  []string{"Ursula K. Le Guin"},
		NumPages: 200,
		Shelf:    book.ShelfToRead,
	})
	is.NoErr(err)

	_, err = shelf.Create(ctx, book.PersistedBook{ISBN13: "9780000000001", Shelf: book.ShelfToRead})
	is.True(errors.Is(err, book.ErrResponseDuplicateISBN))

	is.NoErr(created.StartReading())
	_, err = shelf.Update(ctx, created)
	is.NoErr(err)

	found, err := shelf.GetByISBN(ctx, "9780000000001")
	is.NoErr(err)
	is.Equal(found.ToPersisted(), created.ToPersisted())

	is.NoErr(shelf.Close())
}

func teardownDB(t *testing.T) {
	is := is.New(t)

	// Truncating documents table, cleaning up all the records.
	_, err := sqlDB.Exec(`TRUNCATE TABLE public.documents`)
	is.NoErr(err)
}
