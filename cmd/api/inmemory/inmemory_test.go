package inmemory_test

import (
	"context"
	"errors"
	"log"
	"testing"

	"github.com/bookshelf/cmd/api/facade"
	"github.com/bookshelf/cmd/api/inmemory"
	"github.com/matryer/is"
)

var ctx context.Context = context.Background()

func openCollection(t *testing.T) facade.Collection {
	t.Helper()
	store, err := inmemory.NewInMemoryStore("books_test")
	if err != nil {
		log.Fatalln(err)
	}
	coll, err := store.Open(ctx, "books_test")
	if err != nil {
		log.Fatalln(err)
	}
	return coll
}

func TestOpen(t *testing.T) {
	is := is.New(t)

	store, err := inmemory.NewInMemoryStore("books_test")
	is.NoErr(err)

	_, err = store.Open(ctx, "missing")
	is.True(errors.Is(err, facade.ErrUnknownCollection))
}

func TestPost(t *testing.T) {
	coll := openCollection(t)

	t.Run("stores a document and assigns an id", func(t *testing.T) {
		is := is.New(t)

		doc, err := coll.Post(ctx, facade.Document{Data: []byte(`{"title":"A"}`)})
		is.NoErr(err)
		is.True(doc.ID != "")

		found, err := coll.GetByID(ctx, doc.ID)
		is.NoErr(err)
		is.Equal(found, doc)
	})

	t.Run("keeps a given id", func(t *testing.T) {
		is := is.New(t)

		doc, err := coll.Post(ctx, facade.Document{ID: "given", Data: []byte(`{}`)})
		is.NoErr(err)
		is.Equal(doc.ID, "given")
	})

	t.Run("posting a taken id should return an already exists error", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.Post(ctx, facade.Document{ID: "given", Data: []byte(`{}`)})
		is.True(errors.Is(err, facade.ErrAlreadyExists))
	})
}

func TestGet(t *testing.T) {
	coll := openCollection(t)

	t.Run("lists nothing on an empty collection", func(t *testing.T) {
		is := is.New(t)

		docs, err := coll.Get(ctx)
		is.NoErr(err)
		is.Equal(len(docs), 0)
	})

	t.Run("lists every document", func(t *testing.T) {
		is := is.New(t)

		for _, id := range []string{"a", "b", "c"} {
			_, err := coll.Post(ctx, facade.Document{ID: id, Data: []byte(`{}`)})
			is.NoErr(err)
		}

		docs, err := coll.Get(ctx)
		is.NoErr(err)
		is.Equal(len(docs), 3)
	})

	t.Run("getting a missing id should return a not found error", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.GetByID(ctx, "missing")
		is.True(errors.Is(err, facade.ErrNotFound))
	})
}

func TestPut(t *testing.T) {
	coll := openCollection(t)

	t.Run("overwrites a document", func(t *testing.T) {
		is := is.New(t)

		doc, err := coll.Post(ctx, facade.Document{ID: "a", Data: []byte(`{"v":1}`)})
		is.NoErr(err)

		doc.Data = []byte(`{"v":2}`)
		_, err = coll.Put(ctx, doc)
		is.NoErr(err)

		found, err := coll.GetByID(ctx, "a")
		is.NoErr(err)
		is.Equal(string(found.Data), `{"v":2}`)
	})

	t.Run("updating a missing document should return a not found error", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.Put(ctx, facade.Document{ID: "missing", Data: []byte(`{}`)})
		is.True(errors.Is(err, facade.ErrNotFound))
	})
}

func TestDelete(t *testing.T) {
	coll := openCollection(t)

	t.Run("removes a document", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.Post(ctx, facade.Document{ID: "a", Data: []byte(`{}`)})
		is.NoErr(err)

		is.NoErr(coll.Delete(ctx, "a"))
		_, err = coll.GetByID(ctx, "a")
		is.True(errors.Is(err, facade.ErrNotFound))
	})

	t.Run("deleting a missing document should return a not found error", func(t *testing.T) {
		is := is.New(t)

		err := coll.Delete(ctx, "missing")
		is.True(errors.Is(err, facade.ErrNotFound))
	})
}

func TestClose(t *testing.T) {
	is := is.New(t)
	coll := openCollection(t)

	is.NoErr(coll.Close())

	_, err := coll.Get(ctx)
	is.True(errors.Is(err, facade.ErrClosed))

	err = coll.Close()
	is.True(errors.Is(err, facade.ErrClosed))
}
