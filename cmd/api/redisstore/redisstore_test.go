package redisstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/bookshelf/cmd/api/facade"
	"github.com/bookshelf/cmd/api/redisstore"
	"github.com/matryer/is"
)

var ctx context.Context = context.Background()

func openCollection(t *testing.T) (facade.Collection, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := redisstore.NewStore(redisstore.Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	coll, err := store.Open(ctx, "books_test")
	if err != nil {
		t.Fatalf("opening collection: %v", err)
	}
	t.Cleanup(func() { _ = coll.Close() })
	return coll, mr
}

func TestNewStore(t *testing.T) {
	is := is.New(t)

	_, err := redisstore.NewStore(redisstore.Config{Addr: "  "})
	is.True(err != nil)
}

func TestOpen(t *testing.T) {
	is := is.New(t)

	store, err := redisstore.NewStore(redisstore.Config{Addr: "127.0.0.1:1"})
	is.NoErr(err)

	_, err = store.Open(ctx, "books_test")
	is.True(err != nil)
}

func TestPostAndGet(t *testing.T) {
	coll, mr := openCollection(t)

	t.Run("stores a document in the collection hash", func(t *testing.T) {
		is := is.New(t)

		doc, err := coll.Post(ctx, facade.Document{Data: []byte(`{"isbn13":"1"}`)})
		is.NoErr(err)
		is.True(doc.ID != "")
		is.Equal(mr.HGet("bookshelf:books_test", doc.ID), `{"isbn13":"1"}`)

		found, err := coll.GetByID(ctx, doc.ID)
		is.NoErr(err)
		is.Equal(string(found.Data), `{"isbn13":"1"}`)
	})

	t.Run("posting a taken id should return an already exists error", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.Post(ctx, facade.Document{ID: "same", Data: []byte(`{}`)})
		is.NoErr(err)
		_, err = coll.Post(ctx, facade.Document{ID: "same", Data: []byte(`{}`)})
		is.True(errors.Is(err, facade.ErrAlreadyExists))
	})

	t.Run("lists documents ordered by id", func(t *testing.T) {
		is := is.New(t)

		docs, err := coll.Get(ctx)
		is.NoErr(err)
		is.Equal(len(docs), 2)
		is.True(docs[0].ID < docs[1].ID)
	})

	t.Run("getting a missing id should return a not found error", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.GetByID(ctx, "missing")
		is.True(errors.Is(err, facade.ErrNotFound))
	})
}

func TestPut(t *testing.T) {
	coll, mr := openCollection(t)

	t.Run("overwrites an existing document", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.Post(ctx, facade.Document{ID: "a", Data: []byte(`{"v":1}`)})
		is.NoErr(err)

		_, err = coll.Put(ctx, facade.Document{ID: "a", Data: []byte(`{"v":2}`)})
		is.NoErr(err)
		is.Equal(mr.HGet("bookshelf:books_test", "a"), `{"v":2}`)
	})

	t.Run("updating a missing document should return a not found error and not write", func(t *testing.T) {
		is := is.New(t)

		_, err := coll.Put(ctx, facade.Document{ID: "missing", Data: []byte(`{}`)})
		is.True(errors.Is(err, facade.ErrNotFound))
		is.Equal(mr.HGet("bookshelf:books_test", "missing"), "")
	})
}

func TestDelete(t *testing.T) {
	coll, _ := openCollection(t)

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

		err := coll.Delete(ctx, "a")
		is.True(errors.Is(err, facade.ErrNotFound))
	})
}

func TestClose(t *testing.T) {
	is := is.New(t)
	mr := miniredis.RunT(t)
	store, err := redisstore.NewStore(redisstore.Config{Addr: mr.Addr()})
	is.NoErr(err)
	coll, err := store.Open(ctx, "books_test")
	is.NoErr(err)

	is.NoErr(coll.Close())

	_, err = coll.Get(ctx)
	is.True(errors.Is(err, facade.ErrClosed))
}
