package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookshelf/cmd/api/facade"
)

const DefaultCollection = "books_prod"

// Bookshelf stores books in one collection of a document store.
//
// Create checks isbn13 uniqueness with a full read followed by a write and no
// transaction, so two concurrent creates of the same isbn13 can both succeed.
type Bookshelf struct {
	opener     facade.Opener
	collection string
	f3         *facade.Wrapper[*Book]
}

func NewBookshelf(opener facade.Opener, collection string) *Bookshelf {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Bookshelf{opener: opener, collection: collection}
}

/* Opens the collection. It must succeed before any other call and returns the bookshelf for chaining. */
func (s *Bookshelf) Init(ctx context.Context) (*Bookshelf, error) {
	coll, err := s.opener.Open(ctx, s.collection)
	if err != nil {
		return nil, &StorageError{Op: "opening collection " + s.collection, Err: err}
	}
	s.f3 = facade.NewWrapper(coll, fromDocument, toDocument)
	return s, nil
}

func (s *Bookshelf) GetAll(ctx context.Context) ([]*Book, error) {
	if s.f3 == nil {
		return nil, ErrResponseBookshelfNotInitialized
	}
	books, err := s.f3.Get(ctx)
	if err != nil {
		return nil, storeErr("listing books", err)
	}
	return books, nil
}

func (s *Bookshelf) GetByID(ctx context.Context, id string) (*Book, error) {
	if s.f3 == nil {
		return nil, ErrResponseBookshelfNotInitialized
	}
	b, err := s.f3.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("searching by ID", err)
	}
	return b, nil
}

/* Scans the whole shelf for the first book with the given isbn13. */
func (s *Bookshelf) GetByISBN(ctx context.Context, isbn string) (*Book, error) {
	books, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range books {
		if b.isbn13 == isbn {
			return b, nil
		}
	}
	return nil, fmt.Errorf("searching by ISBN %s: %w", isbn, ErrResponseBookNotFound)
}

/* Stores a new book unless one with the same isbn13 is already on the shelf. The store assigns the id. */
func (s *Bookshelf) Create(ctx context.Context, p PersistedBook) (*Book, error) {
	books, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range books {
		if b.isbn13 == p.ISBN13 {
			return nil, fmt.Errorf("creating book: isbn13 %s: %w", p.ISBN13, ErrResponseDuplicateISBN)
		}
	}

	doc, err := facade.Encode(p.ID, p)
	if err != nil {
		return nil, fmt.Errorf("creating book: %w", err)
	}
	created, err := s.f3.Post(ctx, doc)
	if err != nil {
		return nil, storeErr("creating book", err)
	}
	return created, nil
}

func (s *Bookshelf) Update(ctx context.Context, b *Book) (*Book, error) {
	if s.f3 == nil {
		return nil, ErrResponseBookshelfNotInitialized
	}
	updated, err := s.f3.Put(ctx, b)
	if err != nil {
		return nil, storeErr("updating book", err)
	}
	return updated, nil
}

func (s *Bookshelf) Delete(ctx context.Context, b *Book) error {
	if s.f3 == nil {
		return ErrResponseBookshelfNotInitialized
	}
	if err := s.f3.Delete(ctx, b); err != nil {
		return storeErr("deleting book", err)
	}
	return nil
}

func (s *Bookshelf) Close() error {
	if s.f3 == nil {
		return ErrResponseBookshelfNotInitialized
	}
	if err := s.f3.Close(); err != nil {
		return &StorageError{Op: "closing collection " + s.collection, Err: err}
	}
	return nil
}

func storeErr(op string, err error) error {
	if errors.Is(err, facade.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrResponseBookNotFound)
	}
	if errors.Is(err, ErrResponseInvalidEntity) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &StorageError{Op: op, Err: err}
}
