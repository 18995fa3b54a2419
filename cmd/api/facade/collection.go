package facade

import (
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrNotFound          = errors.New("document not found")
	ErrClosed            = errors.New("collection is closed")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrAlreadyExists     = errors.New("document already exists")
)

// Document is a single stored record. ID is the store key and is authoritative
// over any id carried inside Data.
type Document struct {
	ID   string
	Data []byte
}

// Collection is a handle on one named set of documents.
type Collection interface {
	Get(ctx context.Context) ([]Document, error)
	GetByID(ctx context.Context, id string) (Document, error)
	// Post inserts doc, assigning a new id when doc.ID is empty. It fails with
	// ErrAlreadyExists when doc.ID is taken.
	Post(ctx context.Context, doc Document) (Document, error)
	// Put overwrites the document with the same id. It fails with ErrNotFound when there is none.
	Put(ctx context.Context, doc Document) (Document, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

type Opener interface {
	Open(ctx context.Context, name string) (Collection, error)
}

/* Encodes v as the data of a document keyed by id. */
func Encode(id string, v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id, Data: data}, nil
}

func Decode(doc Document, v any) error {
	return json.Unmarshal(doc.Data, v)
}
