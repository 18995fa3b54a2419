package facade

import (
	"context"
	"fmt"
)

// Wrapper is a typed view over a Collection. Documents are turned into T with
// toLocal on the way out and back into documents with toDocument on the way in.
type Wrapper[T any] struct {
	coll       Collection
	toLocal    func(Document) (T, error)
	toDocument func(T) (Document, error)
}

func NewWrapper[T any](coll Collection, toLocal func(Document) (T, error), toDocument func(T) (Document, error)) *Wrapper[T] {
	return &Wrapper[T]{
		coll:       coll,
		toLocal:    toLocal,
		toDocument: toDocument,
	}
}

func (w *Wrapper[T]) Get(ctx context.Context) ([]T, error) {
	docs, err := w.coll.Get(ctx)
	if err != nil {
		return nil, err
	}
	locals := make([]T, 0, len(docs))
	for _, doc := range docs {
		local, err := w.toLocal(doc)
		if err != nil {
			return nil, fmt.Errorf("mapping document %s: %w", doc.ID, err)
		}
		locals = append(locals, local)
	}
	return locals, nil
}

func (w *Wrapper[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	doc, err := w.coll.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	return w.toLocal(doc)
}

/* Inserts a raw document, which may lack an id, and returns it as T once stored. */
func (w *Wrapper[T]) Post(ctx context.Context, doc Document) (T, error) {
	var zero T
	stored, err := w.coll.Post(ctx, doc)
	if err != nil {
		return zero, err
	}
	return w.toLocal(stored)
}

func (w *Wrapper[T]) Put(ctx context.Context, local T) (T, error) {
	var zero T
	doc, err := w.toDocument(local)
	if err != nil {
		return zero, err
	}
	stored, err := w.coll.Put(ctx, doc)
	if err != nil {
		return zero, err
	}
	return w.toLocal(stored)
}

func (w *Wrapper[T]) Delete(ctx context.Context, local T) error {
	doc, err := w.toDocument(local)
	if err != nil {
		return err
	}
	return w.coll.Delete(ctx, doc.ID)
}

func (w *Wrapper[T]) Close() error {
	return w.coll.Close()
}
