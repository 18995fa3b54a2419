package book

import (
	"reflect"
	"strings"

	"github.com/bookshelf/cmd/api/facade"
)

// PersistedBook is the shape a book is stored in. Dates use the store's timestamp encoding.
type PersistedBook struct {
	ID               string            `json:"id"`
	ExternalReviewID string            `json:"goodreads_review_id"`
	ISBN13           string            `json:"isbn13"`
	Title            string            `json:"title"`
	ShortTitle       string            `json:"shortTitle"`
	Authors          []string          `json:"authors"`
	NumPages         int               `json:"numPages"`
	Link             string            `json:"link"`
	Shelf            Shelf             `json:"shelf"`
	OnPage           *int              `json:"onPage"`
	DateStarted      *facade.Timestamp `json:"dateStarted"`
	DateFinished     *facade.Timestamp `json:"dateFinished"`
	Rating           *float64          `json:"rating"`
	ToReadOrder      *int              `json:"toReadOrder"`
}

var attributes = persistedFieldNames()

/* Returns the persisted field names of a book in declaration order. */
func Attributes() []string {
	names := make([]string, len(attributes))
	copy(names, attributes)
	return names
}

func persistedFieldNames() []string {
	t := reflect.TypeOf(PersistedBook{})
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		names = append(names, name)
	}
	return names
}

func toDocument(b *Book) (facade.Document, error) {
	p := b.ToPersisted()
	return facade.Encode(p.ID, p)
}

func fromDocument(doc facade.Document) (*Book, error) {
	var p PersistedBook
	if err := facade.Decode(doc, &p); err != nil {
		return nil, err
	}
	p.ID = doc.ID
	return New(p)
}
