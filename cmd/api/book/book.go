package book

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bookshelf/cmd/api/facade"
)

var dates = facade.NewDateTranslator(nil)

// Book is a book tracked through the TO_READ -> CURRENTLY_READING -> READ shelves.
// Only the reading position and the rating can be changed freely; shelf and dates
// move through StartReading and FinishedReading.
type Book struct {
	id               string
	externalReviewID string
	isbn13           string
	title            string
	shortTitle       string
	authors          []string
	numPages         int
	link             string
	shelf            Shelf
	onPage           *int
	dateStarted      *time.Time
	dateFinished     *time.Time
	rating           *float64
	toReadOrder      *int
}

/* Builds a book from its persisted shape. The persisted book must carry an id. */
func New(p PersistedBook) (*Book, error) {
	if p.ID == "" {
		return nil, ErrResponseInvalidEntity
	}

	b := &Book{
		id:               p.ID,
		externalReviewID: p.ExternalReviewID,
		isbn13:           p.ISBN13,
		title:            p.Title,
		shortTitle:       p.ShortTitle,
		authors:          copyStrings(p.Authors),
		numPages:         p.NumPages,
		link:             p.Link,
		shelf:            p.Shelf,
		onPage:           copyPtr(p.OnPage),
		rating:           copyPtr(p.Rating),
		toReadOrder:      copyPtr(p.ToReadOrder),
	}
	if p.DateStarted != nil {
		d := dates.ToDate(*p.DateStarted)
		b.dateStarted = &d
	}
	if p.DateFinished != nil {
		d := dates.ToDate(*p.DateFinished)
		b.dateFinished = &d
	}
	return b, nil
}

func (b *Book) ToPersisted() PersistedBook {
	p := PersistedBook{
		ID:               b.id,
		ExternalReviewID: b.externalReviewID,
		ISBN13:           b.isbn13,
		Title:            b.title,
		ShortTitle:       b.shortTitle,
		Authors:          copyStrings(b.authors),
		NumPages:         b.numPages,
		Link:             b.link,
		Shelf:            b.shelf,
		OnPage:           copyPtr(b.onPage),
		Rating:           copyPtr(b.rating),
		ToReadOrder:      copyPtr(b.toReadOrder),
	}
	if b.dateStarted != nil {
		ts := dates.FromDate(*b.dateStarted)
		p.DateStarted = &ts
	}
	if b.dateFinished != nil {
		ts := dates.FromDate(*b.dateFinished)
		p.DateFinished = &ts
	}
	return p
}

func (b *Book) ID() string               { return b.id }
func (b *Book) ExternalReviewID() string { return b.externalReviewID }
func (b *Book) ISBN13() string           { return b.isbn13 }
func (b *Book) Title() string            { return b.title }
func (b *Book) ShortTitle() string       { return b.shortTitle }
func (b *Book) Authors() []string        { return copyStrings(b.authors) }
func (b *Book) NumPages() int            { return b.numPages }
func (b *Book) Link() string             { return b.link }
func (b *Book) Shelf() Shelf             { return b.shelf }
func (b *Book) OnPage() *int             { return copyPtr(b.onPage) }
func (b *Book) DateStarted() *time.Time  { return copyPtr(b.dateStarted) }
func (b *Book) DateFinished() *time.Time { return copyPtr(b.dateFinished) }
func (b *Book) Rating() *float64         { return copyPtr(b.rating) }
func (b *Book) ToReadOrder() *int        { return copyPtr(b.toReadOrder) }

// SetOnPage sets the current reading position. nil clears it.
func (b *Book) SetOnPage(page *int) {
	b.onPage = copyPtr(page)
}

// SetRating sets the rating. nil clears it.
func (b *Book) SetRating(rating *float64) {
	b.rating = copyPtr(rating)
}

func (b *Book) AuthorsString() string {
	return strings.Join(b.authors, ", ")
}

func (b *Book) YearStarted() int {
	return year(b.dateStarted)
}

func (b *Book) YearFinished() int {
	return year(b.dateFinished)
}

func (b *Book) DateStartedFormatted() string {
	return formatDate(b.dateStarted)
}

func (b *Book) DateFinishedFormatted() string {
	return formatDate(b.dateFinished)
}

func (b *Book) StartReading() error {
	if b.shelf != ShelfToRead {
		return fmt.Errorf("starting %q on shelf %s: %w", b.title, b.shelf, ErrResponseInvalidTransition)
	}
	now := dates.Now()
	page := 0
	b.shelf = ShelfCurrentlyReading
	b.dateStarted = &now
	b.onPage = &page
	b.toReadOrder = nil
	return nil
}

func (b *Book) FinishedReading() error {
	if b.shelf != ShelfCurrentlyReading {
		return fmt.Errorf("finishing %q on shelf %s: %w", b.title, b.shelf, ErrResponseInvalidTransition)
	}
	now := dates.Now()
	page := b.numPages
	b.shelf = ShelfRead
	b.dateFinished = &now
	b.onPage = &page
	b.toReadOrder = nil
	return nil
}

/*
Orders books by finish date, most recent first. A receiver without a finish date
always compares as -1, and only then is the other book's date looked at: an other
book without a finish date compares as 1. The result is not antisymmetric for books
without dates and callers sorting reading lists rely on that.
*/
func (b *Book) CompareByDateFinished(other *Book) int {
	return compareDesc(b.dateFinished, other.dateFinished)
}

// CompareByDateStarted follows the same rules as CompareByDateFinished on the start date.
func (b *Book) CompareByDateStarted(other *Book) int {
	return compareDesc(b.dateStarted, other.dateStarted)
}

func SortByDateFinished(books []*Book) {
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].CompareByDateFinished(books[j]) < 0
	})
}

func SortByDateStarted(books []*Book) {
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].CompareByDateStarted(books[j]) < 0
	})
}

func compareDesc(mine, theirs *time.Time) int {
	if mine == nil {
		return -1
	}
	if theirs == nil {
		return 1
	}
	return theirs.Compare(*mine)
}

func year(d *time.Time) int {
	if d == nil {
		return -1
	}
	return d.Year()
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d/%d", d.Day(), int(d.Month()), d.Year())
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
