package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bookshelf/cmd/api/book"
	"github.com/bookshelf/cmd/api/facade"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var dates = facade.NewDateTranslator(nil)

type BookshelfAPI interface {
	GetAll(ctx context.Context) ([]*book.Book, error)
	GetByID(ctx context.Context, id string) (*book.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*book.Book, error)
	Create(ctx context.Context, p book.PersistedBook) (*book.Book, error)
	Update(ctx context.Context, b *book.Book) (*book.Book, error)
	Delete(ctx context.Context, b *book.Book) error
}

type Notifier interface {
	BookFinished(ctx context.Context, title string, year int) error
}

type BookHandler struct {
	bookshelf BookshelfAPI
	notifier  Notifier
}

// NewBookHandler builds the handler. notifier may be nil.
func NewBookHandler(bookshelf BookshelfAPI, notifier Notifier) *BookHandler {
	return &BookHandler{bookshelf: bookshelf, notifier: notifier}
}

/* Addresses a call to "/books" according to the requested action.  */
func (h *BookHandler) books(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listBooks(w, r)
	case http.MethodPost:
		h.createBook(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

/*
Addresses a call under "/books/": "attributes", "isbn/{isbn}", "{id}",
"{id}/start" and "{id}/finish".
*/
func (h *BookHandler) bookRoutes(w http.ResponseWriter, r *http.Request) {
	rest, _ := strings.CutPrefix(r.URL.Path, "/books/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] == "attributes":
		onlyMethod(w, r, http.MethodGet, h.attributes)
	case len(parts) == 2 && parts[0] == "isbn":
		onlyMethod(w, r, http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
			h.getBookByISBN(w, r, parts[1])
		})
	case len(parts) == 1:
		h.bookById(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "start":
		onlyMethod(w, r, http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
			h.startReading(w, r, parts[0])
		})
	case len(parts) == 2 && parts[1] == "finish":
		onlyMethod(w, r, http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
			h.finishedReading(w, r, parts[0])
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

/* Addresses a call to "/books/(expected id here)" according to the requested action.  */
func (h *BookHandler) bookById(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseIdInvalidFormat)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.getBookById(w, r, id)
	case http.MethodPut:
		h.updateBook(w, r, id)
	case http.MethodDelete:
		h.deleteBook(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func onlyMethod(w http.ResponseWriter, r *http.Request, method string, next http.HandlerFunc) {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	next(w, r)
}

/* Returns the books on the shelf, optionally filtered by shelf and sorted by a reading date. */
func (h *BookHandler) listBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	shelf := book.Shelf(query.Get("shelf"))
	if shelf != "" && !shelf.Valid() {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseInvalidShelf)
		return
	}

	sortBy := query.Get("sort")
	switch sortBy {
	case "", "finished", "started":
	default:
		responseJSON(w, http.StatusBadRequest, book.ErrResponseQuerySortInvalid)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	all, err := h.bookshelf.GetAll(ctx)
	if err != nil {
		responseError(w, err)
		return
	}

	books := make([]*book.Book, 0, len(all))
	for _, b := range all {
		if shelf != "" && b.Shelf() != shelf {
			continue
		}
		books = append(books, b)
	}

	switch sortBy {
	case "finished":
		book.SortByDateFinished(books)
	case "started":
		book.SortByDateStarted(books)
	}

	results := make([]BookResponse, 0, len(books))
	for _, b := range books {
		results = append(results, bookToResponse(b))
	}
	responseJSON(w, http.StatusOK, results)
}

type BookEntry struct {
	ExternalReviewID string     `json:"goodreads_review_id"`
	ISBN13           string     `json:"isbn13"`
	Title            string     `json:"title"`
	ShortTitle       string     `json:"shortTitle"`
	Authors          []string   `json:"authors"`
	NumPages         int        `json:"numPages"`
	Link             string     `json:"link"`
	Shelf            book.Shelf `json:"shelf"`
	OnPage           *int       `json:"onPage"`
	DateStarted      *time.Time `json:"dateStarted"`
	DateFinished     *time.Time `json:"dateFinished"`
	Rating           *float64   `json:"rating"`
	ToReadOrder      *int       `json:"toReadOrder"`
}

/* Validates the entry, then stores the entry as a new book. */
func (h *BookHandler) createBook(w http.ResponseWriter, r *http.Request) {
	var bookEntry BookEntry
	err := json.NewDecoder(r.Body).Decode(&bookEntry)
	if err != nil {
		slog.Info("decoding book entry", "err", err)
		errR := book.ErrResponse{
			Code:    book.ErrResponseEntryInvalidJSON.Code,
			Message: book.ErrResponseEntryInvalidJSON.Message + err.Error(),
		}
		responseJSON(w, http.StatusBadRequest, errR)
		return
	}

	if bookEntry.Shelf == "" {
		bookEntry.Shelf = book.ShelfToRead
	}
	if err := filledFields(bookEntry); err != nil {
		responseJSON(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	storedBook, err := h.bookshelf.Create(ctx, entryToPersisted(bookEntry))
	if err != nil {
		responseError(w, err)
		return
	}

	slog.Info("book created", "id", storedBook.ID(), "isbn13", storedBook.ISBN13())
	responseJSON(w, http.StatusCreated, bookToResponse(storedBook))
}

/* Verifies the fields a new book cannot do without. */
func filledFields(bookEntry BookEntry) error {
	if strings.TrimSpace(bookEntry.ISBN13) == "" || strings.TrimSpace(bookEntry.Title) == "" {
		return book.ErrResponseBookEntryBlankFields
	}
	if !bookEntry.Shelf.Valid() {
		return book.ErrResponseInvalidShelf
	}
	if bookEntry.OnPage != nil && (*bookEntry.OnPage < 0 || *bookEntry.OnPage > bookEntry.NumPages) {
		return book.ErrResponseOnPageInvalid
	}
	return nil
}

func entryToPersisted(e BookEntry) book.PersistedBook {
	p := book.PersistedBook{
		ExternalReviewID: e.ExternalReviewID,
		ISBN13:           e.ISBN13,
		Title:            e.Title,
		ShortTitle:       e.ShortTitle,
		Authors:          e.Authors,
		NumPages:         e.NumPages,
		Link:             e.Link,
		Shelf:            e.Shelf,
		OnPage:           e.OnPage,
		Rating:           e.Rating,
		ToReadOrder:      e.ToReadOrder,
	}
	if e.DateStarted != nil {
		ts := dates.FromDate(*e.DateStarted)
		p.DateStarted = &ts
	}
	if e.DateFinished != nil {
		ts := dates.FromDate(*e.DateFinished)
		p.DateFinished = &ts
	}
	return p
}

type ProgressEntry struct {
	OnPage *int     `json:"onPage"`
	Rating *float64 `json:"rating"`
}

/* Sets the reading position and the rating of a book. Absent values are cleared. */
func (h *BookHandler) updateBook(w http.ResponseWriter, r *http.Request, id string) {
	var entry ProgressEntry
	err := json.NewDecoder(r.Body).Decode(&entry)
	if err != nil {
		slog.Info("decoding progress entry", "err", err)
		errR := book.ErrResponse{
			Code:    book.ErrResponseEntryInvalidJSON.Code,
			Message: book.ErrResponseEntryInvalidJSON.Message + err.Error(),
		}
		responseJSON(w, http.StatusBadRequest, errR)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	b, err := h.bookshelf.GetByID(ctx, id)
	if err != nil {
		responseError(w, err)
		return
	}

	if entry.OnPage != nil && (*entry.OnPage < 0 || *entry.OnPage > b.NumPages()) {
		responseJSON(w, http.StatusBadRequest, book.ErrResponseOnPageInvalid)
		return
	}
	b.SetOnPage(entry.OnPage)
	b.SetRating(entry.Rating)

	updatedBook, err := h.bookshelf.Update(ctx, b)
	if err != nil {
		responseError(w, err)
		return
	}
	responseJSON(w, http.StatusOK, bookToResponse(updatedBook))
}

/* Returns the book with that specific ID. */
func (h *BookHandler) getBookById(w http.ResponseWriter, r *http.Request, id string) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	returnedBook, err := h.bookshelf.GetByID(ctx, id)
	if err != nil {
		responseError(w, err)
		return
	}
	responseJSON(w, http.StatusOK, bookToResponse(returnedBook))
}

func (h *BookHandler) getBookByISBN(w http.ResponseWriter, r *http.Request, isbn string) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	returnedBook, err := h.bookshelf.GetByISBN(ctx, isbn)
	if err != nil {
		responseError(w, err)
		return
	}
	responseJSON(w, http.StatusOK, bookToResponse(returnedBook))
}

func (h *BookHandler) deleteBook(w http.ResponseWriter, r *http.Request, id string) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	b, err := h.bookshelf.GetByID(ctx, id)
	if err != nil {
		responseError(w, err)
		return
	}
	if err := h.bookshelf.Delete(ctx, b); err != nil {
		responseError(w, err)
		return
	}
	slog.Info("book deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookHandler) startReading(w http.ResponseWriter, r *http.Request, id string) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	b, err := h.bookshelf.GetByID(ctx, id)
	if err != nil {
		responseError(w, err)
		return
	}
	if err := b.StartReading(); err != nil {
		responseError(w, err)
		return
	}
	updatedBook, err := h.bookshelf.Update(ctx, b)
	if err != nil {
		responseError(w, err)
		return
	}
	responseJSON(w, http.StatusOK, bookToResponse(updatedBook))
}

/* Moves the book to the read shelf, then announces it. A failed announcement is only logged. */
func (h *BookHandler) finishedReading(w http.ResponseWriter, r *http.Request, id string) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	b, err := h.bookshelf.GetByID(ctx, id)
	if err != nil {
		responseError(w, err)
		return
	}
	if err := b.FinishedReading(); err != nil {
		responseError(w, err)
		return
	}
	updatedBook, err := h.bookshelf.Update(ctx, b)
	if err != nil {
		responseError(w, err)
		return
	}
	responseJSON(w, http.StatusOK, bookToResponse(updatedBook))

	if h.notifier == nil {
		return
	}
	nctx, ncancel := context.WithTimeout(context.Background(), NotificationTimeout)
	defer ncancel()
	if err := h.notifier.BookFinished(nctx, updatedBook.Title(), updatedBook.YearFinished()); err != nil {
		slog.Warn("notifying finished book", "id", id, "err", err)
	}
}

func (h *BookHandler) attributes(w http.ResponseWriter, r *http.Request) {
	responseJSON(w, http.StatusOK, book.Attributes())
}

type BookResponse struct {
	ID                    string     `json:"id"`
	ExternalReviewID      string     `json:"goodreads_review_id"`
	ISBN13                string     `json:"isbn13"`
	Title                 string     `json:"title"`
	ShortTitle            string     `json:"shortTitle"`
	Authors               []string   `json:"authors"`
	AuthorsString         string     `json:"authorsString"`
	NumPages              int        `json:"numPages"`
	Link                  string     `json:"link"`
	Shelf                 book.Shelf `json:"shelf"`
	OnPage                *int       `json:"onPage"`
	DateStarted           *time.Time `json:"dateStarted"`
	DateFinished          *time.Time `json:"dateFinished"`
	DateStartedFormatted  string     `json:"dateStartedFormatted"`
	DateFinishedFormatted string     `json:"dateFinishedFormatted"`
	YearStarted           int        `json:"yearStarted"`
	YearFinished          int        `json:"yearFinished"`
	Rating                *float64   `json:"rating"`
	ToReadOrder           *int       `json:"toReadOrder"`
}

/*Copy the fields of a book object to an http layer struct with json tags*/
func bookToResponse(b *book.Book) BookResponse {
	return BookResponse{
		ID:                    b.ID(),
		ExternalReviewID:      b.ExternalReviewID(),
		ISBN13:                b.ISBN13(),
		Title:                 b.Title(),
		ShortTitle:            b.ShortTitle(),
		Authors:               b.Authors(),
		AuthorsString:         b.AuthorsString(),
		NumPages:              b.NumPages(),
		Link:                  b.Link(),
		Shelf:                 b.Shelf(),
		OnPage:                b.OnPage(),
		DateStarted:           b.DateStarted(),
		DateFinished:          b.DateFinished(),
		DateStartedFormatted:  b.DateStartedFormatted(),
		DateFinishedFormatted: b.DateFinishedFormatted(),
		YearStarted:           b.YearStarted(),
		YearFinished:          b.YearFinished(),
		Rating:                b.Rating(),
		ToReadOrder:           b.ToReadOrder(),
	}
}

/* Maps an error of the bookshelf to its status code and body. */
func responseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		slog.Warn("request timed out", "err", err)
		responseJSON(w, http.StatusServiceUnavailable, book.ErrResponseRequestTimeout)
	case errors.Is(err, book.ErrResponseBookNotFound):
		responseJSON(w, http.StatusNotFound, book.ErrResponseBookNotFound)
	case errors.Is(err, book.ErrResponseDuplicateISBN):
		responseJSON(w, http.StatusConflict, book.ErrResponseDuplicateISBN)
	case errors.Is(err, book.ErrResponseInvalidTransition):
		responseJSON(w, http.StatusConflict, book.ErrResponseInvalidTransition)
	default:
		slog.Error("bookshelf failure", "err", err)
		responseJSON(w, http.StatusInternalServerError, book.ErrResponseStorage)
	}
}

/*Writes a JSON response into a http.ResponseWriter. */
func responseJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("encoding response", "err", err)
	}
}
