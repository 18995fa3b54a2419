package book

import "fmt"

type ErrResponse struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

func (e ErrResponse) Error() string {
	return e.Message
}

var ErrResponseInvalidEntity = ErrResponse{200, "book has no id."}
var ErrResponseInvalidTransition = ErrResponse{201, "book is not on the right shelf for this action."}
var ErrResponseBookNotFound = ErrResponse{202, "book not found"}
var ErrResponseDuplicateISBN = ErrResponse{203, "there is already a book with this isbn13 on the shelf."}
var ErrResponseBookshelfNotInitialized = ErrResponse{204, "bookshelf is not initialized."}
var ErrResponseStorage = ErrResponse{205, "storage failure."}
var ErrResponseEntryInvalidJSON = ErrResponse{206, "invalid json request."}
var ErrResponseInvalidShelf = ErrResponse{207, "shelf must be TO_READ, CURRENTLY_READING or READ."}
var ErrResponseQuerySortInvalid = ErrResponse{208, "query parameter 'sort' must be: finished or started."}
var ErrResponseOnPageInvalid = ErrResponse{209, "onPage must be between 0 and the number of pages of the book."}
var ErrResponseRequestTimeout = ErrResponse{210, "context deadline exceeded"}
var ErrResponseBookEntryBlankFields = ErrResponse{211, "the fields isbn13 and title must be filled correctly."}
var ErrResponseIdInvalidFormat = ErrResponse{212, "the endpoint is not a valid format ID. Must be /books/{id}"}

// StorageError is an opaque failure reported by the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s on store: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
