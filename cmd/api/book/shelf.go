package book

type Shelf string

const (
	ShelfToRead           Shelf = "TO_READ"
	ShelfCurrentlyReading Shelf = "CURRENTLY_READING"
	ShelfRead             Shelf = "READ"
)

func (s Shelf) Valid() bool {
	switch s {
	case ShelfToRead, ShelfCurrentlyReading, ShelfRead:
		return true
	default:
		return false
	}
}
