package book

import (
	"time"

	"github.com/bookshelf/cmd/api/facade"
)

/* Replaces the clock used by the reading transitions and returns a func restoring it. */
func SetClock(clock func() time.Time) func() {
	prev := dates
	dates = facade.NewDateTranslator(clock)
	return func() { dates = prev }
}
