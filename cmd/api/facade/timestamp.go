package facade

import "time"

// Timestamp is the store-native date encoding. It keeps microsecond precision,
// anything finer is dropped when a date is encoded.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanoseconds"`
}

// DateTranslator converts between native dates and store timestamps.
type DateTranslator struct {
	clock func() time.Time
}

// NewDateTranslator returns a translator reading the current time from clock.
// A nil clock means time.Now.
func NewDateTranslator(clock func() time.Time) DateTranslator {
	if clock == nil {
		clock = time.Now
	}
	return DateTranslator{clock: clock}
}

func (t DateTranslator) FromDate(d time.Time) Timestamp {
	d = d.Truncate(time.Microsecond)
	return Timestamp{
		Seconds: d.Unix(),
		Nanos:   int32(d.Nanosecond()),
	}
}

func (t DateTranslator) ToDate(ts Timestamp) time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanos))
}

/* Now returns the current time at the store's precision, so a date taken now survives a round trip unchanged. */
func (t DateTranslator) Now() time.Time {
	now := t.clock()
	return t.ToDate(t.FromDate(now))
}
