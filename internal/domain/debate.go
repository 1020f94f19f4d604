package domain

import "time"

const (
	// DateLayout is the ISO-8601 calendar date that keys every artifact:
	// request URLs, corpus filenames, and entries in the availability index.
	DateLayout = "2006-01-02"

	// RecordSuffix is the fixed multi-lingual variant suffix used by the
	// upstream API; local filenames mirror it so downloaded and uploaded
	// corpora stay interchangeable.
	RecordSuffix = "_mul@.xml"
)

// DebateRecord is one sitting day's debate document exactly as published
// upstream. The body is persisted byte-for-byte.
type DebateRecord struct {
	Date time.Time
	Body []byte
}

// Filename returns the canonical corpus filename for the record's date.
func (r DebateRecord) Filename() string {
	return Filename(r.Date)
}

// Filename builds "<date>_mul@.xml" for a calendar day.
func Filename(day time.Time) string {
	return day.Format(DateLayout) + RecordSuffix
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days expands the range into one entry per calendar day, ascending.
// A range whose end precedes its start is empty.
func (r DateRange) Days() []time.Time {
	start := midnightUTC(r.Start)
	end := midnightUTC(r.End)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// HarvestSummary counts per-day outcomes of a fetch run.
type HarvestSummary struct {
	Saved   int
	Missing int
	Failed  int
}
