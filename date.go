package cryptotax

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the format used to represent day-granular dates in ISO-8601 format.
const DateFormat = "2006-01-02"

// DatetimeFormat is the format used when a date carries a time of day.
const DatetimeFormat = "2006-01-02 15:04:05"

// readDateFormats are the accepted input formats, most specific first.
var readDateFormats = []string{
	time.RFC3339,
	DatetimeFormat,
	"2006-01-02 15:04",
	DateFormat,
	"2006-1-2", // permissive read format (allows single-digit month/day)
}

// Date represents a point in time with at least day-level granularity.
//
// Acquisitions made the same day at different times (e.g. "2017-06-01 10:30")
// keep their intra-day order, which matters for FIFO depletion.
type Date struct {
	t time.Time // canonical UTC representation, truncated to the second
}

// NewDate returns a Date for the given year, month, and day at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// NewDatetime returns a Date carrying a time of day.
func NewDatetime(year int, month time.Month, day int, hour, min int) Date {
	return Date{t: time.Date(year, month, day, hour, min, 0, 0, time.UTC)}
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().UTC().Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.t.Year() }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.t.Month() }

// Day returns the day of the month.
func (d Date) Day() int { return d.t.Day() }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Before reports whether the date d is before x.
func (d Date) Before(x Date) bool { return d.t.Before(x.t) }

// After reports whether the date d is after x.
func (d Date) After(x Date) bool { return d.t.After(x.t) }

// Equal reports whether d and x represent the same instant.
func (d Date) Equal(x Date) bool { return d.t.Equal(x.t) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(days int) Date { return Date{t: d.t.AddDate(0, 0, days)} }

// AddDate returns a new Date with the given number of years, months and days added.
func (d Date) AddDate(years, months, days int) Date {
	return Date{t: d.t.AddDate(years, months, days)}
}

// Format returns a textual representation of the date value formatted
// according to the layout defined by the argument.
//
//	See the documentation for the [time.Format].
func (d Date) Format(format string) string { return d.t.Format(format) }

// String formats the date in ISO-8601, appending the time of day only when
// it carries one.
func (d Date) String() string {
	if d.t.Hour() == 0 && d.t.Minute() == 0 && d.t.Second() == 0 {
		return d.t.Format(DateFormat)
	}
	return d.t.Format(DatetimeFormat)
}

// ParseDate parses a Date from a string. It is lenient and accepts day-only
// forms like "2025-7-1" as well as datetime forms like "2017-06-01 10:30".
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	for _, format := range readDateFormats {
		if on, err := time.Parse(format, str); err == nil {
			return Date{t: on.UTC()}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q", str, DateFormat)
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := ParseDate(str)
	if err != nil {
		return fmt.Errorf("invalid date %q in data file, want format %q: %w", str, DateFormat, err)
	}
	*d = on
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
