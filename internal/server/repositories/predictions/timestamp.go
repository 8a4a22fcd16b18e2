package predictions

import (
	"fmt"
	"time"
)

// sqliteTimeFormats are the text forms SQLite stores for TIMESTAMP columns.
var sqliteTimeFormats = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// timestamp scans a created_at value into a UTC time.Time. pgx returns
// time.Time; SQLite may return the raw text, e.g. from a RETURNING clause.
type timestamp struct {
	dst *time.Time
}

func (ts timestamp) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*ts.dst = x.UTC()
		return nil
	case string:
		return ts.parse(x)
	case []byte:
		return ts.parse(string(x))
	case nil:
		*ts.dst = time.Time{}
		return nil
	}
	return fmt.Errorf("unsupported created_at type %T", v)
}

func (ts timestamp) parse(s string) error {
	for _, layout := range sqliteTimeFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*ts.dst = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse created_at %q", s)
}
