package dateutils

import (
	"errors"
	"time"
)

var ErrUnsupportedDateFormat = errors.New("unsupported date format")

// CMS timestamps are RFC 3339; date-only fields come as YYYY-MM-DD.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	time.DateOnly,
}

func ToString(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func ParseString(str string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnsupportedDateFormat
}

func Pretify(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// PretifyString is Pretify for raw CMS values. Unparseable input yields "".
func PretifyString(str string) string {
	t, err := ParseString(str)
	if err != nil {
		return ""
	}
	return Pretify(t)
}
