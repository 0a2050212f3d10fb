package schema

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout - time series column label layout, month/day/two digit year without padding
const DateLayout = "1/2/06"

var ErrBadDate = errors.New("unparseable date column")

// ParseDate - parse a date column label
func ParseDate(label string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(label))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrBadDate, label)
	}
	return t, nil
}

// FormatDate - render a date as a column label
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CanonicalDate normalises a date column label so that padded and
// unpadded renderings of one day produce the same column
func CanonicalDate(label string) (string, error) {
	t, err := ParseDate(label)
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}
