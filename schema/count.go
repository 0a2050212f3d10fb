package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Count - nullable case count
type Count struct {
	Value int64
	Valid bool
}

// NewCount - a valid count of n
func NewCount(n int64) Count {
	return Count{Value: n, Valid: true}
}

// ParseCount reads a count cell. An empty cell is a null count and
// integral float renderings such as "12.0" are accepted.
func ParseCount(s string) (Count, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Count{}, nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewCount(n), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Count{}, fmt.Errorf("invalid count %q: %w", s, err)
	}
	if math.IsNaN(f) {
		return Count{}, nil
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return Count{}, fmt.Errorf("invalid count %q: not an integer", s)
	}
	return NewCount(int64(f)), nil
}

// MaxCount - the larger of two counts, a null count is lower than any value
func MaxCount(a, b Count) Count {
	if !a.Valid {
		return b
	}
	if !b.Valid {
		return a
	}
	if b.Value > a.Value {
		return b
	}
	return a
}

// Add - sum of two counts, null only when both are null
func (c Count) Add(o Count) Count {
	if !o.Valid {
		return c
	}
	if !c.Valid {
		return o
	}
	return NewCount(c.Value + o.Value)
}

func (c Count) String() string {
	if !c.Valid {
		return ""
	}
	return strconv.FormatInt(c.Value, 10)
}

// Coord - nullable latitude or longitude
type Coord struct {
	Value float64
	Valid bool
}

// NewCoord - a valid coordinate of v
func NewCoord(v float64) Coord {
	return Coord{Value: v, Valid: true}
}

// ParseCoord reads a coordinate cell, an empty cell is null
func ParseCoord(s string) (Coord, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Coord{}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Coord{}, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	if math.IsNaN(f) {
		return Coord{}, nil
	}
	return NewCoord(f), nil
}

// OrZero - the coordinate value, 0 when null
func (c Coord) OrZero() float64 {
	if !c.Valid {
		return 0
	}
	return c.Value
}

// String renders the coordinate the way the published tables do: always
// with a decimal point, empty when null.
func (c Coord) String() string {
	if !c.Valid {
		return ""
	}
	s := strconv.FormatFloat(c.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
