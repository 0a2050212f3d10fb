package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	c, err := ParseCount("12")
	assert.NoError(t, err)
	assert.Equal(t, NewCount(12), c)

	c, err = ParseCount("12.0")
	assert.NoError(t, err)
	assert.Equal(t, NewCount(12), c)

	c, err = ParseCount(" ")
	assert.NoError(t, err)
	assert.False(t, c.Valid)

	_, err = ParseCount("1.5")
	assert.Error(t, err)

	_, err = ParseCount("abc")
	assert.Error(t, err)
}

func TestMaxCount(t *testing.T) {
	assert.Equal(t, NewCount(10), MaxCount(NewCount(8), NewCount(10)))
	assert.Equal(t, NewCount(10), MaxCount(NewCount(10), NewCount(8)))
	assert.Equal(t, NewCount(0), MaxCount(Count{}, NewCount(0)))
	assert.Equal(t, NewCount(3), MaxCount(NewCount(3), Count{}))
	assert.False(t, MaxCount(Count{}, Count{}).Valid)
}

func TestCountAdd(t *testing.T) {
	assert.Equal(t, NewCount(5), NewCount(2).Add(NewCount(3)))
	assert.Equal(t, NewCount(2), NewCount(2).Add(Count{}))
	assert.Equal(t, NewCount(3), Count{}.Add(NewCount(3)))
	assert.False(t, Count{}.Add(Count{}).Valid)
}

func TestCoordString(t *testing.T) {
	assert.Equal(t, "0.0", NewCoord(0).String())
	assert.Equal(t, "46.2276", NewCoord(46.2276).String())
	assert.Equal(t, "-3.0", NewCoord(-3).String())
	assert.Equal(t, "", Coord{}.String())
	assert.Equal(t, float64(0), Coord{}.OrZero())
}

func TestCanonicalDate(t *testing.T) {
	d, err := CanonicalDate("03/04/20")
	assert.NoError(t, err)
	assert.Equal(t, "3/4/20", d)

	d, err = CanonicalDate("12/31/20")
	assert.NoError(t, err)
	assert.Equal(t, "12/31/20", d)

	_, err = CanonicalDate("2020-03-04")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadDate))
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("deaths")
	assert.NoError(t, err)
	assert.Equal(t, MetricDeaths, m)
	assert.Equal(t, "cases", MetricConfirmed.WorldColumn())

	_, err = ParseMetric("active")
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}
