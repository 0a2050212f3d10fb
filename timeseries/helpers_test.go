package timeseries

import (
	"github.com/bitmark-inc/world-timeseries/schema"
)

func row(country string, lat, long float64, counts map[string]int64) *Row {
	r := NewRow(country)
	r.Latitude = schema.NewCoord(lat)
	r.Longitude = schema.NewCoord(long)
	for d, n := range counts {
		r.Counts[d] = schema.NewCount(n)
	}
	return r
}

func table(metric schema.Metric, dates []string, rows ...*Row) *Table {
	return &Table{Metric: metric, Dates: dates, Rows: rows}
}
