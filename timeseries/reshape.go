package timeseries

import (
	"github.com/bitmark-inc/world-timeseries/schema"
	"github.com/bitmark-inc/world-timeseries/world"
)

// Reshape turns a world day into a single date column table of a metric.
// A country listed twice in one day keeps its larger count.
func Reshape(day world.Day, metric schema.Metric) *Table {
	t := NewTable(metric)
	t.Dates = []string{day.Date}

	index := make(map[string]*Row, len(day.Records))
	for _, rec := range day.Records {
		if row, ok := index[rec.Country]; ok {
			row.Counts[day.Date] = schema.MaxCount(row.Counts[day.Date], rec.Count(metric))
			if !row.Latitude.Valid || !row.Longitude.Valid {
				row.Latitude, row.Longitude = rec.Latitude, rec.Longitude
			}
			continue
		}

		row := NewRow(rec.Country)
		row.Latitude = rec.Latitude
		row.Longitude = rec.Longitude
		if c := rec.Count(metric); c.Valid {
			row.Counts[day.Date] = c
		}
		index[rec.Country] = row
		t.Rows = append(t.Rows, row)
	}
	return t
}
