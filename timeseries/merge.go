package timeseries

import (
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/world-timeseries/schema"
)

// Merge outer joins tables on country, base first. A date present in
// several tables keeps the largest count, a null count being lower than
// any value. Coordinates always come from the last joined table: a row
// that table does not carry, or carries without coordinates, is left with
// null coordinates. Rows come out ordered by country.
func Merge(base *Table, others ...*Table) *Table {
	m := base.Clone()
	index := make(map[string]*Row, len(m.Rows))
	for _, r := range m.Rows {
		index[r.Country] = r
	}

	for _, o := range others {
		for _, d := range o.Dates {
			m.AddDate(d)
		}

		for _, row := range m.Rows {
			row.Latitude, row.Longitude = schema.Coord{}, schema.Coord{}
		}

		for _, r := range o.Rows {
			row, ok := index[r.Country]
			if !ok {
				row = NewRow(r.Country)
				index[r.Country] = row
				m.Rows = append(m.Rows, row)
			}

			row.Latitude, row.Longitude = r.Latitude, r.Longitude

			for _, d := range o.Dates {
				c := schema.MaxCount(row.Count(d), r.Count(d))
				if c.Valid {
					row.Counts[d] = c
				}
			}
		}
	}

	sort.SliceStable(m.Rows, func(i, j int) bool {
		return m.Rows[i].Country < m.Rows[j].Country
	})

	log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"metric":    m.Metric,
		"tables":    len(others) + 1,
		"countries": len(m.Rows),
		"dates":     len(m.Dates),
	}).Debug("merged tables")
	return m
}

// Reconcile orders the date columns chronologically and replaces missing
// coordinates with zero
func Reconcile(t *Table) (*Table, error) {
	r := t.Clone()

	parsed := make(map[string]int64, len(r.Dates))
	for _, d := range r.Dates {
		ts, err := schema.ParseDate(d)
		if err != nil {
			return nil, err
		}
		parsed[d] = ts.Unix()
	}
	sort.SliceStable(r.Dates, func(i, j int) bool {
		return parsed[r.Dates[i]] < parsed[r.Dates[j]]
	})

	for _, row := range r.Rows {
		row.Latitude = schema.NewCoord(row.Latitude.OrZero())
		row.Longitude = schema.NewCoord(row.Longitude.OrZero())
	}
	return r, nil
}
