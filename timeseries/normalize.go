package timeseries

import (
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/world-timeseries/consts"
	"github.com/bitmark-inc/world-timeseries/schema"
	"github.com/bitmark-inc/world-timeseries/world"
)

// NormalizeJHU rewrites a JHU table to country granularity: provinces are
// dropped, duplicated labels removed, countries renamed to the world data
// labels and the remaining sub-national rows collapsed into their country.
func NormalizeJHU(raw *Table) *Table {
	t := &Table{
		Metric: raw.Metric,
		Dates:  append([]string(nil), raw.Dates...),
		Rows:   make([]*Row, 0, len(raw.Rows)),
	}

	dropped := 0
	for _, r := range raw.Rows {
		if consts.IsDroppedJHUCountry(r.Country) {
			dropped++
			continue
		}
		row := r.clone()
		row.Province = ""
		row.Country = consts.CountryRename(consts.JHUCountryRename, r.Country)
		t.Rows = append(t.Rows, row)
	}

	collapsed := Collapse(t)
	log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"metric":    raw.Metric,
		"rows":      len(raw.Rows),
		"dropped":   dropped,
		"countries": len(collapsed.Rows),
	}).Debug("normalized jhu table")
	return collapsed
}

// Collapse merges rows sharing a country label into one row per country.
// A collapsed row holds the per-date sum of its rows, zero when none of
// them has a value, and zero coordinates; countries with a single row are
// kept as they are.
func Collapse(t *Table) *Table {
	groups := make(map[string][]*Row, len(t.Rows))
	order := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		if _, ok := groups[r.Country]; !ok {
			order = append(order, r.Country)
		}
		groups[r.Country] = append(groups[r.Country], r)
	}

	c := &Table{
		Metric: t.Metric,
		Dates:  append([]string(nil), t.Dates...),
		Rows:   make([]*Row, 0, len(order)),
	}
	for _, country := range order {
		rows := groups[country]
		if len(rows) == 1 {
			c.Rows = append(c.Rows, rows[0].clone())
			continue
		}

		sum := NewRow(country)
		sum.Latitude = schema.NewCoord(0)
		sum.Longitude = schema.NewCoord(0)
		for _, d := range t.Dates {
			sum.Counts[d] = schema.NewCount(0)
		}
		for _, r := range rows {
			for _, d := range t.Dates {
				sum.Counts[d] = sum.Counts[d].Add(r.Count(d))
			}
		}
		c.Rows = append(c.Rows, sum)
	}
	return c
}

// NormalizeWorld renames the countries of a world day to their canonical labels
func NormalizeWorld(day world.Day) world.Day {
	n := world.Day{
		Date:    day.Date,
		Path:    day.Path,
		Records: make([]world.Record, len(day.Records)),
	}
	for i, r := range day.Records {
		r.Country = consts.CountryRename(consts.WorldCountryRename, r.Country)
		n.Records[i] = r
	}
	return n
}
