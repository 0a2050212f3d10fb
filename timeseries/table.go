// Package timeseries holds the per-country metric tables and the
// operations that normalise, merge and reconcile them.
package timeseries

import (
	"sort"

	"github.com/bitmark-inc/world-timeseries/schema"
)

const logPrefix = "timeseries"

// Row - one country of a metric table
type Row struct {
	Country   string
	Province  string
	Latitude  schema.Coord
	Longitude schema.Coord
	Counts    map[string]schema.Count
}

// NewRow - an empty row for a country
func NewRow(country string) *Row {
	return &Row{
		Country: country,
		Counts:  make(map[string]schema.Count),
	}
}

// Count - the count of a date, null when absent
func (r *Row) Count(date string) schema.Count {
	return r.Counts[date]
}

func (r *Row) clone() *Row {
	c := *r
	c.Counts = make(map[string]schema.Count, len(r.Counts))
	for d, v := range r.Counts {
		c.Counts[d] = v
	}
	return &c
}

// Table - rows of one metric with their date columns in column order
type Table struct {
	Metric schema.Metric
	Dates  []string
	Rows   []*Row
}

// NewTable - an empty table of a metric
func NewTable(metric schema.Metric) *Table {
	return &Table{Metric: metric}
}

// HasDate - report whether the table has a date column
func (t *Table) HasDate(date string) bool {
	for _, d := range t.Dates {
		if d == date {
			return true
		}
	}
	return false
}

// AddDate - append a date column when it is not there yet
func (t *Table) AddDate(date string) {
	if !t.HasDate(date) {
		t.Dates = append(t.Dates, date)
	}
}

// Row - the first row of a country, nil when the country is absent
func (t *Table) Row(country string) *Row {
	for _, r := range t.Rows {
		if r.Country == country {
			return r
		}
	}
	return nil
}

// Countries - distinct countries of the table, sorted
func (t *Table) Countries() []string {
	seen := make(map[string]struct{}, len(t.Rows))
	countries := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		if _, ok := seen[r.Country]; ok {
			continue
		}
		seen[r.Country] = struct{}{}
		countries = append(countries, r.Country)
	}
	sort.Strings(countries)
	return countries
}

// Clone - a deep copy of the table
func (t *Table) Clone() *Table {
	c := &Table{
		Metric: t.Metric,
		Dates:  append([]string(nil), t.Dates...),
		Rows:   make([]*Row, 0, len(t.Rows)),
	}
	for _, r := range t.Rows {
		c.Rows = append(c.Rows, r.clone())
	}
	return c
}

// Diff - countries only present in a and countries only present in b
func Diff(a, b []string) (onlyA, onlyB []string) {
	inA := make(map[string]struct{}, len(a))
	for _, c := range a {
		inA[c] = struct{}{}
	}
	inB := make(map[string]struct{}, len(b))
	for _, c := range b {
		inB[c] = struct{}{}
	}

	for c := range inA {
		if _, ok := inB[c]; !ok {
			onlyA = append(onlyA, c)
		}
	}
	for c := range inB {
		if _, ok := inA[c]; !ok {
			onlyB = append(onlyB, c)
		}
	}
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	return onlyA, onlyB
}
