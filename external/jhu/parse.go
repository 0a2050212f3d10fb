package jhu

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/bitmark-inc/world-timeseries/schema"
	"github.com/bitmark-inc/world-timeseries/timeseries"
)

const firstDateColumn = 4

// Parse reads a JHU global time series:
// Province/State,Country/Region,Lat,Long,<date>...
func Parse(r io.Reader, metric schema.Metric) (*timeseries.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty file", ErrInvalidHeader)
		}
		return nil, err
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	// padded and unpadded renderings of one day share a label
	t := timeseries.NewTable(metric)
	labels := make([]string, 0, len(header)-firstDateColumn)
	for _, h := range header[firstDateColumn:] {
		d, err := schema.CanonicalDate(h)
		if err != nil {
			return nil, err
		}
		labels = append(labels, d)
		t.AddDate(d)
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if len(record) < firstDateColumn {
			return nil, fmt.Errorf("line %d: %d columns", line, len(record))
		}

		row := timeseries.NewRow(strings.TrimSpace(record[1]))
		row.Province = strings.TrimSpace(record[0])
		if row.Latitude, err = schema.ParseCoord(record[2]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if row.Longitude, err = schema.ParseCoord(record[3]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		for i, cell := range record[firstDateColumn:] {
			if i >= len(labels) {
				break
			}
			c, err := schema.ParseCount(cell)
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, labels[i], err)
			}
			if c.Valid {
				row.Counts[labels[i]] = schema.MaxCount(row.Counts[labels[i]], c)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func checkHeader(header []string) error {
	if len(header) < firstDateColumn {
		return fmt.Errorf("%w: %v", ErrInvalidHeader, header)
	}
	province := strings.TrimPrefix(strings.TrimSpace(header[0]), "\ufeff")
	if province != "Province/State" ||
		strings.TrimSpace(header[1]) != "Country/Region" ||
		strings.TrimSpace(header[2]) != "Lat" {
		return fmt.Errorf("%w: %v", ErrInvalidHeader, header[:firstDateColumn])
	}
	switch strings.TrimSpace(header[3]) {
	case "Long", "Long_":
	default:
		return fmt.Errorf("%w: %v", ErrInvalidHeader, header[:firstDateColumn])
	}
	return nil
}
