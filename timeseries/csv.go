package timeseries

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/world-timeseries/schema"
)

// FileName - output file name of a metric table
func FileName(metric schema.Metric) string {
	return fmt.Sprintf("global_%s.csv", metric)
}

// WriteCSV writes the table as country, latitude, longitude and one column per date
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	header := append([]string{"country", "latitude", "longitude"}, t.Dates...)
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, r := range t.Rows {
		record[0] = r.Country
		record[1] = r.Latitude.String()
		record[2] = r.Longitude.String()
		for i, d := range t.Dates {
			record[3+i] = r.Count(d).String()
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes the table into dir, creating it when needed, and returns the file path
func WriteFile(dir string, t *Table) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(t.Metric))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "file": path, "countries": len(t.Rows), "dates": len(t.Dates)}).Info("wrote time series")
	return path, nil
}
