// Package world loads the locally curated per-day country case files.
package world

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/world-timeseries/schema"
)

const logPrefix = "world"

var (
	ErrInvalidHeader = errors.New("invalid world data header")
	ErrFileDate      = errors.New("no date in world data file name")
)

// Columns - columns every world day file must carry
var Columns = []string{
	"country",
	"latitude",
	"longitude",
	"cases",
	"new_cases",
	"deaths",
	"serious_and_critical",
	"recovered",
}

var fileDateLayouts = []string{
	"2006-01-02",
	"01-02-2006",
	"1-2-06",
	"1_2_06",
	"20060102",
}

// Record - one country line of a day file
type Record struct {
	Country            string
	Latitude           schema.Coord
	Longitude          schema.Coord
	Cases              schema.Count
	NewCases           schema.Count
	Deaths             schema.Count
	SeriousAndCritical schema.Count
	Recovered          schema.Count
}

// Count - the record value for a metric
func (r Record) Count(m schema.Metric) schema.Count {
	switch m {
	case schema.MetricConfirmed:
		return r.Cases
	case schema.MetricDeaths:
		return r.Deaths
	case schema.MetricRecovered:
		return r.Recovered
	}
	return schema.Count{}
}

// Day - all records of one day file
type Day struct {
	Date    string
	Path    string
	Records []Record
}

// Countries - the country labels of the day, in file order
func (d Day) Countries() []string {
	countries := make([]string, 0, len(d.Records))
	for _, r := range d.Records {
		countries = append(countries, r.Country)
	}
	return countries
}

// DateFromFileName - read the day a file covers from its base name
func DateFromFileName(name string) (time.Time, error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	for _, layout := range fileDateLayouts {
		if t, err := time.Parse(layout, base); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s", ErrFileDate, name)
}

// LoadDir reads every csv file of a directory as one day, ordered by date
func LoadDir(dir string) ([]Day, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}

	type datedFile struct {
		path string
		date time.Time
	}
	dated := make([]datedFile, 0, len(files))
	for _, f := range files {
		t, err := DateFromFileName(f)
		if err != nil {
			return nil, err
		}
		dated = append(dated, datedFile{path: f, date: t})
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].date.Before(dated[j].date)
	})

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(dated),
			progressbar.OptionSetDescription("Loading world data"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	days := make([]Day, 0, len(dated))
	for _, f := range dated {
		day, err := LoadFile(f.path, schema.FormatDate(f.date))
		if err != nil {
			return nil, err
		}
		days = append(days, day)

		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "dir": dir, "days": len(days)}).Info("loaded world data")
	return days, nil
}

// LoadFile reads one day file, date being the column label of that day
func LoadFile(path, date string) (Day, error) {
	f, err := os.Open(path)
	if err != nil {
		return Day{}, err
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return Day{}, fmt.Errorf("read %s: %w", path, err)
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "file": path, "date": date, "records": len(records)}).Debug("loaded world day")
	return Day{Date: date, Path: path, Records: records}, nil
}

// Read decodes the records of a day file
func Read(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty file", ErrInvalidHeader)
		}
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range Columns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("%w: missing column %s", ErrInvalidHeader, c)
		}
	}

	var records []Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		record, err := parseRecord(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if record.Country == "" {
			log.WithFields(log.Fields{"prefix": logPrefix, "line": line}).Warn("skip row without country")
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func parseRecord(row []string, index map[string]int) (Record, error) {
	cell := func(name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var (
		r   Record
		err error
	)
	r.Country = strings.TrimSpace(cell("country"))
	if r.Latitude, err = schema.ParseCoord(cell("latitude")); err != nil {
		return r, err
	}
	if r.Longitude, err = schema.ParseCoord(cell("longitude")); err != nil {
		return r, err
	}

	counts := []struct {
		column string
		target *schema.Count
	}{
		{"cases", &r.Cases},
		{"new_cases", &r.NewCases},
		{"deaths", &r.Deaths},
		{"serious_and_critical", &r.SeriousAndCritical},
		{"recovered", &r.Recovered},
	}
	for _, c := range counts {
		if *c.target, err = schema.ParseCount(cell(c.column)); err != nil {
			return r, fmt.Errorf("column %s: %w", c.column, err)
		}
	}
	return r, nil
}
