// Package jhu fetches the JHU CSSE global COVID-19 time series.
package jhu

import (
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/world-timeseries/schema"
	"github.com/bitmark-inc/world-timeseries/timeseries"
)

const (
	logPrefix = "jhu"

	// DefaultURL - raw content of the CSSE time series directory
	DefaultURL = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series"
	// DefaultRepo - the CSSE repository
	DefaultRepo = "https://github.com/CSSEGISandData/COVID-19.git"

	timeSeriesPath = "csse_covid_19_data/csse_covid_19_time_series"
)

var (
	ErrInvalidHeader    = errors.New("invalid jhu time series header")
	ErrUnexpectedStatus = errors.New("unexpected http status")
)

// Source - interface to fetch one JHU global time series file
type Source interface {
	Fetch(ctx context.Context, metric schema.Metric) (io.ReadCloser, error)
}

// FileName - name of the global time series file of a metric
func FileName(metric schema.Metric) string {
	return fmt.Sprintf("time_series_covid19_%s_global.csv", metric)
}

// Load fetches and parses the time series of a metric
func Load(ctx context.Context, src Source, metric schema.Metric) (*timeseries.Table, error) {
	rc, err := src.Fetch(ctx, metric)
	if err != nil {
		return nil, fmt.Errorf("fetch jhu %s: %w", metric, err)
	}
	defer rc.Close()

	t, err := Parse(rc, metric)
	if err != nil {
		return nil, fmt.Errorf("parse jhu %s: %w", metric, err)
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"metric": metric,
		"rows":   len(t.Rows),
		"dates":  len(t.Dates),
	}).Info("loaded jhu time series")
	return t, nil
}
