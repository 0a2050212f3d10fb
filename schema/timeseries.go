package schema

import (
	"errors"
	"fmt"
)

const (
	TimeSeriesCollection = "global_timeseries"
)

// Metric - one of the published per-country time series
type Metric string

const (
	MetricConfirmed Metric = "confirmed"
	MetricDeaths    Metric = "deaths"
	MetricRecovered Metric = "recovered"
)

// Metrics - every published metric, in output order
var Metrics = []Metric{MetricConfirmed, MetricDeaths, MetricRecovered}

var ErrUnknownMetric = errors.New("unknown metric")

// ParseMetric - parse a metric name
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownMetric, s)
}

// WorldColumn - the world day file column carrying this metric
func (m Metric) WorldColumn() string {
	switch m {
	case MetricConfirmed:
		return "cases"
	case MetricDeaths:
		return "deaths"
	case MetricRecovered:
		return "recovered"
	}
	return ""
}

type GeoJSON struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// TimeSeries - stored reconciled series of one country for one metric
type TimeSeries struct {
	Metric     Metric           `json:"metric" bson:"metric"`
	Country    string           `json:"country" bson:"country"`
	Location   GeoJSON          `json:"location" bson:"location"`
	Counts     map[string]int64 `json:"counts" bson:"counts"`
	RunID      string           `json:"run_id" bson:"run_id"`
	UpdateTime int64            `json:"update_ts" bson:"update_ts"`
}
