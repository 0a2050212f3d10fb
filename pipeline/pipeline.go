// Package pipeline runs the world time series merge: fetch the JHU tables,
// load the world day files, normalise both, merge them day by day,
// reconcile and persist one table per metric.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/world-timeseries/external/jhu"
	"github.com/bitmark-inc/world-timeseries/schema"
	"github.com/bitmark-inc/world-timeseries/store"
	"github.com/bitmark-inc/world-timeseries/timeseries"
	"github.com/bitmark-inc/world-timeseries/world"
)

const logPrefix = "pipeline"

// Option - configure a pipeline
type Option func(*Pipeline)

// WithStore - also write the reconciled tables into a store
func WithStore(s store.TimeSeries) Option {
	return func(p *Pipeline) {
		p.store = s
	}
}

// WithMetrics - restrict the run to some metrics
func WithMetrics(metrics ...schema.Metric) Option {
	return func(p *Pipeline) {
		p.metrics = metrics
	}
}

type Pipeline struct {
	source    jhu.Source
	worldDir  string
	outputDir string
	store     store.TimeSeries
	metrics   []schema.Metric
}

// Result - outcome of a run
type Result struct {
	RunID  string
	Files  map[schema.Metric]string
	Tables map[schema.Metric]*timeseries.Table
	Report *CountryReport
}

// CountryReport - countries present in only one of the sources
type CountryReport struct {
	OnlyWorld []string
	OnlyJHU   []string
}

// New - a pipeline reading JHU data from source and world data from worldDir
func New(source jhu.Source, worldDir, outputDir string, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:    source,
		worldDir:  worldDir,
		outputDir: outputDir,
		metrics:   schema.Metrics,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the merge for every metric
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:  uuid.New().String(),
		Files:  make(map[schema.Metric]string, len(p.metrics)),
		Tables: make(map[schema.Metric]*timeseries.Table, len(p.metrics)),
	}
	logger := log.WithFields(log.Fields{"prefix": logPrefix, "run_id": result.RunID})
	logger.Info("start merge")

	days, err := p.loadWorld()
	if err != nil {
		return nil, err
	}

	for _, metric := range p.metrics {
		base, err := p.loadJHU(ctx, metric)
		if err != nil {
			return nil, err
		}

		if metric == p.reportMetric() {
			result.Report = compareCountries(days, base)
			logReport(result.Report)
		}

		daily := make([]*timeseries.Table, 0, len(days))
		for _, day := range days {
			daily = append(daily, timeseries.Reshape(day, metric))
		}

		reconciled, err := timeseries.Reconcile(timeseries.Merge(base, daily...))
		if err != nil {
			return nil, fmt.Errorf("reconcile %s: %w", metric, err)
		}

		path, err := timeseries.WriteFile(p.outputDir, reconciled)
		if err != nil {
			return nil, err
		}
		result.Files[metric] = path
		result.Tables[metric] = reconciled

		if p.store != nil {
			if _, err := p.store.ReplaceTimeSeries(ctx, result.RunID, reconciled); err != nil {
				return nil, fmt.Errorf("store %s: %w", metric, err)
			}
		}
	}

	logger.WithField("files", len(result.Files)).Info("merge finished")
	return result, nil
}

// Countries compares the normalised country labels of both sources
// without merging or writing anything
func (p *Pipeline) Countries(ctx context.Context) (*CountryReport, error) {
	days, err := p.loadWorld()
	if err != nil {
		return nil, err
	}

	base, err := p.loadJHU(ctx, p.reportMetric())
	if err != nil {
		return nil, err
	}

	report := compareCountries(days, base)
	logReport(report)
	return report, nil
}

// reportMetric - the jhu table the country report compares against,
// recovered unless the run leaves it out
func (p *Pipeline) reportMetric() schema.Metric {
	for _, m := range p.metrics {
		if m == schema.MetricRecovered {
			return m
		}
	}
	if len(p.metrics) > 0 {
		return p.metrics[0]
	}
	return schema.MetricRecovered
}

func (p *Pipeline) loadWorld() ([]world.Day, error) {
	days, err := world.LoadDir(p.worldDir)
	if err != nil {
		return nil, fmt.Errorf("load world data: %w", err)
	}
	for i := range days {
		days[i] = timeseries.NormalizeWorld(days[i])
	}
	return days, nil
}

func (p *Pipeline) loadJHU(ctx context.Context, metric schema.Metric) (*timeseries.Table, error) {
	raw, err := jhu.Load(ctx, p.source, metric)
	if err != nil {
		return nil, err
	}
	return timeseries.NormalizeJHU(raw), nil
}

func compareCountries(days []world.Day, base *timeseries.Table) *CountryReport {
	var countries []string
	for _, d := range days {
		countries = append(countries, d.Countries()...)
	}
	onlyWorld, onlyJHU := timeseries.Diff(countries, base.Countries())
	return &CountryReport{OnlyWorld: onlyWorld, OnlyJHU: onlyJHU}
}

func logReport(r *CountryReport) {
	log.WithFields(log.Fields{"prefix": logPrefix, "countries": r.OnlyWorld}).Infof("%d countries we have that JHU doesn't", len(r.OnlyWorld))
	log.WithFields(log.Fields{"prefix": logPrefix, "countries": r.OnlyJHU}).Infof("%d countries JHU has that we don't", len(r.OnlyJHU))
}
