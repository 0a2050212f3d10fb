package store

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/world-timeseries/schema"
	"github.com/bitmark-inc/world-timeseries/timeseries"
)

var ErrTimeSeriesNotFound = errors.New("time series not found")

// TimeSeries - operations on the reconciled per-country series
type TimeSeries interface {
	ReplaceTimeSeries(ctx context.Context, runID string, table *timeseries.Table) (int, error)
	GetTimeSeries(ctx context.Context, metric schema.Metric, country string) (*schema.TimeSeries, error)
}

// ReplaceTimeSeries upserts one document per country of the table and
// returns how many documents were written
func (m *mongoDB) ReplaceTimeSeries(ctx context.Context, runID string, table *timeseries.Table) (int, error) {
	if len(table.Rows) == 0 {
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "metric": table.Metric}).Debug("no time series to update")
		return 0, nil
	}

	c := m.client.Database(m.database).Collection(schema.TimeSeriesCollection)
	now := time.Now().UTC().Unix()
	opts := options.Replace().SetUpsert(true)

	count := 0
	for _, r := range table.Rows {
		counts := make(map[string]int64, len(table.Dates))
		for _, d := range table.Dates {
			if v := r.Count(d); v.Valid {
				counts[d] = v.Value
			}
		}

		replacement := schema.TimeSeries{
			Metric:  table.Metric,
			Country: r.Country,
			Location: schema.GeoJSON{
				Type:        "Point",
				Coordinates: []float64{r.Longitude.OrZero(), r.Latitude.OrZero()},
			},
			Counts:     counts,
			RunID:      runID,
			UpdateTime: now,
		}
		filter := bson.M{"metric": table.Metric, "country": r.Country}

		if _, err := c.ReplaceOne(ctx, filter, replacement, opts); err != nil {
			if errs, hasErr := err.(mongo.WriteException); hasErr {
				if 1 == len(errs.WriteErrors) && DuplicateKeyCode == errs.WriteErrors[0].Code {
					log.WithField("prefix", mongoLogPrefix).Warnf("time series update with error: %s", err)
					continue
				}
			}
			log.WithFields(log.Fields{"prefix": mongoLogPrefix, "metric": table.Metric, "country": r.Country, "error": err}).Error("replace time series")
			return count, err
		}
		count++
	}

	log.WithFields(log.Fields{"prefix": mongoLogPrefix, "metric": table.Metric, "records": count, "run_id": runID}).Info("replaced time series")
	return count, nil
}

// GetTimeSeries - the stored series of one country
func (m *mongoDB) GetTimeSeries(ctx context.Context, metric schema.Metric, country string) (*schema.TimeSeries, error) {
	c := m.client.Database(m.database).Collection(schema.TimeSeriesCollection)

	var result schema.TimeSeries
	err := c.FindOne(ctx, bson.M{"metric": metric, "country": country}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTimeSeriesNotFound
		}
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "metric": metric, "country": country, "error": err}).Error("find time series")
		return nil, err
	}
	return &result, nil
}
