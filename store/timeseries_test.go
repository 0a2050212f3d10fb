package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/world-timeseries/schema"
	"github.com/bitmark-inc/world-timeseries/timeseries"
)

type TimeSeriesTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
}

func NewTimeSeriesTestSuite(connURI, dbName string) *TimeSeriesTestSuite {
	return &TimeSeriesTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *TimeSeriesTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(context.Background()); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)

	// make sure the test suite is run with a clean environment
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}
	if err := schema.NewMongoDBIndexer(s.connURI, s.testDBName).IndexTimeSeriesCollection(); err != nil {
		s.T().Fatal(err)
	}
}

// CleanMongoDB drop the whole test mongodb
func (s *TimeSeriesTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

func (s *TimeSeriesTestSuite) TearDownSuite() {
	_ = s.CleanMongoDB()
	_ = s.mongoClient.Disconnect(context.Background())
}

func (s *TimeSeriesTestSuite) recoveredTable(france int64) *timeseries.Table {
	t := timeseries.NewTable(schema.MetricRecovered)
	t.Dates = []string{"3/23/20", "3/24/20"}

	fr := timeseries.NewRow("France")
	fr.Latitude = schema.NewCoord(46.2276)
	fr.Longitude = schema.NewCoord(2.2137)
	fr.Counts["3/23/20"] = schema.NewCount(8)
	fr.Counts["3/24/20"] = schema.NewCount(france)

	gl := timeseries.NewRow("Greenland")
	gl.Latitude = schema.NewCoord(0)
	gl.Longitude = schema.NewCoord(0)
	gl.Counts["3/24/20"] = schema.NewCount(0)

	t.Rows = []*timeseries.Row{fr, gl}
	return t
}

func (s *TimeSeriesTestSuite) TestReplaceTimeSeries() {
	ctx := context.Background()
	store := NewMongoStore(s.mongoClient, s.testDBName)

	count, err := store.ReplaceTimeSeries(ctx, "run-1", s.recoveredTable(10))
	s.NoError(err)
	s.Equal(2, count)

	count, err = store.ReplaceTimeSeries(ctx, "run-2", s.recoveredTable(12))
	s.NoError(err)
	s.Equal(2, count)

	total, err := s.testDatabase.Collection(schema.TimeSeriesCollection).CountDocuments(ctx, bson.M{"metric": schema.MetricRecovered})
	s.NoError(err)
	s.Equal(int64(2), total)

	france, err := store.GetTimeSeries(ctx, schema.MetricRecovered, "France")
	s.NoError(err)
	s.Equal("run-2", france.RunID)
	s.Equal(int64(12), france.Counts["3/24/20"])
	s.Equal(int64(8), france.Counts["3/23/20"])
	s.Equal("Point", france.Location.Type)
	s.Equal([]float64{2.2137, 46.2276}, france.Location.Coordinates)

	greenland, err := store.GetTimeSeries(ctx, schema.MetricRecovered, "Greenland")
	s.NoError(err)
	_, ok := greenland.Counts["3/23/20"]
	s.False(ok)
}

func (s *TimeSeriesTestSuite) TestReplaceEmptyTimeSeries() {
	store := NewMongoStore(s.mongoClient, s.testDBName)
	count, err := store.ReplaceTimeSeries(context.Background(), "run-1", timeseries.NewTable(schema.MetricDeaths))
	s.NoError(err)
	s.Equal(0, count)
}

func (s *TimeSeriesTestSuite) TestGetTimeSeriesNotFound() {
	store := NewMongoStore(s.mongoClient, s.testDBName)
	_, err := store.GetTimeSeries(context.Background(), schema.MetricConfirmed, "Atlantis")
	s.Equal(ErrTimeSeriesNotFound, err)
}

func TestTimeSeriesTestSuite(t *testing.T) {
	suite.Run(t, NewTimeSeriesTestSuite("mongodb://127.0.0.1:27017/?compressors=disabled", "test-db"))
}
