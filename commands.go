package main

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/world-timeseries/consts"
	"github.com/bitmark-inc/world-timeseries/external/jhu"
	"github.com/bitmark-inc/world-timeseries/pipeline"
	"github.com/bitmark-inc/world-timeseries/store"
)

const (
	defaultJHUURL  = jhu.DefaultURL
	defaultJHURepo = jhu.DefaultRepo
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "write the global confirmed, deaths and recovered time series",
	RunE:  runMerge,
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "list the countries only one of the sources reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadAliases(); err != nil {
			return err
		}

		report, err := pipeline.New(newSource(), viper.GetString("world.dir"), viper.GetString("output.dir")).Countries(commandContext(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Countries we have that JHU doesn't")
		for _, c := range report.OnlyWorld {
			fmt.Fprintf(out, "  %s\n", c)
		}
		fmt.Fprintln(out, "Countries JHU has that we don't")
		for _, c := range report.OnlyJHU {
			fmt.Fprintf(out, "  %s\n", c)
		}
		fmt.Fprintf(out, "We have %d more countries than JHU\n", len(report.OnlyWorld))
		fmt.Fprintf(out, "JHU has %d more countries than us\n", len(report.OnlyJHU))
		return nil
	},
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := loadAliases(); err != nil {
		return err
	}

	var opts []pipeline.Option
	if viper.GetString("mongo.conn") != "" {
		mongoStore, err := newMongoStore(ctx)
		if err != nil {
			return err
		}
		defer mongoStore.Close()
		opts = append(opts, pipeline.WithStore(mongoStore))
	}

	result, err := pipeline.New(newSource(), viper.GetString("world.dir"), viper.GetString("output.dir"), opts...).Run(ctx)
	if err != nil {
		return err
	}

	for metric, path := range result.Files {
		log.WithFields(log.Fields{"prefix": "main", "metric": metric, "file": path}).Info("time series written")
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func loadAliases() error {
	path := viper.GetString("countries.aliases")
	if path == "" {
		return nil
	}
	return consts.LoadCountryAliases(path)
}

func newSource() jhu.Source {
	switch viper.GetString("jhu.mode") {
	case "http":
		client := &http.Client{Timeout: viper.GetDuration("http.timeout")}
		return jhu.NewHTTPSource(viper.GetString("jhu.url"), client)
	default:
		return jhu.NewRepoSource(viper.GetString("jhu.repo"), viper.GetString("jhu.dir"))
	}
}

func newMongoStore(ctx context.Context) (store.MongoStore, error) {
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		return nil, fmt.Errorf("create mongo client with error: %w", err)
	}

	if err := mongoClient.Connect(ctx); nil != err {
		return nil, fmt.Errorf("connect mongo database with error: %w", err)
	}

	return store.NewMongoStore(mongoClient, viper.GetString("mongo.database")), nil
}
