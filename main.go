package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "world-timeseries",
	Short: "merge JHU CSSE and local world data into global time series",
	Long: `
world-timeseries fetches the JHU CSSE global time series, joins them with the
locally curated per-day world files and writes the confirmed, deaths and
recovered tables, keeping the larger count wherever both sources report a day.
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadConfig(configFile)
		initLog()
		initSentry()
	},
	SilenceUsage: true,
	RunE:         runMerge,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config.yaml", "[optional] path of configuration file")
	rootCmd.AddCommand(mergeCmd, countriesCmd)
}

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// .env entries become environment variables before viper reads them
	_ = godotenv.Load()

	viper.SetDefault("jhu.mode", "git")
	viper.SetDefault("jhu.url", defaultJHUURL)
	viper.SetDefault("jhu.repo", defaultJHURepo)
	viper.SetDefault("jhu.dir", "COVID-19")
	viper.SetDefault("world.dir", "data/world")
	viper.SetDefault("output.dir", "data/time_series")
	viper.SetDefault("http.timeout", 30*time.Second)
	viper.SetDefault("mongo.database", "pandemics")
	viper.SetDefault("mongo.pool", 1)

	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("pandemics")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func initSentry() {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
	}); err != nil {
		log.WithField("prefix", "init").Error(err)
		return
	}
	log.WithField("prefix", "init").Debug("Initialized sentry")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		log.WithField("prefix", "main").Error(err)
		os.Exit(1)
	}
}
