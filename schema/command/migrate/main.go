package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/bitmark-inc/world-timeseries/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("pandemics")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	conn := viper.GetString("mongo.conn")
	if conn == "" {
		panic("mongo.conn is not configured")
	}

	fmt.Println("initialize time series indexes")
	schema.NewMongoDBIndexer(conn, viper.GetString("mongo.database")).IndexAll()
}
