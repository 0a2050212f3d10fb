package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/world-timeseries/external/jhu"
	"github.com/bitmark-inc/world-timeseries/schema"
)

func setupWorkspace(t *testing.T) string {
	dir, err := ioutil.TempDir("", "world-timeseries")
	require.NoError(t, err)

	worldDir := filepath.Join(dir, "world")
	require.NoError(t, os.MkdirAll(worldDir, 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(worldDir, "2020-03-24.csv"), []byte(
		"country,latitude,longitude,cases,new_cases,deaths,serious_and_critical,recovered\n"+
			"France,46.2276,2.2137,22304,2448,1100,2516,10\n"+
			"Greenland,71.7,-42.6,2,0,0,0,0\n"), 0644))

	src := jhu.NewRepoSource(jhu.DefaultRepo, filepath.Join(dir, "COVID-19"))
	for _, m := range schema.Metrics {
		path := src.Path(m)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, ioutil.WriteFile(path, []byte(
			"Province/State,Country/Region,Lat,Long,3/23/20,3/24/20\n"+
				",France,46.2276,2.2137,2200,8\n"+
				",Czechia,49.8175,15.473,6,6\n"), 0644))
	}

	viper.Set("jhu.mode", "git")
	viper.Set("jhu.dir", filepath.Join(dir, "COVID-19"))
	viper.Set("world.dir", worldDir)
	viper.Set("output.dir", filepath.Join(dir, "time_series"))
	viper.Set("log.level", "error")
	return dir
}

func TestNewSource(t *testing.T) {
	viper.Set("jhu.mode", "git")
	_, ok := newSource().(*jhu.RepoSource)
	assert.True(t, ok)

	viper.Set("jhu.mode", "http")
	_, ok = newSource().(*jhu.RepoSource)
	assert.False(t, ok)
}

func TestMergeCommand(t *testing.T) {
	dir := setupWorkspace(t)
	defer os.RemoveAll(dir)

	rootCmd.SetArgs([]string{"merge", "-c", filepath.Join(dir, "missing.yaml")})
	require.NoError(t, rootCmd.Execute())

	content, err := ioutil.ReadFile(filepath.Join(dir, "time_series", "global_recovered.csv"))
	require.NoError(t, err)
	assert.Equal(t, "country,latitude,longitude,3/23/20,3/24/20\n"+
		"Czech Republic,0.0,0.0,6,6\n"+
		"France,46.2276,2.2137,2200,10\n"+
		"Greenland,71.7,-42.6,,0\n", string(content))

	for _, name := range []string{"global_confirmed.csv", "global_deaths.csv"} {
		_, err := os.Stat(filepath.Join(dir, "time_series", name))
		assert.NoError(t, err, name)
	}
}

func TestCountriesCommand(t *testing.T) {
	dir := setupWorkspace(t)
	defer os.RemoveAll(dir)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"countries", "-c", filepath.Join(dir, "missing.yaml")})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "Countries we have that JHU doesn't\n"+
		"  Greenland\n"+
		"Countries JHU has that we don't\n"+
		"  Czech Republic\n"+
		"We have 1 more countries than JHU\n"+
		"JHU has 1 more countries than us\n", out.String())

	_, err := os.Stat(filepath.Join(dir, "time_series"))
	assert.True(t, os.IsNotExist(err))
}
