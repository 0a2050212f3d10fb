package consts

import (
	"fmt"
	"io/ioutil"
	"sort"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/bitmark-inc/world-timeseries/utils"
)

const logPrefix = "consts"

// JHUCountryRename - JHU CSSE country labels mapped to the labels used by the world data
var JHUCountryRename map[string]string

// JHUDroppedCountries - JHU rows duplicating another country under a second label
var JHUDroppedCountries map[string]struct{}

// WorldCountryRename - local world data labels mapped to their canonical form
var WorldCountryRename map[string]string

func init() {
	JHUCountryRename = make(map[string]string)

	JHUCountryRename["Korea, South"] = "South Korea"
	JHUCountryRename["US"] = "United States"
	JHUCountryRename["The Bahamas"] = "Bahamas"
	JHUCountryRename["Congo (Kinshasa)"] = "Democratic Republic of the Congo"
	JHUCountryRename["Czechia"] = "Czech Republic"
	JHUCountryRename["Taiwan*"] = "Taiwan"
	JHUCountryRename["Cruise Ship"] = "Diamond Princess"
	JHUCountryRename["Cote d'Ivoire"] = "Ivory Coast"

	JHUDroppedCountries = map[string]struct{}{
		"Bahamas, The":        {},
		"Congo (Brazzaville)": {},
	}

	WorldCountryRename = make(map[string]string)

	WorldCountryRename["Congo Republic"] = "Republic of the Congo"
	WorldCountryRename["DR Congo"] = "Democratic Republic of the Congo"
}

// CountryRename - look up a name in a rename table, exact match first and then by folded key.
// Names without an entry are returned unchanged.
func CountryRename(table map[string]string, name string) string {
	if renamed, ok := table[name]; ok {
		return renamed
	}

	key := utils.CountryKey(name)
	if key == "" {
		return name
	}

	froms := make([]string, 0, len(table))
	for from := range table {
		froms = append(froms, from)
	}
	sort.Strings(froms)

	// the last matching entry in sorted order wins
	renamed, matched := name, ""
	for _, from := range froms {
		if utils.CountryKey(from) != key {
			continue
		}
		if matched != "" && table[from] != renamed {
			log.WithFields(log.Fields{
				"prefix":  logPrefix,
				"name":    name,
				"aliases": []string{matched, from},
			}).Warn("country aliases fold to the same key")
		}
		renamed, matched = table[from], from
	}
	return renamed
}

// IsDroppedJHUCountry - report whether a JHU row must be removed before deduplication
func IsDroppedJHUCountry(name string) bool {
	if _, ok := JHUDroppedCountries[name]; ok {
		return true
	}

	key := utils.CountryKey(name)
	for dropped := range JHUDroppedCountries {
		if utils.CountryKey(dropped) == key {
			return true
		}
	}
	return false
}

// CountryAliases - layout of the optional alias override file
type CountryAliases struct {
	JHU   map[string]string `yaml:"jhu"`
	World map[string]string `yaml:"world"`
	Drop  []string          `yaml:"drop"`
}

// LoadCountryAliases - merge an alias override file over the built-in tables
func LoadCountryAliases(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read country aliases %s: %w", path, err)
	}

	var aliases CountryAliases
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return fmt.Errorf("decode country aliases %s: %w", path, err)
	}

	for from, to := range aliases.JHU {
		JHUCountryRename[from] = to
	}
	for from, to := range aliases.World {
		WorldCountryRename[from] = to
	}
	for _, name := range aliases.Drop {
		JHUDroppedCountries[name] = struct{}{}
	}
	return nil
}
