// Package timezones resolves IANA timezone names to ISO 3166 alpha-2
// region codes. The mapping is a fixed, versioned data asset generated
// from the tzdata zone tables and embedded at build time; it is loaded
// exactly once and never mutated, so lookups are safe for concurrent
// use without synchronization.
package timezones

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pariz/gountries"
)

//go:embed timezones.json
var rawTable []byte

var (
	once  sync.Once
	table map[string]string

	countryOnce  sync.Once
	countryQuery *gountries.Query
)

func getTable() map[string]string {
	once.Do(func() {
		if err := json.Unmarshal(rawTable, &table); err != nil {
			panic(fmt.Sprintf("timezones: embedded table is invalid: %v", err))
		}
	})
	return table
}

// Lookup returns the region code for an IANA timezone name, with
// ok=false for unknown zones. Exact match only.
func Lookup(tz string) (string, bool) {
	region, ok := getTable()[tz]
	return region, ok
}

// CountryName resolves a region code to its common country name for
// display purposes. Returns the code unchanged when it is not a known
// ISO 3166 alpha-2 code.
func CountryName(code string) string {
	countryOnce.Do(func() {
		q := gountries.New()
		countryQuery = q
	})

	country, err := countryQuery.FindCountryByAlpha(code)
	if err != nil {
		return code
	}
	return country.Name.Common
}
