package timezones_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumetric/internal/pkg/timezones"
)

func TestLookup(t *testing.T) {
	testCases := []struct {
		tz     string
		region string
		found  bool
	}{
		{tz: "Europe/Zurich", region: "CH", found: true},
		{tz: "Europe/Berlin", region: "DE", found: true},
		{tz: "America/New_York", region: "US", found: true},
		{tz: "Asia/Tokyo", region: "JP", found: true},
		{tz: "Atlantis/Lost_City", found: false},
		{tz: "", found: false},
		// lookups are exact, not case-folded
		{tz: "europe/zurich", found: false},
	}

	for _, tc := range testCases {
		region, ok := timezones.Lookup(tc.tz)
		require.Equal(t, tc.found, ok, "tz %q", tc.tz)
		if tc.found {
			assert.Equal(t, tc.region, region, "tz %q", tc.tz)
		}
	}
}

func TestCountryName(t *testing.T) {
	assert.Equal(t, "Switzerland", timezones.CountryName("CH"))
	assert.Equal(t, "Germany", timezones.CountryName("DE"))
	// unknown codes pass through unchanged
	assert.Equal(t, "ZZ", timezones.CountryName("ZZ"))
}
