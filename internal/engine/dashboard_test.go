package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionApply(t *testing.T) {
	table := fixtureTable()

	t.Run("zero selection is identity", func(t *testing.T) {
		assert.Equal(t, table, Selection{}.Apply(table))
	})

	t.Run("all dimensions combine", func(t *testing.T) {
		sel := Selection{
			Province:   "CA",
			City:       "los angeles",
			Categories: []string{"burgers", "sandwiches"},
			Chains:     []string{"McDonald's"},
		}
		got := sel.Apply(table)
		require.Len(t, got, 1)
		assert.Equal(t, "1", got[0].ID)
	})
}

func TestBuildDashboard(t *testing.T) {
	table := fixtureTable()
	d := BuildDashboard(table, Selection{Province: "CA"}, 0)

	assert.Equal(t, 3, d.Rows)
	assert.Len(t, d.Restaurants, 3)

	sum := 0
	for _, g := range d.ProvinceCounts {
		sum += g.Count
	}
	assert.Equal(t, d.Rows, sum, "province counts must sum to the view size")

	sum = 0
	for _, g := range d.CategoryCounts {
		sum += g.Count
	}
	assert.Equal(t, d.Rows, sum, "category counts must sum to the view size")

	sum = 0
	for _, p := range d.CategoryBreakdown {
		sum += p.Count
	}
	assert.Equal(t, d.Rows, sum, "breakdown cells must sum to the view size")

	require.NotEmpty(t, d.TopChains)
	assert.LessOrEqual(t, len(d.TopChains), 10)

	// Top-chain markers come from the whole dataset: the NY McDonald's
	// shows up even though the view is CA-only.
	provinces := make(map[string]bool)
	for _, p := range d.TopChainPoints {
		provinces[p.Province] = true
	}
	assert.True(t, provinces["NY"], "top-chain map must cover the full dataset")
}

func TestBuildDashboardEmptyView(t *testing.T) {
	d := BuildDashboard(fixtureTable(), Selection{Province: "TX"}, 0)
	assert.Zero(t, d.Rows)
	assert.Empty(t, d.Restaurants)
	assert.Empty(t, d.ProvinceCounts)
	assert.Empty(t, d.MapPoints)
}

func TestMapPoints(t *testing.T) {
	var table Table
	for i := 0; i < 50; i++ {
		table = append(table, fixtureTable()[i%4])
		table[i].ID = fmt.Sprintf("x%d", i)
	}

	t.Run("cap and determinism", func(t *testing.T) {
		a := MapPoints(table, 10)
		b := MapPoints(table, 10)
		require.Len(t, a, 10)
		assert.Equal(t, a, b, "sampling must be deterministic")
	})

	t.Run("no cap below max", func(t *testing.T) {
		assert.Len(t, MapPoints(table, 100), 50)
		assert.Len(t, MapPoints(table, 0), 50)
	})

	t.Run("province count rides along", func(t *testing.T) {
		counts := CountBy(table, KeyProvince)
		for _, p := range MapPoints(table, 10) {
			assert.Equal(t, counts[p.Province], p.ProvinceCount)
		}
	})
}

func TestProvinceStats(t *testing.T) {
	table := fixtureTable()

	stats, err := ProvinceStats(table, "CA")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 1.5, stats.AvgPerCity) // 3 rows, 2 distinct cities
	require.NotEmpty(t, stats.TopCities)
	assert.Equal(t, "Los Angeles", stats.TopCities[0].Name)

	_, err = ProvinceStats(table, "TX")
	require.ErrorIs(t, err, ErrDivisionUndefined)
}

func TestDatasetInfo(t *testing.T) {
	snap := &Snapshot{Table: fixtureTable(), SourceURL: "http://example/x.csv"}
	info := DatasetInfo(snap)
	assert.Equal(t, 4, info.Rows)
	assert.Equal(t, 2, info.Provinces)
	assert.Equal(t, 3, info.Cities)
	assert.Equal(t, 3, info.Chains)
}
