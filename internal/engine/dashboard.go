package engine

import (
	"math/rand"
	"sort"

	"fastfood/internal/models"
)

// Selection is the full selector state of the dashboard widgets.
type Selection struct {
	Province   string
	City       string
	Categories []string
	Chains     []string
}

// Apply threads the table through every filter. Filters commute, so
// the order here is convention, not correctness.
func (sel Selection) Apply(t Table) Table {
	t = FilterByProvince(t, sel.Province)
	t = FilterByCityProvince(t, sel.City, sel.Province)
	t = FilterByCategories(t, Set(sel.Categories))
	t = FilterByChains(t, Set(sel.Chains))
	return t
}

// BuildDashboard derives every render-ready table from one selector
// state. Pure: same snapshot and selection, same payload. mapMax caps
// the map payloads via a deterministic sample.
func BuildDashboard(t Table, sel Selection, mapMax int) *models.Dashboard {
	view := sel.Apply(t)

	topChains := TopN(view, KeyName, 10)
	chainSet := make(map[string]bool, len(topChains))
	for _, g := range topChains {
		chainSet[g.Name] = true
	}

	return &models.Dashboard{
		Rows:              len(view),
		Restaurants:       view,
		ProvinceCounts:    SortedCounts(CountBy(view, KeyProvince)),
		CategoryCounts:    SortedCounts(CountBy(view, KeyCategories)),
		CategoryBreakdown: breakdown(view),
		TopChains:         topChains,
		MapPoints:         MapPoints(view, mapMax),
		// The top-chain map draws from the whole dataset, not the
		// filtered view, matching the source dashboards.
		TopChainPoints: MapPoints(FilterByChains(t, chainSet), mapMax),
	}
}

// DatasetInfo summarizes a snapshot for the info panel.
func DatasetInfo(snap *Snapshot) models.DatasetInfo {
	return models.DatasetInfo{
		SnapshotID: snap.ID.String(),
		SourceURL:  snap.SourceURL,
		LoadedAt:   snap.LoadedAt,
		Rows:       len(snap.Table),
		Provinces:  len(Distinct(snap.Table, KeyProvince)),
		Cities:     len(Distinct(snap.Table, KeyCity)),
		Chains:     len(Distinct(snap.Table, KeyName)),
	}
}

// ProvinceStats builds the per-state analysis: top cities, top chains,
// top categories, and average locations per city.
func ProvinceStats(t Table, province string) (models.ProvinceStats, error) {
	view := FilterByProvince(t, province)
	stats := models.ProvinceStats{
		Province:      province,
		Rows:          len(view),
		TopCities:     TopN(view, KeyCity, 10),
		TopChains:     TopN(view, KeyName, 10),
		TopCategories: TopN(view, KeyCategories, 5),
	}
	avg, err := AverageGroupSize(view, KeyCity)
	if err != nil {
		return stats, err
	}
	stats.AvgPerCity = avg
	return stats, nil
}

// mapSeed keeps repeated map requests returning the same sample.
const mapSeed = 42

// MapPoints projects rows to map markers, each carrying its province's
// location count. When the view exceeds max, a seeded sample keeps the
// payload bounded without the marker set shifting between requests.
func MapPoints(t Table, max int) []models.MapPoint {
	rows := t
	if max > 0 && len(t) > max {
		rng := rand.New(rand.NewSource(mapSeed))
		idx := rng.Perm(len(t))[:max]
		sort.Ints(idx)
		rows = make(Table, 0, max)
		for _, i := range idx {
			rows = append(rows, t[i])
		}
	}
	provinceCounts := CountBy(t, KeyProvince)
	out := make([]models.MapPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.MapPoint{
			Name:          r.Name,
			Address:       r.Address,
			City:          r.City,
			Province:      r.Province,
			PostalCode:    r.PostalCode,
			Latitude:      r.Latitude,
			Longitude:     r.Longitude,
			ProvinceCount: provinceCounts[r.Province],
		})
	}
	return out
}

func breakdown(t Table) []models.PairCount {
	counts := CountByPair(t, KeyProvince, KeyCategories)
	out := make([]models.PairCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, models.PairCount{Province: k.A, Category: k.B, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Province != out[j].Province {
			return out[i].Province < out[j].Province
		}
		return out[i].Category < out[j].Category
	})
	return out
}
