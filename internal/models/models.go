package models

import "time"

// Restaurant is one cleaned row of the locations dataset.
// Categories is stored trimmed and lowercased so filter membership
// and grouping compare exact values.
type Restaurant struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	PostalCode string  `json:"postalCode"`
	Province   string  `json:"province"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Categories string  `json:"categories"`
}

type GroupCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PairCount is one cell of the province-by-category breakdown.
type PairCount struct {
	Province string `json:"province"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type MapPoint struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	Province      string  `json:"province"`
	PostalCode    string  `json:"postalCode"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	ProvinceCount int     `json:"province_count"`
}

// Dashboard carries every render-ready table for one selector state.
type Dashboard struct {
	Rows              int          `json:"rows"`
	Restaurants       []Restaurant `json:"restaurants"`
	ProvinceCounts    []GroupCount `json:"province_counts"`
	CategoryCounts    []GroupCount `json:"category_counts"`
	CategoryBreakdown []PairCount  `json:"category_breakdown"`
	TopChains         []GroupCount `json:"top_chains"`
	MapPoints         []MapPoint   `json:"map_points"`
	TopChainPoints    []MapPoint   `json:"top_chain_points"`
}

type DatasetInfo struct {
	SnapshotID string    `json:"snapshot_id"`
	SourceURL  string    `json:"source_url"`
	LoadedAt   time.Time `json:"loaded_at"`
	Rows       int       `json:"rows"`
	Provinces  int       `json:"provinces"`
	Cities     int       `json:"cities"`
	Chains     int       `json:"chains"`
}

// ProvinceStats is the per-state analysis panel.
type ProvinceStats struct {
	Province      string       `json:"province"`
	Rows          int          `json:"rows"`
	TopCities     []GroupCount `json:"top_cities"`
	TopChains     []GroupCount `json:"top_chains"`
	TopCategories []GroupCount `json:"top_categories"`
	AvgPerCity    float64      `json:"avg_per_city"`
}
