package engine

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"fastfood/internal/models"
)

// Table is the loaded dataset. It is immutable after construction;
// filters return fresh slices, never views that alias mutation.
type Table []models.Restaurant

var requiredColumns = []string{
	"id", "name", "address", "city", "postalCode", "province",
	"latitude", "longitude", "categories",
}

// fetchTable downloads and parses the locations CSV in one pass.
// All-or-nothing: any failure returns a nil table.
func fetchTable(ctx context.Context, client *http.Client, url string) (Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrDataUnavailable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch %s: %s", ErrDataUnavailable, url, resp.Status)
	}
	return parseTable(resp.Body)
}

func parseTable(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows, we index by header below

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty source", ErrDataUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	// The categories column is what the whole dashboard pivots on; its
	// absence is a broken source, not a parse bug.
	if _, ok := col["categories"]; !ok {
		return nil, fmt.Errorf("%w: missing categories column", ErrDataUnavailable)
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	field := func(rec []string, name string) string {
		i := col[name]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows Table
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		lat, _ := strconv.ParseFloat(field(rec, "latitude"), 64)
		lon, _ := strconv.ParseFloat(field(rec, "longitude"), 64)

		rows = append(rows, models.Restaurant{
			ID:         field(rec, "id"),
			Name:       field(rec, "name"),
			Address:    field(rec, "address"),
			City:       field(rec, "city"),
			PostalCode: field(rec, "postalCode"),
			Province:   field(rec, "province"),
			Latitude:   lat,
			Longitude:  lon,
			Categories: normalizeCategory(field(rec, "categories")),
		})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrDataUnavailable)
	}
	return dedupeByID(rows), nil
}

// normalizeCategory trims and lowercases so "  Burgers  " and "burgers"
// group and filter as the same value.
func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// dedupeByID keeps the last occurrence of each id, at its last position
// in file order.
func dedupeByID(rows Table) Table {
	last := make(map[string]int, len(rows))
	for i, r := range rows {
		last[r.ID] = i
	}
	if len(last) == len(rows) {
		return rows
	}
	out := make(Table, 0, len(last))
	for i, r := range rows {
		if last[r.ID] == i {
			out = append(out, r)
		}
	}
	return out
}
