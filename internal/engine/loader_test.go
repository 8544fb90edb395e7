package engine

import (
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `id,name,address,city,postalCode,province,latitude,longitude,categories
r1,McDonald's,"1 Main St, Suite 2",Los Angeles,90001,CA,34.05,-118.24,  Burgers
r2,Taco Bell,2 Elm St,San Diego,92101,CA,32.71,-117.16,  Mexican
r3,Subway,3 Oak St,Albany,12203,NY,42.65,-73.75,Sandwiches
r1,McDonald's,9 New St,Fresno,93701,CA,36.74,-119.78,Burgers
`

func TestParseTable(t *testing.T) {
	table, err := parseTable(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}

	// r1 appears twice; the later row wins and keeps its position.
	if len(table) != 3 {
		t.Fatalf("expected 3 rows after dedupe, got %d", len(table))
	}
	last := table[len(table)-1]
	if last.ID != "r1" || last.City != "Fresno" {
		t.Errorf("dedupe should keep the last r1 occurrence, got %+v", last)
	}

	// Quoted commas stay inside the field.
	for _, r := range table {
		if r.ID == "r2" && r.Address != "2 Elm St" {
			t.Errorf("r2 address mangled: %q", r.Address)
		}
	}

	// Categories are trimmed and lowercased.
	if table[0].Categories != "mexican" {
		t.Errorf("expected normalized category %q, got %q", "mexican", table[0].Categories)
	}
	if last.Categories != "burgers" {
		t.Errorf("expected normalized category %q, got %q", "burgers", last.Categories)
	}

	if table[0].Latitude != 32.71 || table[0].Longitude != -117.16 {
		t.Errorf("r2 coordinates wrong: %f,%f", table[0].Latitude, table[0].Longitude)
	}
}

func TestParseTableEmptySource(t *testing.T) {
	_, err := parseTable(strings.NewReader(""))
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestParseTableHeaderOnly(t *testing.T) {
	_, err := parseTable(strings.NewReader("id,name,address,city,postalCode,province,latitude,longitude,categories\n"))
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestParseTableMissingCategories(t *testing.T) {
	csv := "id,name,address,city,postalCode,province,latitude,longitude\nr1,A,addr,LA,90001,CA,1,2\n"
	_, err := parseTable(strings.NewReader(csv))
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable for missing categories, got %v", err)
	}
}

func TestParseTableMissingOtherColumn(t *testing.T) {
	// A missing non-categories column is a parse failure, not
	// "unavailable".
	csv := "id,name,city,postalCode,province,latitude,longitude,categories\nr1,A,LA,90001,CA,1,2,burgers\n"
	_, err := parseTable(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for missing address column")
	}
	if errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("missing address should not map to ErrDataUnavailable: %v", err)
	}
}

func TestNormalizeCategory(t *testing.T) {
	if got := normalizeCategory("  Burgers  "); got != "burgers" {
		t.Errorf("expected %q, got %q", "burgers", got)
	}
}
