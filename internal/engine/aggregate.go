package engine

import (
	"sort"

	"fastfood/internal/models"
)

// Key selects a grouping dimension from a record.
type Key func(models.Restaurant) string

var (
	KeyProvince   Key = func(r models.Restaurant) string { return r.Province }
	KeyCity       Key = func(r models.Restaurant) string { return r.City }
	KeyName       Key = func(r models.Restaurant) string { return r.Name }
	KeyCategories Key = func(r models.Restaurant) string { return r.Categories }
)

// CountBy counts rows per dimension value. Callers wanting an order
// sort the result themselves.
func CountBy(t Table, key Key) map[string]int {
	counts := make(map[string]int)
	for _, r := range t {
		counts[key(r)]++
	}
	return counts
}

// Pair is a two-dimension grouping key.
type Pair struct {
	A, B string
}

// CountByPair counts rows per (key1, key2) value pair, the stacked
// category-by-state breakdown.
func CountByPair(t Table, key1, key2 Key) map[Pair]int {
	counts := make(map[Pair]int)
	for _, r := range t {
		counts[Pair{A: key1(r), B: key2(r)}]++
	}
	return counts
}

// TopN returns the n most frequent values of key, descending by count,
// ties in first-seen input order. n defaults to 10.
func TopN(t Table, key Key, n int) []models.GroupCount {
	if n <= 0 {
		n = 10
	}
	counts := make(map[string]int)
	var order []string
	for _, r := range t {
		k := key(r)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]models.GroupCount, 0, len(order))
	for _, k := range order {
		out = append(out, models.GroupCount{Name: k, Count: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// AverageGroupSize is total rows over distinct groups. A table with no
// groups has no defined average; callers guard ErrDivisionUndefined.
func AverageGroupSize(t Table, key Key) (float64, error) {
	groups := make(map[string]struct{})
	for _, r := range t {
		groups[key(r)] = struct{}{}
	}
	if len(groups) == 0 {
		return 0, ErrDivisionUndefined
	}
	return float64(len(t)) / float64(len(groups)), nil
}

// Distinct lists the unique values of key in ascending order, for
// selector option lists.
func Distinct(t Table, key Key) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SortedCounts flattens a CountBy result descending by count, ties by
// name for a stable payload.
func SortedCounts(counts map[string]int) []models.GroupCount {
	out := make([]models.GroupCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, models.GroupCount{Name: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
