package engine

import "strings"

// All is the selector value that leaves a dimension unfiltered.
const All = "All"

// FilterByProvince narrows to exact province matches; All is identity.
func FilterByProvince(t Table, province string) Table {
	if province == All || province == "" {
		return t
	}
	out := make(Table, 0, len(t))
	for _, r := range t {
		if r.Province == province {
			out = append(out, r)
		}
	}
	return out
}

// FilterByCityProvince narrows by city (case-insensitive) and province
// (exact). All short-circuits either dimension; the two predicates are
// on disjoint columns so order does not matter.
func FilterByCityProvince(t Table, city, province string) Table {
	if city == All || city == "" {
		return FilterByProvince(t, province)
	}
	out := make(Table, 0, len(t))
	for _, r := range t {
		if !strings.EqualFold(r.City, city) {
			continue
		}
		if province != All && province != "" && r.Province != province {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterByCategories keeps rows whose normalized category is in the
// selected set; an empty set is identity.
func FilterByCategories(t Table, selected map[string]bool) Table {
	if len(selected) == 0 {
		return t
	}
	out := make(Table, 0, len(t))
	for _, r := range t {
		if selected[r.Categories] {
			out = append(out, r)
		}
	}
	return out
}

// FilterByChains keeps rows whose chain name is in the selected set;
// an empty set is identity.
func FilterByChains(t Table, selected map[string]bool) Table {
	if len(selected) == 0 {
		return t
	}
	out := make(Table, 0, len(t))
	for _, r := range t {
		if selected[r.Name] {
			out = append(out, r)
		}
	}
	return out
}

// Set builds a membership set from selector values, dropping empties.
func Set(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	m := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			m[v] = true
		}
	}
	return m
}
