package mandi

import "strings"

// Filter returns the records matching q. A record matches when every
// non-empty query field is a case-insensitive substring of the record's
// corresponding field; omitted fields act as wildcards. Input order is
// preserved and the input slice is never mutated.
func Filter(records []PriceRecord, q Query) []PriceRecord {
	matched := make([]PriceRecord, 0, len(records))
	for _, r := range records {
		if !contains(r.Commodity, q.Commodity) {
			continue
		}
		if !contains(r.State, q.State) {
			continue
		}
		if !contains(r.District, q.District) {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

func contains(field, want string) bool {
	if want == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(want))
}
