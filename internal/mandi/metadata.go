package mandi

import "slices"

// Metadata holds the derived value sets used to populate selection UIs.
type Metadata struct {
	States           []string            `json:"states"`
	Districts        []string            `json:"districts"`
	Commodities      []string            `json:"commodities"`
	Markets          []string            `json:"markets"`
	DistrictsByState map[string][]string `json:"districtsByState"`
	TotalRecords     int                 `json:"totalRecords"`
}

// ExtractMetadata derives unique, ordinally sorted value sets and a
// state-to-districts index from the full dataset. Empty field values are
// excluded. Pure function over the given snapshot; callers must recompute
// after a dataset reload.
func ExtractMetadata(records []PriceRecord) Metadata {
	md := Metadata{
		States:           uniqueSorted(records, func(r PriceRecord) string { return r.State }),
		Districts:        uniqueSorted(records, func(r PriceRecord) string { return r.District }),
		Commodities:      uniqueSorted(records, func(r PriceRecord) string { return r.Commodity }),
		Markets:          uniqueSorted(records, func(r PriceRecord) string { return r.Market }),
		DistrictsByState: make(map[string][]string),
		TotalRecords:     len(records),
	}

	for _, r := range records {
		if r.State == "" || r.District == "" {
			continue
		}
		if !slices.Contains(md.DistrictsByState[r.State], r.District) {
			md.DistrictsByState[r.State] = append(md.DistrictsByState[r.State], r.District)
		}
	}
	for state := range md.DistrictsByState {
		slices.Sort(md.DistrictsByState[state])
	}

	return md
}

func uniqueSorted(records []PriceRecord, field func(PriceRecord) string) []string {
	seen := make(map[string]struct{}, len(records))
	values := make([]string, 0, len(records))
	for _, r := range records {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}
