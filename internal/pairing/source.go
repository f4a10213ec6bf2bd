package pairing

import (
	"fmt"
	"sort"
)

// AdjacentGroups sorts album assets by effective name and pairs each asset
// with its successor. An album of n assets yields n-1 overlapping groups, so
// a single asset can appear in two candidate groups.
func AdjacentGroups(label string, assets []Asset) []Group {
	if len(assets) < 2 {
		return nil
	}
	sorted := make([]Asset, len(assets))
	copy(sorted, assets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name() < sorted[j].Name()
	})

	groups := make([]Group, 0, len(sorted)-1)
	for i := 0; i+1 < len(sorted); i++ {
		groups = append(groups, Group{
			Key:    fmt.Sprintf("%s[%d]", label, i),
			Assets: []Asset{sorted[i], sorted[i+1]},
		})
	}
	return groups
}
