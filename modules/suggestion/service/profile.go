package service

import (
	"math"
	"sort"

	"group-planner/modules/suggestion/entity"
)

// BuildProfile aggregates member preferences into a per-category consensus.
// Unknown category strings are ignored; each member counts at most once per
// category even if their row repeats it. Result is sorted by count
// descending, ties broken by category ID for determinism.
func BuildProfile(prefs []entity.MemberLocationPreference, totalMembers int) *entity.GroupPreferenceProfile {
	counts := make(map[entity.CategoryID]int)
	for _, p := range prefs {
		seen := make(map[entity.CategoryID]bool)
		for _, raw := range p.Preferences {
			id := entity.CategoryID(raw)
			if !entity.IsKnownCategory(id) || seen[id] {
				continue
			}
			seen[id] = true
			counts[id]++
		}
	}

	categories := make([]entity.CategoryCount, 0, len(counts))
	for id, count := range counts {
		pct := 0
		if totalMembers > 0 {
			pct = int(math.Round(100 * float64(count) / float64(totalMembers)))
		}
		categories = append(categories, entity.CategoryCount{
			Category:   id,
			Count:      count,
			Percentage: pct,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Category < categories[j].Category
	})

	return &entity.GroupPreferenceProfile{
		TotalMembers: totalMembers,
		Categories:   categories,
	}
}
