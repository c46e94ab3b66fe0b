// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package recommend

import "sort"

// SortScoredItems orders scored items deterministically: score descending,
// then display order ascending, then title ascending. Insertion order never
// influences the result.
func SortScoredItems(items []ScoredItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Item.DisplayOrder != b.Item.DisplayOrder {
			return a.Item.DisplayOrder < b.Item.DisplayOrder
		}
		return a.Item.Title < b.Item.Title
	})
}

// SelectTopK walks a sorted list and greedily accepts up to k items while no
// kind exceeds perKindCap. Items skipped for exceeding their cap are not
// revisited (first-fit, not optimal-fit), keeping selection O(n). A cap of
// zero or below disables the cap (single-kind requests).
func SelectTopK(items []ScoredItem, k, perKindCap int) []ScoredItem {
	if k <= 0 {
		return []ScoredItem{}
	}
	if k > len(items) && perKindCap <= 0 {
		out := make([]ScoredItem, len(items))
		copy(out, items)
		return out
	}

	out := make([]ScoredItem, 0, min(k, len(items)))
	kindCounts := make(map[ItemKind]int, 3)

	for i := range items {
		if len(out) >= k {
			break
		}
		kind := items[i].Item.Kind
		if perKindCap > 0 && kindCounts[kind] >= perKindCap {
			continue
		}
		kindCounts[kind]++
		out = append(out, items[i])
	}

	return out
}
