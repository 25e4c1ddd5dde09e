package core

import (
	"cmp"
	"slices"
)

// sortByTokenID returns a stably sorted copy; items without a token id go last.
func sortByTokenID(items []Item) []Item {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, compareTokenID)
	return sorted
}

func compareTokenID(a, b Item) int {
	switch {
	case a.TokenID == nil && b.TokenID == nil:
		return 0
	case a.TokenID == nil:
		return 1
	case b.TokenID == nil:
		return -1
	}
	return cmp.Compare(*a.TokenID, *b.TokenID)
}
