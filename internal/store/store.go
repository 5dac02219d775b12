// Package store implements ledger.Store on PostgreSQL and in memory.
package store

import (
	"slices"
)

// lockOrder returns ids sorted ascending with duplicates removed. Every
// unit acquires account locks in this order.
func lockOrder(ids []int64) []int64 {
	ordered := slices.Clone(ids)
	slices.Sort(ordered)
	return slices.Compact(ordered)
}
