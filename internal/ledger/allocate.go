// Package ledger implements the debt computation engine: split allocation,
// balance aggregation, settlement plan minimization and per-user debt
// netting. Every function here is pure and operates on data already loaded
// from storage; callers are responsible for transactional consistency.
package ledger

import (
	"sort"

	"github.com/divvy-app/divvy/internal/money"
)

// Share is one member's portion of a single expense
type Share struct {
	UserID int64
	Amount money.Money
}

// AllocateSplits partitions a total evenly across the given members in
// integer cents. The first total%n members in ascending user-id order absorb
// the remainder cents, so the shares always sum exactly to the total. An
// empty member set yields no shares.
func AllocateSplits(total money.Money, memberIDs []int64) []Share {
	if len(memberIDs) == 0 {
		return nil
	}

	ids := make([]int64, len(memberIDs))
	copy(ids, memberIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	n := int64(len(ids))
	base := total.Cents() / n
	remainder := total.Cents() % n

	shares := make([]Share, len(ids))
	for i, id := range ids {
		cents := base
		if int64(i) < remainder {
			cents++
		}
		shares[i] = Share{UserID: id, Amount: money.FromCents(cents)}
	}
	return shares
}
