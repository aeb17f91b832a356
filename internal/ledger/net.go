package ledger

import (
	"sort"

	"github.com/divvy-app/divvy/internal/money"
)

// DebtItem is one counterparty entry in a user's debt view
type DebtItem struct {
	UserID int64       `json:"user_id"`
	Amount money.Money `json:"amount"`
}

// UserDebts is a single user's view of a group's settlement plan: what they
// owe to others and what others owe them, netted per counterparty.
type UserDebts struct {
	OwedByTotal money.Money
	OwedToTotal money.Money
	OwedBy      []DebtItem
	OwedTo      []DebtItem
}

// NetUserDebts extracts one user's view from a settlement plan. Transfers
// where the user is debtor accumulate as owed-by, transfers where the user
// is creditor as owed-to, keyed by counterparty. When both directions carry
// the same amount for a counterparty the pair nets to nothing and is
// dropped; otherwise only the larger side's difference survives. Both lists
// sort descending by amount with ascending user-id tie-break.
func NetUserDebts(transfers []Transfer, userID int64) UserDebts {
	owedByRaw := make(map[int64]money.Money)
	owedToRaw := make(map[int64]money.Money)
	for _, t := range transfers {
		switch userID {
		case t.DebtorID:
			owedByRaw[t.CreditorID] += t.Amount
		case t.CreditorID:
			owedToRaw[t.DebtorID] += t.Amount
		}
	}

	var debts UserDebts
	for otherID := range union(owedByRaw, owedToRaw) {
		owedBy := owedByRaw[otherID]
		owedTo := owedToRaw[otherID]
		switch {
		case owedBy == owedTo:
			// Fully netted, nothing to display.
		case owedBy > owedTo:
			net := owedBy - owedTo
			debts.OwedBy = append(debts.OwedBy, DebtItem{UserID: otherID, Amount: net})
			debts.OwedByTotal += net
		default:
			net := owedTo - owedBy
			debts.OwedTo = append(debts.OwedTo, DebtItem{UserID: otherID, Amount: net})
			debts.OwedToTotal += net
		}
	}

	sortDebtItems(debts.OwedBy)
	sortDebtItems(debts.OwedTo)
	return debts
}

func union(a, b map[int64]money.Money) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(a)+len(b))
	for id := range a {
		ids[id] = struct{}{}
	}
	for id := range b {
		ids[id] = struct{}{}
	}
	return ids
}

func sortDebtItems(items []DebtItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Amount != items[j].Amount {
			return items[i].Amount > items[j].Amount
		}
		return items[i].UserID < items[j].UserID
	})
}
