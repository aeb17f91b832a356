package ledger

import (
	"sort"

	"github.com/divvy-app/divvy/internal/money"
)

// Transfer is one edge of a minimized settlement plan
type Transfer struct {
	DebtorID   int64
	CreditorID int64
	Amount     money.Money
}

type party struct {
	userID int64
	amount money.Money
}

// MinimizeSettlement converts per-user net balances into a short list of
// pairwise transfers that clears every balance. It greedily matches the
// largest remaining debtor against the largest remaining creditor, which
// bounds the plan at n-1 transfers for n non-zero participants. The greedy
// plan is not provably minimal in adversarial topologies; that limitation is
// deliberate, exact minimization is NP-hard.
//
// Sorting is by descending amount with ascending user-id tie-break on both
// sides, so equal inputs always produce the identical plan.
func MinimizeSettlement(balances map[int64]money.Money) []Transfer {
	var debtors, creditors []party
	for userID, balance := range balances {
		switch {
		case balance.IsPositive():
			creditors = append(creditors, party{userID: userID, amount: balance})
		case balance < 0:
			debtors = append(debtors, party{userID: userID, amount: balance.Neg()})
		}
	}

	sortParties(debtors)
	sortParties(creditors)

	var transfers []Transfer
	di, ci := 0, 0
	for di < len(debtors) && ci < len(creditors) {
		debtor := &debtors[di]
		creditor := &creditors[ci]

		amount := debtor.amount
		if creditor.amount < amount {
			amount = creditor.amount
		}
		if amount.IsPositive() {
			transfers = append(transfers, Transfer{
				DebtorID:   debtor.userID,
				CreditorID: creditor.userID,
				Amount:     amount,
			})
		}

		debtor.amount -= amount
		creditor.amount -= amount
		if debtor.amount.IsZero() {
			di++
		}
		if creditor.amount.IsZero() {
			ci++
		}
	}

	return transfers
}

func sortParties(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].amount != parties[j].amount {
			return parties[i].amount > parties[j].amount
		}
		return parties[i].userID < parties[j].userID
	})
}
