package ledger

import "github.com/divvy-app/divvy/internal/money"

// SplitRow is the slice of an expense split needed for balance math: who
// paid for the expense, who holds the share, and how much the share is.
type SplitRow struct {
	CreatorID int64
	UserID    int64
	Share     money.Money
}

// SettlementRow is one recorded payment between two group members
type SettlementRow struct {
	DebtorID   int64
	CreditorID int64
	Amount     money.Money
}

// AggregateBalances computes each user's signed net position from a group's
// splits and settlements. Positive means the user is owed money, negative
// means they owe. Splits held by the expense creator are self-debt and
// contribute nothing. Settlements shrink the debtor's debt and the
// creditor's outstanding credit, so the sum over all users is always zero.
func AggregateBalances(splits []SplitRow, settlements []SettlementRow) map[int64]money.Money {
	balances := make(map[int64]money.Money)

	for _, s := range splits {
		if s.UserID == s.CreatorID {
			continue
		}
		balances[s.CreatorID] += s.Share
		balances[s.UserID] -= s.Share
	}

	for _, s := range settlements {
		balances[s.DebtorID] += s.Amount
		balances[s.CreditorID] -= s.Amount
	}

	return balances
}

// DebtTotalsFromBalance classifies a user's net balance into the pair of
// totals shown in list views. Only one side is ever non-zero. This skips
// pairwise minimization on purpose: a list view needs the user's aggregate
// exposure per group, not who specifically owes whom.
func DebtTotalsFromBalance(balance money.Money) (owedBy, owedTo money.Money) {
	switch {
	case balance.IsPositive():
		return 0, balance
	case balance < 0:
		return balance.Neg(), 0
	default:
		return 0, 0
	}
}
