package ledger

import (
	"testing"

	"github.com/divvy-app/divvy/internal/money"
)

func TestAggregateBalances(t *testing.T) {
	tests := []struct {
		name        string
		splits      []SplitRow
		settlements []SettlementRow
		want        map[int64]int64 // user id -> expected cents
	}{
		{
			name: "self splits contribute nothing",
			splits: []SplitRow{
				{CreatorID: 1, UserID: 1, Share: money.FromCents(400)},
			},
			want: map[int64]int64{},
		},
		{
			name: "creator is owed each share",
			splits: []SplitRow{
				{CreatorID: 1, UserID: 1, Share: money.FromCents(400)},
				{CreatorID: 1, UserID: 2, Share: money.FromCents(400)},
				{CreatorID: 1, UserID: 3, Share: money.FromCents(400)},
			},
			want: map[int64]int64{1: 800, 2: -400, 3: -400},
		},
		{
			name: "two expenses net against each other",
			splits: []SplitRow{
				// John pays 12.00 three ways.
				{CreatorID: 1, UserID: 1, Share: money.FromCents(400)},
				{CreatorID: 1, UserID: 2, Share: money.FromCents(400)},
				{CreatorID: 1, UserID: 3, Share: money.FromCents(400)},
				// Jane pays 6.00 three ways.
				{CreatorID: 2, UserID: 1, Share: money.FromCents(200)},
				{CreatorID: 2, UserID: 2, Share: money.FromCents(200)},
				{CreatorID: 2, UserID: 3, Share: money.FromCents(200)},
			},
			want: map[int64]int64{1: 600, 2: 0, 3: -600},
		},
		{
			name: "settlement shrinks both sides",
			splits: []SplitRow{
				{CreatorID: 1, UserID: 2, Share: money.FromCents(600)},
			},
			settlements: []SettlementRow{
				{DebtorID: 2, CreditorID: 1, Amount: money.FromCents(250)},
			},
			want: map[int64]int64{1: 350, 2: -350},
		},
		{
			name: "full settlement zeroes the pair",
			splits: []SplitRow{
				{CreatorID: 1, UserID: 2, Share: money.FromCents(600)},
			},
			settlements: []SettlementRow{
				{DebtorID: 2, CreditorID: 1, Amount: money.FromCents(600)},
			},
			want: map[int64]int64{1: 0, 2: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := AggregateBalances(tt.splits, tt.settlements)

			var sum int64
			for userID, balance := range balances {
				sum += balance.Cents()
				want, ok := tt.want[userID]
				if !ok {
					if !balance.IsZero() {
						t.Errorf("unexpected non-zero balance for user %d: %s", userID, balance)
					}
					continue
				}
				if balance.Cents() != want {
					t.Errorf("balance[%d] = %d cents, want %d", userID, balance.Cents(), want)
				}
			}
			if sum != 0 {
				t.Errorf("balances sum to %d cents, want 0", sum)
			}
		})
	}
}

func TestDebtTotalsFromBalance(t *testing.T) {
	tests := []struct {
		balance    int64
		wantOwedBy int64
		wantOwedTo int64
	}{
		{balance: 600, wantOwedBy: 0, wantOwedTo: 600},
		{balance: -600, wantOwedBy: 600, wantOwedTo: 0},
		{balance: 0, wantOwedBy: 0, wantOwedTo: 0},
	}

	for _, tt := range tests {
		owedBy, owedTo := DebtTotalsFromBalance(money.FromCents(tt.balance))
		if owedBy.Cents() != tt.wantOwedBy || owedTo.Cents() != tt.wantOwedTo {
			t.Errorf("DebtTotalsFromBalance(%d) = (%d, %d), want (%d, %d)",
				tt.balance, owedBy.Cents(), owedTo.Cents(), tt.wantOwedBy, tt.wantOwedTo)
		}
	}
}
