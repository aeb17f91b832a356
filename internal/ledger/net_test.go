package ledger

import (
	"reflect"
	"testing"

	"github.com/divvy-app/divvy/internal/money"
)

func TestNetUserDebts(t *testing.T) {
	transfers := []Transfer{
		{DebtorID: 3, CreditorID: 1, Amount: money.FromCents(400)},
		{DebtorID: 4, CreditorID: 1, Amount: money.FromCents(100)},
		{DebtorID: 4, CreditorID: 2, Amount: money.FromCents(300)},
	}

	got := NetUserDebts(transfers, 1)
	if got.OwedByTotal.Cents() != 0 {
		t.Errorf("OwedByTotal = %s, want 0.00", got.OwedByTotal)
	}
	if got.OwedToTotal.Cents() != 500 {
		t.Errorf("OwedToTotal = %s, want 5.00", got.OwedToTotal)
	}
	wantOwedTo := []DebtItem{
		{UserID: 3, Amount: money.FromCents(400)},
		{UserID: 4, Amount: money.FromCents(100)},
	}
	if !reflect.DeepEqual(got.OwedTo, wantOwedTo) {
		t.Errorf("OwedTo = %+v, want %+v", got.OwedTo, wantOwedTo)
	}
	if got.OwedBy != nil {
		t.Errorf("OwedBy = %+v, want empty", got.OwedBy)
	}
}

func TestNetUserDebtsDropsFullyNettedPairs(t *testing.T) {
	transfers := []Transfer{
		{DebtorID: 1, CreditorID: 2, Amount: money.FromCents(300)},
		{DebtorID: 2, CreditorID: 1, Amount: money.FromCents(300)},
	}

	got := NetUserDebts(transfers, 1)
	if len(got.OwedBy) != 0 || len(got.OwedTo) != 0 {
		t.Errorf("fully netted pair should yield no items, got %+v", got)
	}
	if !got.OwedByTotal.IsZero() || !got.OwedToTotal.IsZero() {
		t.Errorf("totals should be zero, got %s / %s", got.OwedByTotal, got.OwedToTotal)
	}
}

func TestNetUserDebtsKeepsLargerSide(t *testing.T) {
	transfers := []Transfer{
		{DebtorID: 1, CreditorID: 2, Amount: money.FromCents(500)},
		{DebtorID: 2, CreditorID: 1, Amount: money.FromCents(200)},
	}

	got := NetUserDebts(transfers, 1)
	wantOwedBy := []DebtItem{{UserID: 2, Amount: money.FromCents(300)}}
	if !reflect.DeepEqual(got.OwedBy, wantOwedBy) {
		t.Errorf("OwedBy = %+v, want %+v", got.OwedBy, wantOwedBy)
	}
	if got.OwedByTotal.Cents() != 300 || got.OwedToTotal.Cents() != 0 {
		t.Errorf("totals = %s / %s, want 3.00 / 0.00", got.OwedByTotal, got.OwedToTotal)
	}
}

// Both ends of a two-person transfer must see mirror-image results.
func TestNetUserDebtsSymmetry(t *testing.T) {
	transfers := []Transfer{
		{DebtorID: 2, CreditorID: 1, Amount: money.FromCents(600)},
	}

	creditorView := NetUserDebts(transfers, 1)
	debtorView := NetUserDebts(transfers, 2)

	if len(creditorView.OwedTo) != 1 || len(debtorView.OwedBy) != 1 {
		t.Fatalf("expected single entries, got %+v and %+v", creditorView, debtorView)
	}
	if creditorView.OwedTo[0].Amount != debtorView.OwedBy[0].Amount {
		t.Errorf("amounts differ: %s vs %s", creditorView.OwedTo[0].Amount, debtorView.OwedBy[0].Amount)
	}
	if creditorView.OwedTo[0].UserID != 2 || debtorView.OwedBy[0].UserID != 1 {
		t.Errorf("counterparties wrong: %+v / %+v", creditorView.OwedTo, debtorView.OwedBy)
	}
}

// End-to-end: John pays 12.00 for dinner, Jane pays 6.00 for taxi, three
// members. David owes John 6.00 and Jane is fully netted out.
func TestDebtPipelineDinnerTaxi(t *testing.T) {
	const (
		john  = int64(1)
		jane  = int64(2)
		david = int64(3)
	)
	members := []int64{john, jane, david}

	var splits []SplitRow
	for _, share := range AllocateSplits(money.FromCents(1200), members) {
		splits = append(splits, SplitRow{CreatorID: john, UserID: share.UserID, Share: share.Amount})
	}
	for _, share := range AllocateSplits(money.FromCents(600), members) {
		splits = append(splits, SplitRow{CreatorID: jane, UserID: share.UserID, Share: share.Amount})
	}

	balances := AggregateBalances(splits, nil)
	transfers := MinimizeSettlement(balances)

	want := []Transfer{{DebtorID: david, CreditorID: john, Amount: money.FromCents(600)}}
	if !reflect.DeepEqual(transfers, want) {
		t.Fatalf("plan = %+v, want %+v", transfers, want)
	}

	johnDebts := NetUserDebts(transfers, john)
	if johnDebts.OwedToTotal.Cents() != 600 || johnDebts.OwedByTotal.Cents() != 0 {
		t.Errorf("john totals = %s / %s, want 0.00 owed by, 6.00 owed to",
			johnDebts.OwedByTotal, johnDebts.OwedToTotal)
	}

	janeDebts := NetUserDebts(transfers, jane)
	if len(janeDebts.OwedBy) != 0 || len(janeDebts.OwedTo) != 0 {
		t.Errorf("jane should be fully settled, got %+v", janeDebts)
	}

	// Recording David's payment settles the whole group.
	settlements := []SettlementRow{{DebtorID: david, CreditorID: john, Amount: money.FromCents(600)}}
	if plan := MinimizeSettlement(AggregateBalances(splits, settlements)); len(plan) != 0 {
		t.Errorf("plan after settlement = %+v, want empty", plan)
	}
}
