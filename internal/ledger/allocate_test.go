package ledger

import (
	"testing"

	"github.com/divvy-app/divvy/internal/money"
)

func TestAllocateSplits(t *testing.T) {
	tests := []struct {
		name       string
		totalCents int64
		memberIDs  []int64
		wantCents  []int64 // in ascending user-id order
	}{
		{
			name:       "even three way",
			totalCents: 1200,
			memberIDs:  []int64{1, 2, 3},
			wantCents:  []int64{400, 400, 400},
		},
		{
			name:       "remainder goes to lowest ids",
			totalCents: 1000,
			memberIDs:  []int64{1, 2, 3},
			wantCents:  []int64{334, 333, 333},
		},
		{
			name:       "two remainder cents",
			totalCents: 1001,
			memberIDs:  []int64{5, 9, 2},
			wantCents:  []int64{334, 334, 333},
		},
		{
			name:       "single member gets everything",
			totalCents: 4550,
			memberIDs:  []int64{7},
			wantCents:  []int64{4550},
		},
		{
			name:       "unsorted input is normalized",
			totalCents: 700,
			memberIDs:  []int64{30, 10, 20},
			wantCents:  []int64{234, 233, 233},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := AllocateSplits(money.FromCents(tt.totalCents), tt.memberIDs)
			if len(shares) != len(tt.wantCents) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.wantCents))
			}

			var sum int64
			for i, share := range shares {
				if share.Amount.Cents() != tt.wantCents[i] {
					t.Errorf("share[%d] = %d cents, want %d", i, share.Amount.Cents(), tt.wantCents[i])
				}
				if i > 0 && shares[i-1].UserID >= share.UserID {
					t.Errorf("shares not in ascending user-id order: %d before %d", shares[i-1].UserID, share.UserID)
				}
				sum += share.Amount.Cents()
			}
			if sum != tt.totalCents {
				t.Errorf("shares sum to %d cents, want %d", sum, tt.totalCents)
			}
		})
	}
}

func TestAllocateSplitsEmptyMembers(t *testing.T) {
	if shares := AllocateSplits(money.FromCents(1000), nil); len(shares) != 0 {
		t.Errorf("expected no shares for empty member set, got %v", shares)
	}
}

// Conservation property: every share is base or base+1 cents and the shares
// always sum back to the total.
func TestAllocateSplitsConservation(t *testing.T) {
	members := []int64{1, 2, 3, 4, 5, 6, 7}
	for totalCents := int64(1); totalCents < 500; totalCents++ {
		for n := 1; n <= len(members); n++ {
			shares := AllocateSplits(money.FromCents(totalCents), members[:n])

			base := totalCents / int64(n)
			var sum int64
			for _, share := range shares {
				cents := share.Amount.Cents()
				if cents != base && cents != base+1 {
					t.Fatalf("total=%d n=%d: share %d not in {%d, %d}", totalCents, n, cents, base, base+1)
				}
				sum += cents
			}
			if sum != totalCents {
				t.Fatalf("total=%d n=%d: shares sum to %d", totalCents, n, sum)
			}
		}
	}
}
