package settlement

import (
	"time"

	"github.com/divvy-app/divvy/internal/money"
)

// Settlement represents a repayment from one group member to another
type Settlement struct {
	ID         int64       `json:"id"`
	GroupID    int64       `json:"group_id"`
	DebtorID   int64       `json:"debtor_id"`
	CreditorID int64       `json:"creditor_id"`
	Amount     money.Money `json:"amount"`
	CreatedAt  time.Time   `json:"created_at"`
}
