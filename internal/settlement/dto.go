package settlement

import (
	"time"

	"github.com/divvy-app/divvy/internal/money"
)

// CreateSettlementRequest represents the request body for recording a repayment
type CreateSettlementRequest struct {
	CreditorID int64  `json:"creditor_id" example:"2"`
	Amount     string `json:"amount" example:"6.00"`
}

// SettlementResponse represents a settlement in API responses
type SettlementResponse struct {
	ID         int64       `json:"id"`
	GroupID    int64       `json:"group_id"`
	DebtorID   int64       `json:"debtor_id"`
	CreditorID int64       `json:"creditor_id"`
	Amount     money.Money `json:"amount"`
	CreatedAt  string      `json:"created_at"`
}

// ToResponse converts a Settlement to a SettlementResponse
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:         s.ID,
		GroupID:    s.GroupID,
		DebtorID:   s.DebtorID,
		CreditorID: s.CreditorID,
		Amount:     s.Amount,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
	}
}
