package expense

import (
	"time"

	"github.com/divvy-app/divvy/internal/money"
)

// CreateExpenseRequest represents the request body for creating an expense
type CreateExpenseRequest struct {
	Name        string `json:"name" example:"Dinner"`
	Description string `json:"description" example:"Friday team dinner"`
	Amount      string `json:"amount" example:"45.50"`
}

// UpdateExpenseRequest represents the request body for updating an expense
type UpdateExpenseRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Amount      *string `json:"amount,omitempty"`
}

// SplitResponse represents one member's share in API responses
type SplitResponse struct {
	UserID int64       `json:"user_id"`
	Share  money.Money `json:"share"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          int64           `json:"id"`
	GroupID     int64           `json:"group_id"`
	CreatedBy   int64           `json:"created_by"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      money.Money     `json:"amount"`
	Splits      []SplitResponse `json:"splits,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// ToResponse converts an Expense to an ExpenseResponse
func (e *Expense) ToResponse(splits []*Split) *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		CreatedBy:   e.CreatedBy,
		Name:        e.Name,
		Description: e.Description,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
	for _, s := range splits {
		resp.Splits = append(resp.Splits, SplitResponse{UserID: s.UserID, Share: s.Share})
	}
	return resp
}
