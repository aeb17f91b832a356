package expense

import (
	"time"

	"github.com/divvy-app/divvy/internal/money"
)

// Expense represents a shared expense in a group
type Expense struct {
	ID          int64       `json:"id"`
	GroupID     int64       `json:"group_id"`
	CreatedBy   int64       `json:"created_by"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Amount      money.Money `json:"amount"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Split represents one member's share of an expense
type Split struct {
	ID        int64       `json:"id"`
	ExpenseID int64       `json:"expense_id"`
	UserID    int64       `json:"user_id"`
	Share     money.Money `json:"share"`
}
