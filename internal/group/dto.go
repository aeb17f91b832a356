package group

import (
	"time"

	"github.com/divvy-app/divvy/internal/ledger"
	"github.com/divvy-app/divvy/internal/money"
)

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateGroupRequest represents the request to rename a group
type UpdateGroupRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

// JoinGroupRequest represents the request to join a group by invite code
type JoinGroupRequest struct {
	Code string `json:"code" validate:"required"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CreatedBy  int64  `json:"created_by"`
	InviteCode string `json:"invite_code"`
	CreatedAt  string `json:"created_at"`
}

// MemberResponse represents a member in a group response
type MemberResponse struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// GroupDetailResponse is the full group view including the requesting
// user's netted debts
type GroupDetailResponse struct {
	GroupResponse
	Members         []*MemberResponse `json:"members"`
	ExpenseCount    int               `json:"expense_count"`
	LastActivityAt  *string           `json:"last_activity_at"`
	OwedByUserTotal money.Money       `json:"owed_by_user_total"`
	OwedToUserTotal money.Money       `json:"owed_to_user_total"`
	OwedByUser      []ledger.DebtItem `json:"owed_by_user"`
	OwedToUser      []ledger.DebtItem `json:"owed_to_user"`
}

// GroupListItemResponse is one entry in a user's group list. Totals come
// from the user's aggregate per-group balance, not the pairwise plan.
type GroupListItemResponse struct {
	GroupResponse
	ExpenseCount    int         `json:"expense_count"`
	LastActivityAt  *string     `json:"last_activity_at"`
	OwedByUserTotal money.Money `json:"owed_by_user_total"`
	OwedToUserTotal money.Money `json:"owed_to_user_total"`
}

// JoinGroupResponse reports the outcome of a join-by-code request
type JoinGroupResponse struct {
	Group         *GroupResponse `json:"group"`
	AlreadyMember bool           `json:"already_member"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:         g.ID,
		Name:       g.Name,
		CreatedBy:  g.CreatedBy,
		InviteCode: g.InviteCode,
		CreatedAt:  g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		UserID: m.UserID,
		Name:   m.Name,
		Email:  m.Email,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02T15:04:05Z")
	return &s
}
