package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/divvy-app/divvy/internal/ledger"
	"github.com/divvy-app/divvy/internal/money"
)

var (
	ErrGroupNotFound     = errors.New("group not found")
	ErrSelfSettlement    = errors.New("cannot settle a debt with yourself")
	ErrCreditorNotMember = errors.New("creditor is not a member of this group")
	ErrInvalidAmount     = errors.New("settlement amount must be a positive value")
	ErrNoOutstandingDebt = errors.New("no outstanding debt to this member")
	ErrAmountExceedsDebt = errors.New("settlement amount exceeds the outstanding debt")
)

// Store persists settlements.
type Store interface {
	Create(ctx context.Context, groupID, debtorID, creditorID int64, amount money.Money) (*Settlement, error)
	ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*Settlement, int, error)
}

// Memberships answers membership questions for a group.
type Memberships interface {
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
}

// DebtCalculator computes a user's netted debts within a group.
type DebtCalculator interface {
	UserDebts(ctx context.Context, groupID, userID int64) (ledger.UserDebts, error)
}

// Service handles business logic for settlements
type Service struct {
	store   Store
	members Memberships
	debts   DebtCalculator
}

// NewService creates a new settlement service
func NewService(store Store, members Memberships, debts DebtCalculator) *Service {
	return &Service{store: store, members: members, debts: debts}
}

func (s *Service) requireMember(ctx context.Context, groupID, userID int64) error {
	ok, err := s.members.IsMember(ctx, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !ok {
		return ErrGroupNotFound
	}
	return nil
}

// Create records a repayment from the caller to another member. The
// amount must not exceed what the caller currently owes that member
// after netting, so a group can never be settled past zero.
func (s *Service) Create(ctx context.Context, groupID, debtorID int64, req *CreateSettlementRequest) (*SettlementResponse, error) {
	if err := s.requireMember(ctx, groupID, debtorID); err != nil {
		return nil, err
	}

	if req.CreditorID == debtorID {
		return nil, ErrSelfSettlement
	}

	amount, err := money.FromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	ok, err := s.members.IsMember(ctx, groupID, req.CreditorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !ok {
		return nil, ErrCreditorNotMember
	}

	debts, err := s.debts.UserDebts(ctx, groupID, debtorID)
	if err != nil {
		return nil, err
	}

	var owed money.Money
	for _, item := range debts.OwedBy {
		if item.UserID == req.CreditorID {
			owed = item.Amount
			break
		}
	}
	if owed.IsZero() {
		return nil, ErrNoOutstandingDebt
	}
	if amount > owed {
		return nil, ErrAmountExceedsDebt
	}

	settlement, err := s.store.Create(ctx, groupID, debtorID, req.CreditorID, amount)
	if err != nil {
		return nil, err
	}
	return settlement.ToResponse(), nil
}

// List retrieves one page of a group's settlements, newest first
func (s *Service) List(ctx context.Context, groupID, userID int64, page, perPage int) ([]*SettlementResponse, int, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	settlements, total, err := s.store.ListByGroup(ctx, groupID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*SettlementResponse, 0, len(settlements))
	for _, settlement := range settlements {
		responses = append(responses, settlement.ToResponse())
	}
	return responses, total, nil
}
