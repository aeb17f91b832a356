package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/divvy-app/divvy/internal/ledger"
	"github.com/divvy-app/divvy/internal/money"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrNotCreator      = errors.New("only the expense creator can do this")
	ErrInvalidName     = errors.New("expense name must be between 1 and 100 characters")
	ErrInvalidAmount   = errors.New("expense amount must be a positive value")
)

// Memberships answers membership questions for a group.
type Memberships interface {
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	ListMemberIDs(ctx context.Context, groupID int64) ([]int64, error)
}

// Service handles business logic for expenses
type Service struct {
	repo    *Repository
	members Memberships
}

// NewService creates a new expense service
func NewService(repo *Repository, members Memberships) *Service {
	return &Service{repo: repo, members: members}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return "", ErrInvalidName
	}
	return name, nil
}

func parseAmount(raw string) (money.Money, error) {
	amount, err := money.FromString(raw)
	if err != nil || !amount.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return amount, nil
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

// Create records an expense and splits it equally among the group's
// current members. The remainder cents of an uneven division go to the
// members with the lowest user IDs, so the splits always sum to the
// expense amount.
func (s *Service) Create(ctx context.Context, groupID, userID int64, req *CreateExpenseRequest) (*ExpenseResponse, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.members.ListMemberIDs(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}

	shares := ledger.AllocateSplits(amount, memberIDs)

	expense, err := s.repo.Create(ctx, groupID, userID, name, strings.TrimSpace(req.Description), amount, shares)
	if err != nil {
		return nil, err
	}

	splits := make([]*Split, 0, len(shares))
	for _, sh := range shares {
		splits = append(splits, &Split{ExpenseID: expense.ID, UserID: sh.UserID, Share: sh.Amount})
	}
	return expense.ToResponse(splits), nil
}

// Get retrieves an expense with its splits; the caller must be a group member
func (s *Service) Get(ctx context.Context, groupID, expenseID, userID int64) (*ExpenseResponse, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	expense, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil || expense.GroupID != groupID {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplits(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	return expense.ToResponse(splits), nil
}

// List retrieves one page of a group's expenses, newest first
func (s *Service) List(ctx context.Context, groupID, userID int64, page, perPage int) ([]*ExpenseResponse, int, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	expenses, total, err := s.repo.ListByGroup(ctx, groupID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, e.ToResponse(nil))
	}
	return responses, total, nil
}

// Update modifies an expense. Only the creator may update it. Changing
// the amount does not regenerate the splits; the original shares stand.
func (s *Service) Update(ctx context.Context, groupID, expenseID, userID int64, req *UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.getOwned(ctx, groupID, expenseID, userID)
	if err != nil {
		return nil, err
	}

	name := expense.Name
	description := expense.Description
	amount := expense.Amount

	if req.Name != nil {
		if name, err = validateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		if amount, err = parseAmount(*req.Amount); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, expenseID, name, description, amount)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplits(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(splits), nil
}

// Delete removes an expense. Only the creator may delete it.
func (s *Service) Delete(ctx context.Context, groupID, expenseID, userID int64) error {
	if _, err := s.getOwned(ctx, groupID, expenseID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, expenseID)
}

func (s *Service) getOwned(ctx context.Context, groupID, expenseID, userID int64) (*Expense, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	expense, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil || expense.GroupID != groupID {
		return nil, ErrExpenseNotFound
	}
	if expense.CreatedBy != userID {
		return nil, ErrNotCreator
	}
	return expense, nil
}
