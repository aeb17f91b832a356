package group

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/divvy-app/divvy/internal/ledger"
	"github.com/divvy-app/divvy/internal/money"
)

// Common errors
var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrNotMember        = errors.New("not a member of this group")
	ErrNotOwner         = errors.New("only the group owner can do this")
	ErrOwnerCannotLeave = errors.New("the group owner cannot leave the group")
	ErrInvalidGroupName = errors.New("group name must not be empty")
	ErrInviteCodeTaken  = errors.New("could not generate a unique invite code")
)

// SplitSource supplies a group's expense split rows for balance math
type SplitSource interface {
	SplitRowsByGroup(ctx context.Context, groupID int64) ([]ledger.SplitRow, error)
}

// SettlementSource supplies a group's settlement rows for balance math
type SettlementSource interface {
	SettlementRowsByGroup(ctx context.Context, groupID int64) ([]ledger.SettlementRow, error)
}

// Store persists groups and memberships.
type Store interface {
	Create(ctx context.Context, name string, createdBy int64, inviteCode string) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
	GetByInviteCode(ctx context.Context, code string) (*Group, error)
	Update(ctx context.Context, id int64, name string) (*Group, error)
	Delete(ctx context.Context, id int64) error
	AddMember(ctx context.Context, groupID, userID int64) error
	RemoveMember(ctx context.Context, groupID, userID int64) error
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	GetMembers(ctx context.Context, groupID int64) ([]*Member, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Group, int, error)
	ExpenseCounts(ctx context.Context, groupIDs []int64) (map[int64]int, error)
	LastActivityByGroup(ctx context.Context, groupIDs []int64) (map[int64]*time.Time, error)
	UserBalancesByGroup(ctx context.Context, groupIDs []int64, userID int64) (map[int64]money.Money, error)
}

// Service handles group business logic
type Service struct {
	store       Store
	splits      SplitSource
	settlements SettlementSource
}

// NewService creates a new group service with dependencies injected
func NewService(store Store, splits SplitSource, settlements SettlementSource) *Service {
	return &Service{store: store, splits: splits, settlements: settlements}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return "", ErrInvalidGroupName
	}
	return name, nil
}

// Create creates a new group with a unique invite code and makes the
// creator its first member
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateGroupRequest) (*Group, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	code, err := s.uniqueInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	return s.store.Create(ctx, name, creatorID, code)
}

func (s *Service) uniqueInviteCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code := GenerateInviteCode()
		existing, err := s.store.GetByInviteCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", ErrInviteCodeTaken
}

// memberGroup loads a group and verifies membership. Non-members get
// ErrGroupNotFound rather than a membership error so group existence is
// not leaked.
func (s *Service) memberGroup(ctx context.Context, groupID, userID int64) (*Group, error) {
	group, err := s.store.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	isMember, err := s.store.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// GetDetail returns the full group view for a member, including everyone's
// membership and the requesting user's netted debts
func (s *Service) GetDetail(ctx context.Context, groupID, userID int64) (*GroupDetailResponse, error) {
	group, err := s.memberGroup(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	members, err := s.store.GetMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	counts, err := s.store.ExpenseCounts(ctx, []int64{groupID})
	if err != nil {
		return nil, err
	}
	activity, err := s.store.LastActivityByGroup(ctx, []int64{groupID})
	if err != nil {
		return nil, err
	}

	debts, err := s.UserDebts(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	detail := &GroupDetailResponse{
		GroupResponse:   *group.ToResponse(),
		Members:         make([]*MemberResponse, len(members)),
		ExpenseCount:    counts[groupID],
		LastActivityAt:  formatTimePtr(activity[groupID]),
		OwedByUserTotal: debts.OwedByTotal,
		OwedToUserTotal: debts.OwedToTotal,
		OwedByUser:      debts.OwedBy,
		OwedToUser:      debts.OwedTo,
	}
	if detail.OwedByUser == nil {
		detail.OwedByUser = []ledger.DebtItem{}
	}
	if detail.OwedToUser == nil {
		detail.OwedToUser = []ledger.DebtItem{}
	}
	for i, m := range members {
		detail.Members[i] = m.ToResponse()
	}
	return detail, nil
}

// UserDebts recomputes the group's minimized settlement plan from the
// ledger and extracts the given user's netted view of it
func (s *Service) UserDebts(ctx context.Context, groupID, userID int64) (ledger.UserDebts, error) {
	splits, err := s.splits.SplitRowsByGroup(ctx, groupID)
	if err != nil {
		return ledger.UserDebts{}, err
	}
	settlements, err := s.settlements.SettlementRowsByGroup(ctx, groupID)
	if err != nil {
		return ledger.UserDebts{}, err
	}

	balances := ledger.AggregateBalances(splits, settlements)
	transfers := ledger.MinimizeSettlement(balances)
	return ledger.NetUserDebts(transfers, userID), nil
}

// ListMine returns the user's groups with per-group debt totals. Totals
// come from the user's own net balance per group; the pairwise plan is not
// needed for a list view.
func (s *Service) ListMine(ctx context.Context, userID int64, page, perPage int) ([]*GroupListItemResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 12
	}
	offset := (page - 1) * perPage

	groups, total, err := s.store.ListByUserID(ctx, userID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	groupIDs := make([]int64, len(groups))
	for i, g := range groups {
		groupIDs[i] = g.ID
	}

	counts, err := s.store.ExpenseCounts(ctx, groupIDs)
	if err != nil {
		return nil, 0, err
	}
	activity, err := s.store.LastActivityByGroup(ctx, groupIDs)
	if err != nil {
		return nil, 0, err
	}
	balances, err := s.store.UserBalancesByGroup(ctx, groupIDs, userID)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*GroupListItemResponse, len(groups))
	for i, g := range groups {
		owedBy, owedTo := ledger.DebtTotalsFromBalance(balances[g.ID])
		items[i] = &GroupListItemResponse{
			GroupResponse:   *g.ToResponse(),
			ExpenseCount:    counts[g.ID],
			LastActivityAt:  formatTimePtr(activity[g.ID]),
			OwedByUserTotal: owedBy,
			OwedToUserTotal: owedTo,
		}
	}
	return items, total, nil
}

// Update renames a group; only the owner may do this
func (s *Service) Update(ctx context.Context, groupID, userID int64, req *UpdateGroupRequest) (*Group, error) {
	group, err := s.memberGroup(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if group.CreatedBy != userID {
		return nil, ErrNotOwner
	}

	if req.Name == nil {
		return group, nil
	}
	name, err := validateName(*req.Name)
	if err != nil {
		return nil, err
	}
	return s.store.Update(ctx, groupID, name)
}

// Delete removes a group and everything it owns; only the owner may do this
func (s *Service) Delete(ctx context.Context, groupID, userID int64) error {
	group, err := s.memberGroup(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if group.CreatedBy != userID {
		return ErrNotOwner
	}
	return s.store.Delete(ctx, groupID)
}

// JoinByCode adds the user to the group behind an invite code. Joining a
// group the user already belongs to is a no-op: membership is not
// duplicated and balances are untouched.
func (s *Service) JoinByCode(ctx context.Context, userID int64, code string) (*Group, bool, error) {
	group, err := s.store.GetByInviteCode(ctx, NormalizeInviteCode(code))
	if err != nil {
		return nil, false, err
	}
	if group == nil {
		return nil, false, ErrGroupNotFound
	}

	alreadyMember, err := s.store.IsMember(ctx, group.ID, userID)
	if err != nil {
		return nil, false, err
	}
	if alreadyMember {
		return group, true, nil
	}

	if err := s.store.AddMember(ctx, group.ID, userID); err != nil {
		return nil, false, err
	}
	return group, false, nil
}

// Leave removes the user's own membership; the owner cannot leave
func (s *Service) Leave(ctx context.Context, groupID, userID int64) error {
	group, err := s.memberGroup(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if group.CreatedBy == userID {
		return ErrOwnerCannotLeave
	}
	return s.store.RemoveMember(ctx, groupID, userID)
}
