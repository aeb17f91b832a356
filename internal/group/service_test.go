package group

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/divvy-app/divvy/internal/ledger"
	"github.com/divvy-app/divvy/internal/money"
)

type fakeStore struct {
	groups     map[int64]*Group
	members    map[int64]map[int64]bool
	addMembers int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups:  make(map[int64]*Group),
		members: make(map[int64]map[int64]bool),
	}
}

func (f *fakeStore) addGroup(g *Group, memberIDs ...int64) {
	f.groups[g.ID] = g
	f.members[g.ID] = make(map[int64]bool)
	for _, id := range memberIDs {
		f.members[g.ID][id] = true
	}
}

func (f *fakeStore) Create(_ context.Context, name string, createdBy int64, inviteCode string) (*Group, error) {
	g := &Group{
		ID:         int64(len(f.groups) + 1),
		Name:       name,
		CreatedBy:  createdBy,
		InviteCode: inviteCode,
		CreatedAt:  time.Now(),
	}
	f.addGroup(g, createdBy)
	return g, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*Group, error) {
	return f.groups[id], nil
}

func (f *fakeStore) GetByInviteCode(_ context.Context, code string) (*Group, error) {
	for _, g := range f.groups {
		if g.InviteCode == code {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, name string) (*Group, error) {
	f.groups[id].Name = name
	return f.groups[id], nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	delete(f.groups, id)
	delete(f.members, id)
	return nil
}

func (f *fakeStore) AddMember(_ context.Context, groupID, userID int64) error {
	f.addMembers++
	f.members[groupID][userID] = true
	return nil
}

func (f *fakeStore) RemoveMember(_ context.Context, groupID, userID int64) error {
	delete(f.members[groupID], userID)
	return nil
}

func (f *fakeStore) IsMember(_ context.Context, groupID, userID int64) (bool, error) {
	return f.members[groupID][userID], nil
}

func (f *fakeStore) GetMembers(_ context.Context, groupID int64) ([]*Member, error) {
	var out []*Member
	for id := range f.members[groupID] {
		out = append(out, &Member{GroupID: groupID, UserID: id})
	}
	return out, nil
}

func (f *fakeStore) ListByUserID(_ context.Context, userID int64, _, _ int) ([]*Group, int, error) {
	var out []*Group
	for id, members := range f.members {
		if members[userID] {
			out = append(out, f.groups[id])
		}
	}
	return out, len(out), nil
}

func (f *fakeStore) ExpenseCounts(_ context.Context, _ []int64) (map[int64]int, error) {
	return map[int64]int{}, nil
}

func (f *fakeStore) LastActivityByGroup(_ context.Context, _ []int64) (map[int64]*time.Time, error) {
	return map[int64]*time.Time{}, nil
}

func (f *fakeStore) UserBalancesByGroup(_ context.Context, _ []int64, _ int64) (map[int64]money.Money, error) {
	return map[int64]money.Money{}, nil
}

type fakeSplits struct {
	rows []ledger.SplitRow
}

func (f *fakeSplits) SplitRowsByGroup(_ context.Context, _ int64) ([]ledger.SplitRow, error) {
	return f.rows, nil
}

type fakeSettlements struct {
	rows []ledger.SettlementRow
}

func (f *fakeSettlements) SettlementRowsByGroup(_ context.Context, _ int64) ([]ledger.SettlementRow, error) {
	return f.rows, nil
}

func TestJoinByCodeIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.addGroup(&Group{ID: 1, Name: "Trip", CreatedBy: 1, InviteCode: "A1B2C3D4"}, 1)
	splits := &fakeSplits{rows: []ledger.SplitRow{
		{CreatorID: 1, UserID: 2, Share: money.FromCents(600)},
	}}
	svc := NewService(store, splits, &fakeSettlements{})

	group, alreadyMember, err := svc.JoinByCode(context.Background(), 2, "a1b2c3d4")
	if err != nil {
		t.Fatalf("JoinByCode() error = %v", err)
	}
	if alreadyMember {
		t.Error("first join reported alreadyMember = true")
	}
	if group.ID != 1 {
		t.Errorf("JoinByCode() group = %d, want 1", group.ID)
	}

	debtsBefore, err := svc.UserDebts(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("UserDebts() error = %v", err)
	}

	group, alreadyMember, err = svc.JoinByCode(context.Background(), 2, "A1B2C3D4")
	if err != nil {
		t.Fatalf("repeat JoinByCode() error = %v", err)
	}
	if !alreadyMember {
		t.Error("repeat join reported alreadyMember = false")
	}
	if group.ID != 1 {
		t.Errorf("repeat JoinByCode() group = %d, want 1", group.ID)
	}

	if store.addMembers != 1 {
		t.Errorf("AddMember called %d times, want 1", store.addMembers)
	}
	if len(store.members[1]) != 2 {
		t.Errorf("group has %d members, want 2", len(store.members[1]))
	}

	debtsAfter, err := svc.UserDebts(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("UserDebts() error = %v", err)
	}
	if !reflect.DeepEqual(debtsBefore, debtsAfter) {
		t.Errorf("repeat join changed debts: before %+v, after %+v", debtsBefore, debtsAfter)
	}
}

func TestJoinByCodeUnknownCode(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeSplits{}, &fakeSettlements{})

	_, _, err := svc.JoinByCode(context.Background(), 2, "NOPE1234")
	if !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("JoinByCode() error = %v, want %v", err, ErrGroupNotFound)
	}
}

func TestLeaveOwnerRefused(t *testing.T) {
	store := newFakeStore()
	store.addGroup(&Group{ID: 1, Name: "Trip", CreatedBy: 1, InviteCode: "A1B2C3D4"}, 1, 2)
	svc := NewService(store, &fakeSplits{}, &fakeSettlements{})

	if err := svc.Leave(context.Background(), 1, 1); !errors.Is(err, ErrOwnerCannotLeave) {
		t.Errorf("Leave() error = %v, want %v", err, ErrOwnerCannotLeave)
	}
	if err := svc.Leave(context.Background(), 1, 2); err != nil {
		t.Errorf("Leave() error = %v", err)
	}
	if store.members[1][2] {
		t.Error("member 2 still present after leaving")
	}
}
