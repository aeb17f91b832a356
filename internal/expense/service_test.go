package expense

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeMemberships struct {
	members map[int64]bool
	ids     []int64
}

func (f *fakeMemberships) IsMember(_ context.Context, _ int64, userID int64) (bool, error) {
	return f.members[userID], nil
}

func (f *fakeMemberships) ListMemberIDs(_ context.Context, _ int64) ([]int64, error) {
	return f.ids, nil
}

func TestCreateRejectsNonMembers(t *testing.T) {
	svc := NewService(nil, &fakeMemberships{members: map[int64]bool{}})

	_, err := svc.Create(context.Background(), 10, 99, &CreateExpenseRequest{Name: "Dinner", Amount: "12.00"})
	if !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("Create() error = %v, want %v", err, ErrGroupNotFound)
	}
}

func TestCreateValidation(t *testing.T) {
	members := &fakeMemberships{members: map[int64]bool{1: true}, ids: []int64{1, 2, 3}}
	svc := NewService(nil, members)

	tests := []struct {
		name    string
		req     *CreateExpenseRequest
		wantErr error
	}{
		{"empty name", &CreateExpenseRequest{Name: "   ", Amount: "12.00"}, ErrInvalidName},
		{"name too long", &CreateExpenseRequest{Name: strings.Repeat("x", 101), Amount: "12.00"}, ErrInvalidName},
		{"zero amount", &CreateExpenseRequest{Name: "Dinner", Amount: "0"}, ErrInvalidAmount},
		{"negative amount", &CreateExpenseRequest{Name: "Dinner", Amount: "-3.50"}, ErrInvalidAmount},
		{"malformed amount", &CreateExpenseRequest{Name: "Dinner", Amount: "twelve"}, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 10, 1, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
