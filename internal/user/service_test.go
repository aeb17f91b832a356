package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/divvy-app/divvy/internal/auth"
)

type fakeStore struct {
	users  map[int64]*User
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[int64]*User), nextID: 1}
}

func (f *fakeStore) Create(_ context.Context, name, email, passwordHash string) (*User, error) {
	u := &User{
		ID:           f.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	f.nextID++
	return u, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*User, error) {
	return f.users[id], nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, name, email, passwordHash string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	u.Name = name
	u.Email = email
	u.PasswordHash = passwordHash
	return u, nil
}

func newTestService(t *testing.T) (*Service, *fakeStore, *User) {
	t.Helper()
	store := newFakeStore()
	svc := NewService(store, auth.NewJWTManager("test-secret", time.Hour))
	user, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "John",
		Email:    "john@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return svc, store, user
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Impostor",
		Email:    "john@example.com",
		Password: "another password",
	})
	if !errors.Is(err, ErrEmailAlreadyInUse) {
		t.Errorf("Register() error = %v, want %v", err, ErrEmailAlreadyInUse)
	}
}

func TestUpdateName(t *testing.T) {
	svc, _, user := newTestService(t)

	name := "Johnny"
	updated, err := svc.Update(context.Background(), user.ID, &UpdateMeRequest{Name: &name})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Johnny" {
		t.Errorf("Update() name = %q, want %q", updated.Name, "Johnny")
	}
	if updated.Email != "john@example.com" {
		t.Errorf("Update() changed email to %q", updated.Email)
	}
}

func TestUpdatePassword(t *testing.T) {
	svc, store, user := newTestService(t)

	password := "a brand new password"
	if _, err := svc.Update(context.Background(), user.ID, &UpdateMeRequest{Password: &password}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := auth.VerifyPassword(store.users[user.ID].PasswordHash, password); err != nil {
		t.Errorf("new password does not verify: %v", err)
	}
}

func TestUpdateValidation(t *testing.T) {
	svc, _, user := newTestService(t)

	other, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "janes password",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	empty := "   "
	if _, err := svc.Update(context.Background(), user.ID, &UpdateMeRequest{Name: &empty}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Update() error = %v, want %v", err, ErrInvalidName)
	}

	taken := other.Email
	if _, err := svc.Update(context.Background(), user.ID, &UpdateMeRequest{Email: &taken}); !errors.Is(err, ErrEmailAlreadyInUse) {
		t.Errorf("Update() error = %v, want %v", err, ErrEmailAlreadyInUse)
	}

	weak := "short"
	if _, err := svc.Update(context.Background(), user.ID, &UpdateMeRequest{Password: &weak}); !errors.Is(err, auth.ErrWeakPassword) {
		t.Errorf("Update() error = %v, want %v", err, auth.ErrWeakPassword)
	}

	own := user.Email
	if _, err := svc.Update(context.Background(), user.ID, &UpdateMeRequest{Email: &own}); err != nil {
		t.Errorf("Update() with own email error = %v", err)
	}
}
