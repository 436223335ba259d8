package auth

import (
	"context"
	"testing"

	"github.com/flowdeck/workflow-service/internal/domain"
)

func TestRegister_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeHasher{}, &fakeSigner{})

	got, err := svc.Register(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
	if got.Email != "a@b.com" {
		t.Errorf("Email = %q, want %q", got.Email, "a@b.com")
	}

	stored := repo.users["a@b.com"]
	if stored.PasswordHash != "hashed:secret" {
		t.Errorf("stored hash = %q, want the hashed password, never the plaintext", stored.PasswordHash)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret"},
		{"empty password", "a@b.com", ""},
		{"both empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			svc := NewService(repo, &fakeHasher{}, &fakeSigner{})

			_, err := svc.Register(context.Background(), tc.email, tc.password)
			if !domain.Is(err, "missing_credentials") {
				t.Fatalf("Register() error = %v, want missing_credentials", err)
			}
			if repo.createCalls != 0 {
				t.Errorf("repo.Create called %d times on a rejected request, want 0", repo.createCalls)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeHasher{}, &fakeSigner{})

	if _, err := svc.Register(context.Background(), "a@b.com", "first"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "a@b.com", "second")
	if !domain.Is(err, "email_already_exists") {
		t.Fatalf("second Register() error = %v, want email_already_exists", err)
	}
}

func TestRegister_HashFailure(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeHasher{failHash: true}, &fakeSigner{})

	_, err := svc.Register(context.Background(), "a@b.com", "secret")
	if !domain.Is(err, "hash_failed") {
		t.Fatalf("Register() error = %v, want hash_failed", err)
	}
	if repo.createCalls != 0 {
		t.Errorf("repo.Create called after hash failure, want no storage write")
	}
}
