package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/studyhall/studyhall/internal/auth"
	"github.com/studyhall/studyhall/internal/platform/httpx"
)

func TestRegisterHashesPassword(t *testing.T) {
	repo := newStubRepo()
	svc := auth.NewService(repo)

	id, err := svc.Register(context.Background(), auth.RegisterInput{
		FullName:    "Asha Rao",
		PhoneNumber: "9876543210",
		Age:         14,
		Class:       "8",
		Email:       "a@b.com",
		Password:    "Abcd123!",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	// The right password authenticates, the wrong one does not.
	if _, err := svc.Authenticate(context.Background(), "a@b.com", "Abcd123!"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "a@b.com", "Abcd124!"); !errors.Is(err, httpx.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRegisterConflict(t *testing.T) {
	repo := newStubRepo()
	svc := auth.NewService(repo)

	input := auth.RegisterInput{
		FullName: "A", PhoneNumber: "1", Age: 10, Class: "8",
		Email: "a@b.com", Password: "Abcd123!",
	}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, httpx.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthenticateUniformError(t *testing.T) {
	repo := newStubRepo()
	svc := auth.NewService(repo)
	if _, err := svc.Register(context.Background(), auth.RegisterInput{
		FullName: "A", PhoneNumber: "1", Age: 10, Class: "8",
		Email: "a@b.com", Password: "Abcd123!",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := svc.Authenticate(context.Background(), "a@b.com", "nope1234!")
	_, unknownEmail := svc.Authenticate(context.Background(), "nobody@b.com", "Abcd123!")
	if wrongPassword == nil || unknownEmail == nil {
		t.Fatal("expected both authentications to fail")
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("errors must not distinguish cases: %q vs %q", wrongPassword, unknownEmail)
	}
}
