package services_test

import (
	"testing"

	"pricesmart/internal/repos"
	"pricesmart/internal/services"
)

func authSvc(t *testing.T) *services.AuthService {
	t.Helper()
	return services.NewAuthService(repos.NewUserRepo(memdb(t)), "test-secret")
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := authSvc(t)

	u, tok, err := svc.Register("carol@test.dev", "Carol", "Sup3rSecret")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID == "" || tok == "" {
		t.Fatalf("missing id or token: %+v", u)
	}

	// Token resolves back to the same user.
	got, err := svc.UserFromToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID || got.Email != "carol@test.dev" {
		t.Fatalf("token user mismatch: %+v", got)
	}

	// Fresh login issues a usable token too.
	u2, tok2, err := svc.Login("carol@test.dev", "Sup3rSecret")
	if err != nil {
		t.Fatal(err)
	}
	if u2.ID != u.ID || tok2 == "" {
		t.Fatalf("login: %+v", u2)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := authSvc(t)
	if _, _, err := svc.Register("dup@test.dev", "Dup", "Sup3rSecret"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Register("dup@test.dev", "Dup", "Sup3rSecret"); err != services.ErrEmailTaken {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc := authSvc(t)
	if _, _, err := svc.Register("dave@test.dev", "Dave", "Sup3rSecret"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Login("dave@test.dev", "wrong-pass"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, _, err := svc.Login("nobody@test.dev", "Sup3rSecret"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
}

func TestUserFromTokenRejectsGarbage(t *testing.T) {
	svc := authSvc(t)
	if _, err := svc.UserFromToken("not-a-token"); err == nil {
		t.Fatal("garbage token must not resolve")
	}
}

func TestTokensAreSecretBound(t *testing.T) {
	a := authSvc(t)
	_, tok, err := a.Register("eve@test.dev", "Eve", "Sup3rSecret")
	if err != nil {
		t.Fatal(err)
	}
	b := services.NewAuthService(repos.NewUserRepo(memdb(t)), "other-secret")
	if _, err := b.UserFromToken(tok); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}
