package services_test

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"shoplite/internal/domain"
	"shoplite/internal/repos"
	"shoplite/internal/services"
)

type mailRecorder struct {
	to   string
	temp string
}

func (m *mailRecorder) SendPasswordReset(to, tempPassword string) error {
	m.to, m.temp = to, tempPassword
	return nil
}

func newAuthSvc(t *testing.T) (*services.AuthService, *mailRecorder) {
	t.Helper()
	db := memdbAll(t)
	rec := &mailRecorder{}
	return &services.AuthService{Users: repos.NewUserRepo(db), Mail: rec}, rec
}

func TestRegisterLoginCheck(t *testing.T) {
	svc, _ := newAuthSvc(t)

	if err := svc.Register("alice", "Sup3rSecret!", "alice@shoplite.test"); err != nil {
		t.Fatal(err)
	}

	u, err := svc.Login("alice", "Sup3rSecret!")
	if err != nil {
		t.Fatal(err)
	}
	if u.Level != domain.LevelCustomer {
		t.Fatalf("registration must create a customer, got level %d", u.Level)
	}
	if u.Hash == "Sup3rSecret!" {
		t.Fatal("password stored in plaintext")
	}

	got, err := svc.Check(u.Token)
	if err != nil {
		t.Fatal(err)
	}
	if got.Account != "alice" {
		t.Fatalf("token resolves to wrong user: %+v", got)
	}

	if _, err := svc.Login("alice", "wrong-password"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, err := svc.Check("bogus-token"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRegisterDuplicateAccount(t *testing.T) {
	svc, _ := newAuthSvc(t)
	if err := svc.Register("bob", "Sup3rSecret!", "bob@shoplite.test"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Register("bob", "0therSecret!", "bob2@shoplite.test"); !errors.Is(err, services.ErrAccountTaken) {
		t.Fatalf("want ErrAccountTaken, got %v", err)
	}
}

func TestResetPasswordMailsTemporary(t *testing.T) {
	svc, rec := newAuthSvc(t)
	if err := svc.Register("carol", "Sup3rSecret!", "carol@shoplite.test"); err != nil {
		t.Fatal(err)
	}

	if err := svc.ResetPassword("carol"); err != nil {
		t.Fatal(err)
	}
	if rec.to != "carol@shoplite.test" || rec.temp == "" {
		t.Fatalf("reset mail not sent: %+v", rec)
	}

	// old password no longer works, mailed one does
	if _, err := svc.Login("carol", "Sup3rSecret!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("old password must be invalid, got %v", err)
	}
	u, err := svc.Login("carol", rec.temp)
	if err != nil {
		t.Fatal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(rec.temp)) != nil {
		t.Fatal("stored hash does not match mailed temporary password")
	}

	if err := svc.ResetPassword("nobody"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
