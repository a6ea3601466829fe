package services

import (
	"database/sql"
	"errors"
	"strings"

	"shoplite/internal/domain"
	"shoplite/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Mailer delivers the password-reset mail. Implemented by internal/mail;
// tests plug in a recorder.
type Mailer interface {
	SendPasswordReset(to, tempPassword string) error
}

type AuthService struct {
	Users *repos.UserRepo
	Mail  Mailer
}

func (s *AuthService) Register(account, password, email string) error {
	_, err := s.Users.ByAccount(account)
	if err == nil {
		return ErrAccountTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	return s.Users.Create(&domain.User{
		Token:   uuid.NewString(),
		Account: account,
		Hash:    string(h),
		Email:   email,
		Level:   domain.LevelCustomer,
	})
}

func (s *AuthService) Login(account, password string) (*domain.User, error) {
	u, err := s.Users.ByAccount(account)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return u, nil
}

// Check resolves an opaque token to its user.
func (s *AuthService) Check(token string) (*domain.User, error) {
	u, err := s.Users.ByToken(token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// ResetPassword replaces the account's password with a temporary one and
// mails it. Passwords are stored hashed, so the original cannot be resent.
func (s *AuthService) ResetPassword(account string) error {
	u, err := s.Users.ByAccount(account)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	temp := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	h, err := bcrypt.GenerateFromPassword([]byte(temp), 12)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePasswordHash(u.Token, string(h)); err != nil {
		return err
	}
	if s.Mail == nil {
		return nil
	}
	return s.Mail.SendPasswordReset(u.Email, temp)
}
