package repos

import (
	"shoplite/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByToken(token string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT token,account,password_hash,email,level FROM users WHERE token=?`, token)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByAccount(account string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT token,account,password_hash,email,level FROM users WHERE LOWER(account)=LOWER(?)`, account)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(token,account,password_hash,email,level)
		VALUES(?,?,?,?,?)
	`, u.Token, u.Account, u.Hash, u.Email, u.Level)
	return err
}

func (r *UserRepo) UpdatePasswordHash(token, hash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=? WHERE token=?`, hash, token)
	return err
}
