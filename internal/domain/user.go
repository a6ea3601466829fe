package domain

const (
	LevelCustomer = 1
	LevelAdmin    = 2
)

type User struct {
	Token   string `db:"token"`
	Account string `db:"account"`
	Hash    string `db:"password_hash"`
	Email   string `db:"email"`
	Level   int    `db:"level"`
}

func (u *User) IsAdmin() bool { return u.Level == LevelAdmin }
