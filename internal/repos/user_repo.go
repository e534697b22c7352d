package repos

import (
	"pricesmart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(id,email,name,password_hash)
		VALUES(?,?,?,?)`,
		u.ID, u.Email, u.Name, u.Hash)
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id,email,name,password_hash,
		       created_at, COALESCE(last_login,'') AS last_login, is_active
		FROM users WHERE LOWER(email)=LOWER(?) AND is_active=1`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id,email,name,password_hash,
		       created_at, COALESCE(last_login,'') AS last_login, is_active
		FROM users WHERE id=? AND is_active=1`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) TouchLogin(id string) error {
	_, err := r.DB.Exec(`UPDATE users SET last_login=CURRENT_TIMESTAMP WHERE id=?`, id)
	return err
}
