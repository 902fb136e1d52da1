package main

import (
	"database/sql"
	"time"
)

const minPasswordLen = 6

// UserStore persists user accounts.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) validate(name, email, password string, selfID int) ValidationError {
	var errs ValidationError

	if name == "" {
		errs = append(errs, "Name can't be blank")
	}
	switch {
	case email == "":
		errs = append(errs, "Email can't be blank")
	case validate.Var(email, "email") != nil:
		errs = append(errs, "Email is invalid")
	default:
		if taken, err := s.emailTaken(email, selfID); err == nil && taken {
			errs = append(errs, "Email has already been taken")
		}
	}
	switch {
	case password == "":
		errs = append(errs, "Password can't be blank")
	case len(password) < minPasswordLen:
		errs = append(errs, "Password is too short (minimum is 6 characters)")
	}
	return errs
}

// emailTaken reports whether another user (any user when selfID is 0)
// already owns the address. Uniqueness is case-insensitive.
func (s *UserStore) emailTaken(email string, selfID int) (bool, error) {
	var id int
	err := s.db.QueryRow("SELECT user_id FROM users WHERE email = ?", email).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return id != selfID, nil
}

// Create validates and inserts a new account. The password is stored as a
// bcrypt hash. Admin is never set here; see SetAdmin.
func (s *UserStore) Create(name, email, password string) (*User, error) {
	if errs := s.validate(name, email, password, 0); len(errs) > 0 {
		return nil, errs
	}

	now := time.Now().Unix()
	res, err := s.db.Exec(
		"INSERT INTO users (name, email, pw_hash, admin, created_at) VALUES (?, ?, ?, 0, ?)",
		name, email, hashPassword(password), now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &User{ID: int(id), Name: name, Email: email, CreatedAt: now}, nil
}

// Update rewrites name, email and password of an existing account.
func (s *UserStore) Update(id int, name, email, password string) (*User, error) {
	if _, err := s.ByID(id); err != nil {
		return nil, err
	}
	if errs := s.validate(name, email, password, id); len(errs) > 0 {
		return nil, errs
	}

	_, err := s.db.Exec(
		"UPDATE users SET name = ?, email = ?, pw_hash = ? WHERE user_id = ?",
		name, email, hashPassword(password), id)
	if err != nil {
		return nil, err
	}
	return s.ByID(id)
}

func (s *UserStore) scanRow(row *sql.Row) (*User, error) {
	var u User
	var admin int
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PwHash, &admin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Admin = admin != 0
	return &u, nil
}

func (s *UserStore) ByID(id int) (*User, error) {
	return s.scanRow(s.db.QueryRow(
		"SELECT user_id, name, email, pw_hash, admin, created_at FROM users WHERE user_id = ?", id))
}

func (s *UserStore) ByEmail(email string) (*User, error) {
	return s.scanRow(s.db.QueryRow(
		"SELECT user_id, name, email, pw_hash, admin, created_at FROM users WHERE email = ?", email))
}

// Delete removes the user and every micropost the user owns, in one
// transaction so a failure can never orphan posts.
func (s *UserStore) Delete(id int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM microposts WHERE author_id = ?", id); err != nil {
		return err
	}
	res, err := tx.Exec("DELETE FROM users WHERE user_id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (s *UserStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// Page returns one page of users ordered by name, case-insensitively.
// Pages start at 1; a page past the end yields an empty slice.
func (s *UserStore) Page(page, per int) ([]User, error) {
	if page < 1 {
		page = 1
	}
	rows, err := s.db.Query(`
		SELECT user_id, name, email, pw_hash, admin, created_at
		FROM users ORDER BY name COLLATE NOCASE ASC
		LIMIT ? OFFSET ?`, per, (page-1)*per)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		var admin int
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PwHash, &admin, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Admin = admin != 0
		out = append(out, u)
	}
	return out, rows.Err()
}

// SetAdmin grants or revokes the admin flag. There is no code path from any
// web form to here; admins are made by operators (or tests).
func (s *UserStore) SetAdmin(id int, admin bool) error {
	v := 0
	if admin {
		v = 1
	}
	res, err := s.db.Exec("UPDATE users SET admin = ? WHERE user_id = ?", v, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
