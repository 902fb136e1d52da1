package main

import (
	"database/sql"
	"time"
)

const maxMicropostLen = 140

// MicropostStore persists short posts tied to their author.
type MicropostStore struct {
	db *sql.DB
}

func NewMicropostStore(db *sql.DB) *MicropostStore {
	return &MicropostStore{db: db}
}

// Create validates and inserts a post for authorID. The author must exist.
func (s *MicropostStore) Create(authorID int, content string) (*Micropost, error) {
	var errs ValidationError
	switch {
	case content == "":
		errs = append(errs, "Content can't be blank")
	case len([]rune(content)) > maxMicropostLen:
		errs = append(errs, "Content is too long (maximum is 140 characters)")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	var exists int
	err := s.db.QueryRow("SELECT 1 FROM users WHERE user_id = ?", authorID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	res, err := s.db.Exec(
		"INSERT INTO microposts (author_id, content, created_at) VALUES (?, ?, ?)",
		authorID, content, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Micropost{ID: int(id), AuthorID: authorID, Content: content, CreatedAt: now}, nil
}

func (s *MicropostStore) ByID(id int) (*Micropost, error) {
	var m Micropost
	err := s.db.QueryRow(
		"SELECT micropost_id, author_id, content, created_at FROM microposts WHERE micropost_id = ?", id).
		Scan(&m.ID, &m.AuthorID, &m.Content, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MicropostStore) Delete(id int) error {
	res, err := s.db.Exec("DELETE FROM microposts WHERE micropost_id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MicropostStore) CountFor(authorID int) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM microposts WHERE author_id = ?", authorID).Scan(&n)
	return n, err
}

// PageFor returns one page of a user's posts, newest first. Ties on the
// second-resolution timestamp fall back to insertion order.
func (s *MicropostStore) PageFor(authorID, page, per int) ([]Micropost, error) {
	if page < 1 {
		page = 1
	}
	rows, err := s.db.Query(`
		SELECT micropost_id, author_id, content, created_at
		FROM microposts WHERE author_id = ?
		ORDER BY created_at DESC, micropost_id DESC
		LIMIT ? OFFSET ?`, authorID, per, (page-1)*per)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Micropost
	for rows.Next() {
		var m Micropost
		if err := rows.Scan(&m.ID, &m.AuthorID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
