package main

// User represents a registered account. PwHash is a bcrypt hash; the
// plaintext password is never stored.
type User struct {
	ID        int
	Name      string
	Email     string
	PwHash    string
	Admin     bool
	CreatedAt int64
}

// Micropost is a short text post owned by exactly one user.
type Micropost struct {
	ID        int
	AuthorID  int
	Content   string
	CreatedAt int64
}
