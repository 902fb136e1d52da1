package main

import (
	"net/http"

	"github.com/gorilla/sessions"
)

func newStore(secret string) *sessions.CookieStore {
	s := sessions.NewCookieStore([]byte(secret))
	s.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
	}
	return s
}

// signIn binds the session cookie to the user. Called after signup, login
// and profile updates (the last re-issues the cookie).
func signIn(w http.ResponseWriter, r *http.Request, u *User) {
	session, _ := store.Get(r, sessionName)
	session.Values["user_id"] = u.ID
	session.Save(r, w)
}

// signOut drops the user id from the session. Safe to call when nobody is
// signed in.
func signOut(w http.ResponseWriter, r *http.Request) {
	session, _ := store.Get(r, sessionName)
	delete(session.Values, "user_id")
	session.Save(r, w)
}

func currentUser(r *http.Request) *User {
	session, _ := store.Get(r, sessionName)
	id, ok := session.Values["user_id"].(int)
	if !ok {
		return nil
	}
	u, err := users.ByID(id)
	if err != nil {
		return nil
	}
	return u
}

func isAdmin(u *User) bool {
	return u != nil && u.Admin
}

// canDeleteUser decides whether current may delete the account with
// targetID. Admins may delete anyone but themselves; self-deletion is
// refused unconditionally.
func canDeleteUser(current *User, targetID int) bool {
	return isAdmin(current) && current.ID != targetID
}

// canDeleteMicropost allows deletion only by the post's author.
func canDeleteMicropost(current *User, m *Micropost) bool {
	return current != nil && m != nil && current.ID == m.AuthorID
}

// requireUser resolves the signed-in user or redirects to the sign-in page.
// Callers must return when it yields nil.
func requireUser(w http.ResponseWriter, r *http.Request) *User {
	u := currentUser(r)
	if u == nil {
		addFlash(w, r, "danger", "Please sign in.")
		http.Redirect(w, r, "/signin", http.StatusFound)
		return nil
	}
	return u
}
