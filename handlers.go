package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func idVar(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

// GET /
func homeHandler(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "home.html", map[string]interface{}{})
}

// GET + POST /signup
func signupHandler(w http.ResponseWriter, r *http.Request) {
	if u := currentUser(r); u != nil {
		http.Redirect(w, r, fmt.Sprintf("/users/%d", u.ID), http.StatusFound)
		return
	}

	form := map[string]string{}
	var errs ValidationError

	if r.Method == http.MethodPost {
		form["Name"] = r.FormValue("name")
		form["Email"] = r.FormValue("email")
		password := r.FormValue("password")
		confirmation := r.FormValue("confirmation")

		if password != confirmation {
			errs = append(errs, "Password confirmation doesn't match Password")
		} else {
			u, err := users.Create(form["Name"], form["Email"], password)
			switch e := err.(type) {
			case nil:
				signIn(w, r, u)
				addFlash(w, r, "success", "Welcome to the Sample App!")
				http.Redirect(w, r, fmt.Sprintf("/users/%d", u.ID), http.StatusFound)
				return
			case ValidationError:
				errs = e
			default:
				logger.WithError(err).Error("user create failed")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}
	}

	renderTemplate(w, r, "signup.html", map[string]interface{}{
		"Title":  "Sign up",
		"Form":   form,
		"Errors": errs,
	})
}

// GET + POST /signin
func signinHandler(w http.ResponseWriter, r *http.Request) {
	if u := currentUser(r); u != nil {
		http.Redirect(w, r, fmt.Sprintf("/users/%d", u.ID), http.StatusFound)
		return
	}

	if r.Method == http.MethodPost {
		email := r.FormValue("email")
		password := r.FormValue("password")

		u, err := users.ByEmail(email)
		if err == nil && checkPassword(u.PwHash, password) {
			signIn(w, r, u)
			http.Redirect(w, r, fmt.Sprintf("/users/%d", u.ID), http.StatusFound)
			return
		}
		renderTemplate(w, r, "signin.html", map[string]interface{}{
			"Title":       "Sign in",
			"FlashDanger": []interface{}{"Invalid email/password combination"},
			"Email":       email,
		})
		return
	}

	renderTemplate(w, r, "signin.html", map[string]interface{}{
		"Title": "Sign in",
		"Email": "",
	})
}

// GET /signout
func signoutHandler(w http.ResponseWriter, r *http.Request) {
	signOut(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}

type userRow struct {
	User
	CanDelete bool
}

// GET /users — paginated index, signed-in users only
func usersIndexHandler(w http.ResponseWriter, r *http.Request) {
	viewer := requireUser(w, r)
	if viewer == nil {
		return
	}

	page := parsePage(r)
	total, err := users.Count()
	if err != nil {
		logger.WithError(err).Error("user count failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	listed, err := users.Page(page, cfg.UsersPerPage)
	if err != nil {
		logger.WithError(err).Error("user page failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	rows := make([]userRow, 0, len(listed))
	for _, u := range listed {
		rows = append(rows, userRow{User: u, CanDelete: canDeleteUser(viewer, u.ID)})
	}

	renderTemplate(w, r, "users.html", map[string]interface{}{
		"Title":      "All users",
		"Users":      rows,
		"Pagination": paginationFor(total, page, cfg.UsersPerPage, "/users"),
	})
}

// GET /users/{id}/delete — admin only, never self
func userDeleteHandler(w http.ResponseWriter, r *http.Request) {
	viewer := requireUser(w, r)
	if viewer == nil {
		return
	}

	targetID := idVar(r)
	if !canDeleteUser(viewer, targetID) {
		http.Redirect(w, r, "/users", http.StatusFound)
		return
	}

	switch err := users.Delete(targetID); err {
	case nil:
		addFlash(w, r, "success", "User deleted")
	case ErrNotFound:
		http.NotFound(w, r)
		return
	default:
		logger.WithError(err).WithField("user_id", targetID).Error("user delete failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/users", http.StatusFound)
}

type postRow struct {
	Micropost
	CanDelete bool
}

// GET /users/{id} — profile with the user's microposts, newest first
func userShowHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := users.ByID(idVar(r))
	if err == ErrNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		logger.WithError(err).Error("user lookup failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	viewer := currentUser(r)
	page := parsePage(r)
	count, err := posts.CountFor(profile.ID)
	if err != nil {
		logger.WithError(err).Error("micropost count failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	listed, err := posts.PageFor(profile.ID, page, cfg.PostsPerPage)
	if err != nil {
		logger.WithError(err).Error("micropost page failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	rows := make([]postRow, 0, len(listed))
	for _, m := range listed {
		rows = append(rows, postRow{Micropost: m, CanDelete: canDeleteMicropost(viewer, &m)})
	}

	renderTemplate(w, r, "user.html", map[string]interface{}{
		"Title":       profile.Name,
		"ProfileUser": profile,
		"CurrentUser": viewer,
		"Microposts":  rows,
		"PostCount":   count,
		"OwnProfile":  viewer != nil && viewer.ID == profile.ID,
		"Pagination":  paginationFor(count, page, cfg.PostsPerPage, fmt.Sprintf("/users/%d", profile.ID)),
	})
}

// GET + POST /users/{id}/edit — only the account owner
func userEditHandler(w http.ResponseWriter, r *http.Request) {
	viewer := requireUser(w, r)
	if viewer == nil {
		return
	}
	if viewer.ID != idVar(r) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	form := map[string]string{"Name": viewer.Name, "Email": viewer.Email}
	var errs ValidationError

	if r.Method == http.MethodPost {
		form["Name"] = r.FormValue("name")
		form["Email"] = r.FormValue("email")
		password := r.FormValue("password")
		confirmation := r.FormValue("confirmation")

		if password != confirmation {
			errs = append(errs, "Password confirmation doesn't match Password")
		} else {
			updated, err := users.Update(viewer.ID, form["Name"], form["Email"], password)
			switch e := err.(type) {
			case nil:
				signIn(w, r, updated)
				addFlash(w, r, "success", "Profile updated")
				http.Redirect(w, r, fmt.Sprintf("/users/%d", updated.ID), http.StatusFound)
				return
			case ValidationError:
				errs = e
			default:
				logger.WithError(err).Error("user update failed")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}
	}

	renderTemplate(w, r, "edit.html", map[string]interface{}{
		"Title":    "Edit user",
		"EditUser": viewer,
		"Form":     form,
		"Errors":   errs,
	})
}

// POST /microposts
func micropostCreateHandler(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	_, err := posts.Create(user.ID, r.FormValue("content"))
	switch e := err.(type) {
	case nil:
		addFlash(w, r, "success", "Micropost created!")
	case ValidationError:
		addFlash(w, r, "danger", e[0])
	default:
		logger.WithError(err).Error("micropost create failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/users/%d", user.ID), http.StatusFound)
}

// GET /microposts/{id}/delete — author only
func micropostDeleteHandler(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	m, err := posts.ByID(idVar(r))
	if err == ErrNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		logger.WithError(err).Error("micropost lookup failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if !canDeleteMicropost(user, m) {
		http.Redirect(w, r, fmt.Sprintf("/users/%d", user.ID), http.StatusFound)
		return
	}

	if err := posts.Delete(m.ID); err != nil && err != ErrNotFound {
		logger.WithError(err).WithFields(logrus.Fields{"micropost_id": m.ID}).Error("micropost delete failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	addFlash(w, r, "success", "Micropost deleted")
	http.Redirect(w, r, fmt.Sprintf("/users/%d", user.ID), http.StatusFound)
}
