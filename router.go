package main

import (
	"net/http"

	"github.com/gorilla/mux"
)

func setupRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", homeHandler).Methods(http.MethodGet)
	r.HandleFunc("/signup", signupHandler).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/signin", signinHandler).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/signout", signoutHandler).Methods(http.MethodGet)

	r.HandleFunc("/users", usersIndexHandler).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}", userShowHandler).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}/edit", userEditHandler).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/users/{id:[0-9]+}/delete", userDeleteHandler).Methods(http.MethodGet)

	r.HandleFunc("/microposts", micropostCreateHandler).Methods(http.MethodPost)
	r.HandleFunc("/microposts/{id:[0-9]+}/delete", micropostDeleteHandler).Methods(http.MethodGet)

	return r
}
