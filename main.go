package main

import (
	"database/sql"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

var (
	db       *sql.DB
	store    *sessions.CookieStore
	users    *UserStore
	posts    *MicropostStore
	logger   = logrus.New()
	validate = validator.New()
)

func main() {
	cfg = loadConfig()
	logger = newLogger(cfg.Env)

	var err error
	db, err = openDB(cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("cannot open database")
	}
	if err := applySchema(db, "schema.sql"); err != nil {
		logger.WithError(err).Fatal("cannot apply schema")
	}

	store = newStore(cfg.SecretKey)
	users = NewUserStore(db)
	posts = NewMicropostStore(db)

	fs := http.FileServer(http.Dir("static"))
	router := setupRouter()
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))

	logger.WithFields(logrus.Fields{"addr": cfg.Addr, "db": cfg.Database}).Info("listening")
	logger.Fatal(http.ListenAndServe(cfg.Addr, router))
}
