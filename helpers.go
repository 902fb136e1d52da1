package main

import (
	"crypto/md5"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const sessionName = "session"

// --- Password helpers ---

func hashPassword(password string) string {
	bytes, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes)
}

func checkPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// --- Flash helpers ---

// addFlash queues a one-shot message. kind is "success" or "danger" and
// selects the alert style in the layout.
func addFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	session, _ := store.Get(r, sessionName)
	session.AddFlash(message, kind)
	session.Save(r, w)
}

func getFlashes(w http.ResponseWriter, r *http.Request, kind string) []interface{} {
	session, _ := store.Get(r, sessionName)
	flashes := session.Flashes(kind)
	session.Save(r, w)
	return flashes
}

// --- Template helpers ---

func gravatar(email string) string {
	h := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=52", h)
}

func datetimeformat(ts int64) string {
	return time.Unix(ts, 0).Format("2006-01-02 @ 15:04")
}

// pageTitle builds "<base> | <page>"; an empty page title yields the bare
// base title (the home page case).
func pageTitle(title string) string {
	const base = "Sample App"
	if title == "" {
		return base
	}
	return base + " | " + title
}

// Pagination describes one page of a longer listing. Templates render the
// control only when Pages > 1.
type Pagination struct {
	Page     int
	Pages    int
	BasePath string
}

func (p Pagination) Numbers() []int {
	nums := make([]int, p.Pages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.Pages }
func (p Pagination) Prev() int     { return p.Page - 1 }
func (p Pagination) Next() int     { return p.Page + 1 }

func paginationFor(total, page, per int, basePath string) Pagination {
	pages := (total + per - 1) / per
	if pages < 1 {
		pages = 1
	}
	return Pagination{Page: page, Pages: pages, BasePath: basePath}
}

// parsePage reads the ?page query parameter, defaulting to the first page.
func parsePage(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateFile string, data map[string]interface{}) {
	funcMap := template.FuncMap{
		"gravatar":       gravatar,
		"datetimeformat": datetimeformat,
	}

	tmpl := template.Must(template.New("layout.html").
		Funcs(funcMap).
		ParseFiles("templates/layout.html", "templates/"+templateFile))

	if _, ok := data["CurrentUser"]; !ok {
		data["CurrentUser"] = currentUser(r)
	}
	data["Title"] = pageTitle(str(data["Title"]))
	if _, ok := data["FlashSuccess"]; !ok {
		data["FlashSuccess"] = getFlashes(w, r, "success")
	}
	if _, ok := data["FlashDanger"]; !ok {
		data["FlashDanger"] = getFlashes(w, r, "danger")
	}

	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		logger.WithError(err).Error("template execution failed")
	}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
