//go:build ignore

package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

const adminToolDoc = `Sample App Admin Tool

Usage:
  admin_tool -l
  admin_tool -a <email>...
  admin_tool -r <email>...
  admin_tool -h
Options:
  -h            Show this screen.
  -l            List all users with their admin flag.
  -a            Grant admin to the given emails.
  -r            Revoke admin from the given emails.`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(adminToolDoc)
		return
	}

	dbPath := os.Getenv("SAMPLEAPP_DATABASE")
	if dbPath == "" {
		dbPath = "/tmp/sampleapp.db"
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't open database: %s\n", err)
		os.Exit(1)
	}
	defer db.Close()

	switch os.Args[1] {
	case "-h":
		fmt.Println(adminToolDoc)
	case "-l":
		rows, err := db.Query("SELECT user_id, name, email, admin FROM users ORDER BY user_id")
		if err != nil {
			fmt.Fprintf(os.Stderr, "SQL error: %s\n", err)
			os.Exit(1)
		}
		defer rows.Close()
		for rows.Next() {
			var id, admin int
			var name, email string
			rows.Scan(&id, &name, &email, &admin)
			fmt.Printf("%d,%s,%s,%d\n", id, name, email, admin)
		}
	case "-a", "-r":
		v := 1
		if os.Args[1] == "-r" {
			v = 0
		}
		for _, email := range os.Args[2:] {
			res, err := db.Exec("UPDATE users SET admin = ? WHERE email = ?", v, email)
			if err != nil {
				fmt.Fprintf(os.Stderr, "SQL error: %s\n", err)
				continue
			}
			if n, _ := res.RowsAffected(); n == 0 {
				fmt.Fprintf(os.Stderr, "No such user: %s\n", email)
			} else {
				fmt.Printf("Updated: %s\n", email)
			}
		}
	default:
		fmt.Println(adminToolDoc)
	}
}
