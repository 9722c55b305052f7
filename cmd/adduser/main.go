// Command adduser creates a user directly in the SQLite database.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aswin071/Expense-Tracker/internal/migrations"
	"github.com/aswin071/Expense-Tracker/internal/repo"
	"github.com/aswin071/Expense-Tracker/internal/service"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

const defaultDBPath = "./data/expense_tracker.db"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	email := fs.String("email", "", "Email address (optional)")
	salary := fs.Float64("salary", 0, "Salary")
	dbPath := fs.String("db", defaultDBPath, "Path to SQLite database file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <username> [-password <password>] [-email <email>] [-salary <amount>] [-db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	// SQLITE_PATH applies only when -db was left at its default.
	if path := os.Getenv("SQLITE_PATH"); path != "" && *dbPath == defaultDBPath {
		*dbPath = path
	}

	db, err := repo.OpenSQLite(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := migrations.Up(db, migrations.SQLite, log); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	svc := service.NewUserService(repo.NewSQLiteUserRepo(db), nil, bcrypt.DefaultCost, log)
	in := service.CreateUserInput{Username: *username, Password: &password, Salary: *salary}
	if *email != "" {
		in.Email = email
	}
	user, err := svc.Create(context.Background(), in)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return fmt.Errorf("user %s already exists: %w", *username, err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", user.Username, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Pipes and tests.
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
