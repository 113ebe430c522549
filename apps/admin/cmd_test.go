package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tuitionlk/portal/core/account"
	dummydb "github.com/tuitionlk/portal/storage/database/dummy"
)

var acctRepo account.Repository

func setup(t *testing.T) *commandLine {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	acctRepo = dummydb.NewAccountRepository(db)

	// migrate tests stub out goose, so an empty handle is enough
	return &commandLine{
		db:       &sqlx.DB{},
		acctRepo: acctRepo,
	}
}

func createAccount(t *testing.T, name, email, pwd string, role account.Role, approved bool) account.Account {
	now := time.Now().UTC()
	acct := account.Account{
		Name:       name,
		Email:      email,
		Role:       role,
		IsApproved: approved,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := acct.SetPassword(pwd); err != nil {
		t.Fatalf("createAccount() failed: %v", err)
	}
	acct, err := acctRepo.CreateAccount(context.Background(), acct)
	if err != nil {
		t.Fatalf("createAccount() failed: %v", err)
	}
	return acct
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "banner", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	acct := createAccount(t, "Nayana Silva", "nayana@test.lk", "n0neShallPass", account.RoleStudent, true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.lk"}, wantErr: errHelp},
		{name: "account not found", args: []string{"resetpassword", "-email", "lol@test.lk"}, extra: extra{pwd: "lol"}, wantErr: account.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", acct.Email}, extra: extra{pwd: "an0therOne"}},
		{name: "reset with mixed-case email", args: []string{"resetpassword", "-email", "Nayana@Test.LK"}, extra: extra{pwd: "yetAn0ther"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := acctRepo.GetAccountByID(context.Background(), acct.ID)
				if err != nil {
					t.Fatalf("GetAccountByID() failed, %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, acct.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_createAdmin(t *testing.T) {
	cli := setup(t)

	existing := createAccount(t, "Kasun Perera", "kasun@test.lk", "n0neShallPass", account.RoleStudent, false)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"createadmin"}, wantErr: errHelp},
		{name: "name but no email", args: []string{"createadmin", "-name", "Boss"}, wantErr: errHelp},
		{name: "no password", args: []string{"createadmin", "-name", "Boss", "-email", "boss@test.lk"}, wantErr: errHelp},
		{name: "creates a new admin", args: []string{"createadmin", "-name", "Boss", "-email", "Boss@Test.LK"}, extra: extra{pwd: "sup3rSecret"}},
		{name: "promotes an existing account", args: []string{"createadmin", "-name", "Kasun P.", "-email", existing.Email}, extra: extra{pwd: "sup3rSecret"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
		})
	}

	t.Run("admin exists and is approved", func(t *testing.T) {
		acct, err := acctRepo.GetAccountByEmail(context.Background(), "boss@test.lk")
		if err != nil {
			t.Fatalf("GetAccountByEmail() failed, %v", err)
		}
		if acct.Role != account.RoleAdmin {
			t.Errorf("got role %s, want %s", acct.Role, account.RoleAdmin)
		}
		if !acct.IsApproved {
			t.Error("expected the new admin to be approved")
		}
	})

	t.Run("promoted account is an approved admin", func(t *testing.T) {
		acct, err := acctRepo.GetAccountByID(context.Background(), existing.ID)
		if err != nil {
			t.Fatalf("GetAccountByID() failed, %v", err)
		}
		if acct.Role != account.RoleAdmin {
			t.Errorf("got role %s, want %s", acct.Role, account.RoleAdmin)
		}
		if !acct.IsApproved {
			t.Error("expected the promoted account to be approved")
		}
	})
}
