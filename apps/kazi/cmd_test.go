package main

import (
	"path/filepath"
	"testing"

	"golang.org/x/term"

	"github.com/trezcool/kazi/apitest"
	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/attendance"
	"github.com/trezcool/kazi/core/employee"
	"github.com/trezcool/kazi/core/event"
	"github.com/trezcool/kazi/core/leave"
	"github.com/trezcool/kazi/core/mailbox"
	"github.com/trezcool/kazi/core/payroll"
	"github.com/trezcool/kazi/core/project"
	"github.com/trezcool/kazi/core/recruit"
	storesvc "github.com/trezcool/kazi/services/store"
)

func setup(t *testing.T) (*apitest.Server, *commandLine) {
	t.Helper()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)
	srv.SeedEmployee(t, "Amina Juma", "aminaj", "s3cr3tpwd", core.RoleAdmin)

	store := storesvc.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	holder := core.NewSessionHolder(store)
	client := srv.Client(holder)

	return srv, &commandLine{
		conf:    &core.Config{AppName: "kazi", APIBaseURL: srv.URL()},
		store:   store,
		session: holder,
		client:  client,

		employees:  employee.NewService(client),
		leaves:     leave.NewService(client),
		attendance: attendance.NewService(client),
		payrolls:   payroll.NewService(client),
		projects:   project.NewService(client),
		mailbox:    mailbox.NewService(client),
		recruit:    recruit.NewService(client),
		events:     event.NewService(client),
	}
}

func Test_commandLine_dispatch(t *testing.T) {
	_, cli := setup(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "no subcommand", args: []string{"kazi"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"kazi", "lol"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(tt.args); err != tt.wantErr {
				t.Errorf("run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_loginLogout(t *testing.T) {
	_, cli := setup(t)

	readPasswordFunc = func(int) ([]byte, error) { return []byte("s3cr3tpwd"), nil }
	defer func() { readPasswordFunc = term.ReadPassword }()

	if err := cli.run([]string{"kazi", "login", "-username", "AminaJ"}); err != nil {
		t.Fatalf("login error = %v", err)
	}
	sess, ok := cli.session.Current()
	if !ok || sess.Username != "aminaj" {
		t.Fatalf("Current() = %+v, %t after login", sess, ok)
	}
	// the session survives a restart
	if restored, err := cli.store.Load(); err != nil || restored.Token != sess.Token {
		t.Errorf("Load() = %+v, %v, want the persisted session", restored, err)
	}

	if err := cli.run([]string{"kazi", "logout"}); err != nil {
		t.Fatalf("logout error = %v", err)
	}
	if _, ok := cli.session.Current(); ok {
		t.Error("Current() ok = true after logout")
	}
	if restored, _ := cli.store.Load(); restored.Token != "" {
		t.Error("persisted session survived logout")
	}
}

func Test_commandLine_loginBadPassword(t *testing.T) {
	_, cli := setup(t)

	readPasswordFunc = func(int) ([]byte, error) { return []byte("wrong"), nil }
	defer func() { readPasswordFunc = term.ReadPassword }()

	err := cli.run([]string{"kazi", "login", "-username", "aminaj"})
	aErr, ok := core.IsAPIError(err)
	if !ok {
		t.Fatalf("run() error = %v, want an api error", err)
	}
	if aErr.Message != "authentication failed" {
		t.Errorf("message = %q", aErr.Message)
	}
	if _, ok := cli.session.Current(); ok {
		t.Error("a failed login must not install a session")
	}
}

func Test_commandLine_forgotPassword(t *testing.T) {
	_, cli := setup(t)

	if err := cli.run([]string{"kazi", "forgot-password"}); err != errHelp {
		t.Fatalf("run() error = %v with no email and nothing remembered, want help", err)
	}
	if err := cli.run([]string{"kazi", "forgot-password", "-email", "Amina@kazi.test"}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	// the cleaned address is remembered and prefilled on the next run
	if got := cli.store.LastResetEmail(); got != "amina@kazi.test" {
		t.Errorf("LastResetEmail() = %q, want %q", got, "amina@kazi.test")
	}
	if err := cli.run([]string{"kazi", "forgot-password"}); err != nil {
		t.Errorf("run() error = %v with a remembered email", err)
	}
}

func Test_commandLine_panels(t *testing.T) {
	srv, cli := setup(t)
	srv.SeedJob(t, "Go Developer", "Engineering")

	readPasswordFunc = func(int) ([]byte, error) { return []byte("s3cr3tpwd"), nil }
	defer func() { readPasswordFunc = term.ReadPassword }()
	if err := cli.run([]string{"kazi", "login", "-username", "aminaj"}); err != nil {
		t.Fatalf("login error = %v", err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{name: "employees", args: []string{"kazi", "employees"}},
		{name: "employees filtered", args: []string{"kazi", "employees", "-q", "amina"}},
		{name: "leaves", args: []string{"kazi", "leaves"}},
		{name: "attendance", args: []string{"kazi", "attendance"}},
		{name: "payroll", args: []string{"kazi", "payroll"}},
		{name: "projects", args: []string{"kazi", "projects"}},
		{name: "mail", args: []string{"kazi", "mail"}},
		{name: "notifications", args: []string{"kazi", "notifications"}},
		{name: "jobs", args: []string{"kazi", "jobs", "-open"}},
		{name: "events upcoming", args: []string{"kazi", "events", "-upcoming", "-q", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(tt.args); err != nil {
				t.Errorf("run(%v) error = %v", tt.args, err)
			}
		})
	}
}

func Test_commandLine_export(t *testing.T) {
	_, cli := setup(t)

	readPasswordFunc = func(int) ([]byte, error) { return []byte("s3cr3tpwd"), nil }
	defer func() { readPasswordFunc = term.ReadPassword }()
	if err := cli.run([]string{"kazi", "login", "-username", "aminaj"}); err != nil {
		t.Fatalf("login error = %v", err)
	}

	out := filepath.Join(t.TempDir(), "employees.csv")
	if err := cli.run([]string{"kazi", "employees", "-export", "csv", "-out", out}); err != nil {
		t.Fatalf("export error = %v", err)
	}
	if err := cli.run([]string{"kazi", "employees", "-export", "tsv", "-out", out}); err == nil {
		t.Error("unknown export format accepted")
	}
}
