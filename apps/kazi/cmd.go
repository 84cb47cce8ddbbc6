package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

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

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf    *core.Config
	store   *storesvc.FileStore
	session *core.SessionHolder
	client  *core.Client

	employees  *employee.Service
	leaves     *leave.Service
	attendance *attendance.Service
	payrolls   *payroll.Service
	projects   *project.Service
	mailbox    *mailbox.Service
	recruit    *recruit.Service
	events     *event.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -username USERNAME          - log in; the password will be prompted next")
	fmt.Println("  logout                            - drop the stored session")
	fmt.Println("  forgot-password [-email EMAIL]    - request a password reset link")
	fmt.Println("  employees [flags]                 - employee directory panel")
	fmt.Println("  leaves [flags]                    - leave requests panel")
	fmt.Println("  attendance [flags]                - attendance panel, check-in/out")
	fmt.Println("  payroll [flags]                   - payroll panel, payslip download")
	fmt.Println("  projects [flags]                  - projects panel")
	fmt.Println("  mail [flags]                      - internal mail panel")
	fmt.Println("  notifications                     - notifications panel")
	fmt.Println("  jobs [flags]                      - job postings panel (public)")
	fmt.Println("  events [flags]                    - events panel and month calendar")
	fmt.Println("\nPanel flags include -export csv|xlsx|pdf and -out FILE; run a command with -h for details.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "logout":
		return cli.logout()
	case "forgot-password":
		return cli.forgotPassword(ctx, args[2:])
	case "employees":
		return cli.employeesPanel(ctx, args[2:])
	case "leaves":
		return cli.leavesPanel(ctx, args[2:])
	case "attendance":
		return cli.attendancePanel(ctx, args[2:])
	case "payroll":
		return cli.payrollPanel(ctx, args[2:])
	case "projects":
		return cli.projectsPanel(ctx, args[2:])
	case "mail":
		return cli.mailPanel(ctx, args[2:])
	case "notifications":
		return cli.notificationsPanel(ctx)
	case "jobs":
		return cli.jobsPanel(ctx, args[2:])
	case "events":
		return cli.eventsPanel(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	uname := loginCmd.String("username", "", "The username to log in as. The password will be prompted next.")
	if err := loginCmd.Parse(args); err != nil {
		return err
	}
	if *uname == "" {
		loginCmd.Usage()
		return errHelp
	}

	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return err
	}

	sess, err := core.Login(ctx, cli.client, core.Credentials{Username: *uname, Password: string(pwd)})
	if err != nil {
		return err
	}
	if err := cli.session.Set(sess); err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", sess.Username, sess.Role)
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.session.Clear(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (cli *commandLine) forgotPassword(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("forgot-password", flag.ExitOnError)
	email := cmd.String("email", cli.store.LastResetEmail(), "The account's email address.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		cmd.Usage()
		return errHelp
	}

	req := core.PasswordReset{Email: *email}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := core.RequestPasswordReset(ctx, cli.client, req); err != nil {
		return err
	}
	// remember the address so the next run can prefill it
	if err := cli.store.SetLastResetEmail(req.Email); err != nil {
		return err
	}
	fmt.Println("password reset email sent to", req.Email)
	return nil
}
