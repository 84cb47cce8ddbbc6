package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/attendance"
	"github.com/trezcool/kazi/core/employee"
	"github.com/trezcool/kazi/core/event"
	"github.com/trezcool/kazi/core/leave"
	"github.com/trezcool/kazi/core/mailbox"
	"github.com/trezcool/kazi/core/payroll"
	"github.com/trezcool/kazi/core/project"
	"github.com/trezcool/kazi/core/recruit"
)

// runPanel is the console rendition of a resource panel: fetch, filter
// client-side, then render or export the visible rows.
func runPanel[T core.Record](
	ctx context.Context,
	fetch core.Fetcher[T],
	table func([]T) core.Table,
	filters map[string]core.Predicate[T],
	format, out string,
) error {
	lc := core.NewListController(fetch)
	for key, pred := range filters {
		lc.SetFilter(key, pred)
	}
	if err := lc.Refresh(ctx); err != nil {
		return err
	}
	t := table(lc.VisibleRows())
	if format != "" {
		return exportTable(t, format, out)
	}
	renderTable(t)
	return nil
}

// mutateAndShow runs one confirm-gated mutation against a panel, then renders
// the refetched rows.
func mutateAndShow[T core.Record](
	ctx context.Context,
	fetch core.Fetcher[T],
	table func([]T) core.Table,
	key, prompt, successMsg string,
	action func(ctx context.Context) error,
) error {
	lc := core.NewListController(fetch)
	mut := core.NewMutator(lc, consoleConfirmer{}, consoleNotifier{}, nil)
	if err := mut.Run(ctx, key, prompt, successMsg, action); err != nil {
		if err == core.ErrCancelled {
			return nil
		}
		return err
	}
	renderTable(table(lc.VisibleRows()))
	return nil
}

func (cli *commandLine) employeesPanel(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("employees", flag.ExitOnError)
	query := cmd.String("q", "", "search name, username, email or position")
	dept := cmd.String("dept", "", "filter by department")
	inactive := cmd.Bool("inactive", false, "show deactivated accounts too")
	del := cmd.String("delete", "", "delete the employee with this id (asks for confirmation)")
	format := cmd.String("export", "", "export visible rows: csv, xlsx or pdf")
	out := cmd.String("out", "", "export file path")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	if *del != "" {
		return mutateAndShow(ctx, cli.employees.Fetcher(), employee.Table,
			*del, "delete employee "+*del+"?", "employee deleted",
			func(ctx context.Context) error { return cli.employees.Delete(ctx, *del) })
	}

	filters := map[string]core.Predicate[employee.Employee]{
		"search":     employee.SearchFilter(*query),
		"department": employee.DepartmentFilter(*dept),
	}
	if !*inactive {
		filters["active"] = employee.ActiveFilter(true)
	}
	return runPanel(ctx, cli.employees.Fetcher(), employee.Table, filters, *format, *out)
}

func (cli *commandLine) leavesPanel(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("leaves", flag.ExitOnError)
	status := cmd.String("status", "", "filter by status: pending, approved or rejected")
	approve := cmd.String("approve", "", "approve the leave with this id")
	reject := cmd.String("reject", "", "reject the leave with this id")
	apply := cmd.Bool("apply", false, "apply for leave (-type, -from, -to, -reason)")
	typ := cmd.String("type", leave.TypeAnnual, "leave type")
	from := cmd.String("from", "", "first day (2006-01-02)")
	to := cmd.String("to", "", "last day (2006-01-02)")
	reason := cmd.String("reason", "", "reason for the request")
	format := cmd.String("export", "", "export visible rows: csv, xlsx or pdf")
	out := cmd.String("out", "", "export file path")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	switch {
	case *approve != "":
		return mutateAndShow(ctx, cli.leaves.Fetcher(), leave.Table,
			*approve, "approve leave "+*approve+"?", "leave approved",
			func(ctx context.Context) error { _, err := cli.leaves.Approve(ctx, *approve); return err })
	case *reject != "":
		return mutateAndShow(ctx, cli.leaves.Fetcher(), leave.Table,
			*reject, "reject leave "+*reject+"?", "leave rejected",
			func(ctx context.Context) error { _, err := cli.leaves.Reject(ctx, *reject); return err })
	case *apply:
		nl := leave.NewLeave{Type: *typ, Reason: *reason}
		var err error
		if nl.From, err = core.ParseDate(*from); err != nil {
			return err
		}
		if nl.To, err = core.ParseDate(*to); err != nil {
			return err
		}
		l, err := cli.leaves.Apply(ctx, nl)
		if err != nil {
			return err
		}
		fmt.Println("leave request submitted:", l.ID)
		return nil
	}

	filters := map[string]core.Predicate[leave.Leave]{
		"status": leave.StatusFilter(*status),
	}
	return runPanel(ctx, cli.leaves.Fetcher(), leave.Table, filters, *format, *out)
}

func (cli *commandLine) attendancePanel(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("attendance", flag.ExitOnError)
	checkin := cmd.String("checkin", "", "check in: gps or manual")
	lat := cmd.Float64("lat", 0, "latitude for gps check-in")
	lon := cmd.Float64("lon", 0, "longitude for gps check-in")
	checkout := cmd.String("checkout", "", "check out of the entry with this id")
	mode := cmd.String("mode", "", "filter by mode: gps or manual")
	format := cmd.String("export", "", "export visible rows: csv, xlsx or pdf")
	out := cmd.String("out", "", "export file path")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	switch {
	case *checkin != "":
		sess, ok := cli.session.Current()
		if !ok {
			return core.NewAPIError(401, "log in first")
		}
		// skip the round trip when today is already marked locally
		if cli.store.AttendanceMarked(sess.ID, time.Now()) {
			fmt.Println("attendance already marked for today")
			return nil
		}
		req := attendance.CheckInRequest{Mode: *checkin}
		if *checkin == attendance.ModeGPS {
			req.Latitude = null.Float64From(*lat)
			req.Longitude = null.Float64From(*lon)
		}
		entry, err := cli.attendance.CheckIn(ctx, req)
		if err != nil {
			return err
		}
		if err := cli.store.MarkAttendance(sess.ID, time.Now()); err != nil {
			return err
		}
		fmt.Println("checked in at", entry.CheckIn.Local().Format("15:04"))
		return nil
	case *checkout != "":
		entry, err := cli.attendance.CheckOut(ctx, *checkout)
		if err != nil {
			return err
		}
		fmt.Println("checked out at", entry.CheckOut.Time.Local().Format("15:04"))
		return nil
	}

	filters := map[string]core.Predicate[attendance.Entry]{
		"mode": attendance.ModeFilter(*mode),
	}
	return runPanel(ctx, cli.attendance.Fetcher(), attendance.Table, filters, *format, *out)
}

func (cli *commandLine) payrollPanel(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("payroll", flag.ExitOnError)
	period := cmd.String("period", "", "filter by period (2006-01)")
	payslip := cmd.String("payslip", "", "write the payslip PDF for the pay record with this id")
	markPaid := cmd.String("paid", "", "mark the pay record with this id as paid")
	format := cmd.String("export", "", "export visible rows: csv, xlsx or pdf")
	out := cmd.String("out", "", "export file path")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	switch {
	case *payslip != "":
		slip, err := cli.payrolls.Payslip(ctx, *payslip)
		if err != nil {
			return err
		}
		return writePayslip(slip, *out)
	case *markPaid != "":
		return mutateAndShow(ctx, cli.payrolls.Fetcher(), payroll.Table,
			*markPaid, "mark payroll "+*markPaid+" as paid?", "payroll marked paid",
			func(ctx context.Context) error { _, err := cli.payrolls.MarkPaid(ctx, *markPaid); return err })
	}

	filters := map[string]core.Predicate[payroll.Payroll]{
		"period": payroll.PeriodFilter(*period),
	}
	return runPanel(ctx, cli.payrolls.Fetcher(), payroll.Table, filters, *format, *out)
}

func (cli *commandLine) projectsPanel(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("projects", flag.ExitOnError)
	status := cmd.String("status", "", "filter by status: todo, in-progress or done")
	query := cmd.String("q", "", "search name or description")
	tasks := cmd.String("tasks", "", "list the tasks of the project with this id")
	format := cmd.String("export", "", "export visible rows: csv, xlsx or pdf")
	out := cmd.String("out", "", "export file path")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	if *tasks != "" {
		return runPanel(ctx, cli.projects.TaskFetcher(*tasks), project.TaskTable, nil, *format, *out)
	}

	filters := map[string]core.Predicate[project.Project]{
		"status": project.StatusFilter(*status),
		"search": project.SearchFilter(*query),
	}
	return runPanel(ctx, cli.projects.Fetcher(), project.Table, filters, *format, *out)
}

func (cli *commandLine) mailPanel(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("mail", flag.ExitOnError)
	unread := cmd.Bool("unread", false, "only unread mail")
	query := cmd.String("q", "", "search subject, body or sender")
	send := cmd.Bool("send", false, "send a message (-to, -subject, -body)")
	to := cmd.String("to", "", "recipient employee id")
	subject := cmd.String("subject", "", "message subject")
	body := cmd.String("body", "", "message body")
	read := cmd.String("read", "", "mark the message with this id as read")
	del := cmd.String("delete", "", "delete the message with this id (asks for confirmation)")
	format := cmd.String("export", "", "export visible rows: csv, xlsx or pdf")
	out := cmd.String("out", "", "export file path")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	switch {
	case *send:
		m, err := cli.mailbox.Send(ctx, mailbox.NewMail{ToID: *to, Subject: *subject, Body: *body})
		if err != nil {
			return err
		}
		fmt.Println("sent:", m.ID)
		return nil
	case *read != "":
		_, err := cli.mailbox.MarkRead(ctx, *read)
		return err
	case *del != "":
		return mutateAndShow(ctx, cli.mailbox.Fetcher(), mailbox.Table,
			*del, "delete message "+*del+"?", "message deleted",
			func(ctx context.Context) error { return cli.mailbox.Delete(ctx, *del) })
	}

	filters := map[string]core.Predicate[mailbox.Mail]{
		"search": mailbox.SearchFilter(*query),
	}
	if *unread {
		filters["unread"] = mailbox.UnreadFilter()
	}
	return runPanel(ctx, cli.mailbox.Fetcher(), mailbox.Table, filters, *format, *out)
}

func (cli *commandLine) notificationsPanel(ctx context.Context) error {
	items, err := cli.mailbox.Notifications(ctx)
	if err != nil {
		return err
	}
	t := core.Table{Title: "Notifications", Headers: []string{"ID", "Kind", "Text", "Read"}}
	for _, n := range items {
		read := "no"
		if n.Read {
			read = "yes"
		}
		t.Rows = append(t.Rows, []string{n.ID, n.Kind, n.Text, read})
	}
	renderTable(t)
	return cli.mailbox.MarkAllNotificationsRead(ctx)
}

func (cli *commandLine) jobsPanel(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("jobs", flag.ExitOnError)
	query := cmd.String("q", "", "search title, department or location")
	open := cmd.Bool("open", false, "only open postings")
	applications := cmd.Bool("applications", false, "list applications instead of postings")
	interviews := cmd.Bool("interviews", false, "list scheduled interviews instead of postings")
	format := cmd.String("export", "", "export visible rows: csv, xlsx or pdf")
	out := cmd.String("out", "", "export file path")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	switch {
	case *applications:
		return runPanel(ctx, cli.recruit.ApplicationFetcher(), recruit.ApplicationTable, nil, *format, *out)
	case *interviews:
		items, err := cli.recruit.Interviews(ctx)
		if err != nil {
			return err
		}
		t := core.Table{Title: "Interviews", Headers: []string{"ID", "Candidate", "Job", "When", "Location"}}
		for _, i := range core.Upcoming(items) {
			t.Rows = append(t.Rows, []string{
				i.ID, i.Candidate, i.JobTitle, i.ScheduledAt.Local().Format("2006-01-02 15:04"), i.Location,
			})
		}
		renderTable(t)
		return nil
	}

	filters := map[string]core.Predicate[recruit.Job]{
		"search": recruit.JobSearchFilter(*query),
	}
	if *open {
		filters["status"] = recruit.JobStatusFilter(recruit.JobOpen)
	}
	return runPanel(ctx, cli.recruit.JobFetcher(), recruit.JobTable, filters, *format, *out)
}

func (cli *commandLine) eventsPanel(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("events", flag.ExitOnError)
	month := cmd.String("month", "", "render the month calendar (2006-01; defaults to this month)")
	upcoming := cmd.Bool("upcoming", false, "only events starting today or later")
	query := cmd.String("q", "", "search title or description")
	format := cmd.String("export", "", "export visible rows: csv, xlsx or pdf")
	out := cmd.String("out", "", "export file path")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	if *month != "" || (!*upcoming && *query == "" && *format == "") {
		anchor := core.ThisMonth()
		if *month != "" {
			parsed, err := time.Parse("2006-01", *month)
			if err != nil {
				return err
			}
			anchor = parsed
		}
		items, err := cli.events.List(ctx)
		if err != nil {
			return err
		}
		renderCalendar(anchor, items)
		return nil
	}

	var filters map[string]core.Predicate[event.Event]
	fetch := cli.events.Fetcher()
	if *upcoming {
		fetch = func(ctx context.Context) ([]event.Event, error) { return cli.events.Upcoming(ctx) }
	}
	if *query != "" {
		filters = map[string]core.Predicate[event.Event]{"search": event.SearchFilter(*query)}
	}
	return runPanel(ctx, fetch, event.Table, filters, *format, *out)
}

// renderCalendar prints the month grid, one line per week, marking days that
// carry events.
func renderCalendar(anchor time.Time, items []event.Event) {
	fmt.Println(anchor.Format("January 2006"))
	fmt.Println("Sun    Mon    Tue    Wed    Thu    Fri    Sat")
	grid := core.MonthGrid(anchor, items)
	for i, day := range grid {
		marker := "  "
		if n := len(day.Records); n > 0 {
			marker = fmt.Sprintf("*%d", n)
		}
		cell := fmt.Sprintf("%2d %s  ", day.Date.Day(), marker)
		if !day.InMonth {
			cell = "       "
		}
		fmt.Print(cell)
		if (i+1)%7 == 0 {
			fmt.Println()
		}
	}
	for _, day := range grid {
		for _, e := range day.Records {
			if day.InMonth && core.SameDay(day.Date, e.StartsAt()) {
				fmt.Printf("%s  %s (%s)\n", e.StartDate.String(), e.Title, e.Kind)
			}
		}
	}
}
