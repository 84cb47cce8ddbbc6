package apitest

import (
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

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

func (s *Server) register() {
	// un-authed endpoints
	s.app.POST("/auth/login", s.login)
	s.app.POST("/auth/forgot-password", s.forgotPassword)
	s.app.GET("/jobs", s.listJobs)
	s.app.POST("/jobs/:id/apply", s.applyForJob)

	a := s.app.Group("", s.requireAuth)

	a.GET("/employees", s.listEmployees)
	a.POST("/employees", s.createEmployee)
	a.GET("/employees/:id", s.getEmployee)
	a.PUT("/employees/:id", s.updateEmployee)
	a.DELETE("/employees/:id", s.deleteEmployee)
	a.POST("/employees/:id/photo", s.uploadPhoto)

	a.GET("/leaves", s.listLeaves)
	a.POST("/leaves", s.createLeave)
	a.GET("/leaves/:id", s.getLeave)
	a.PUT("/leaves/:id", s.updateLeave)
	a.DELETE("/leaves/:id", s.deleteLeave)

	a.GET("/attendance", s.listAttendance)
	a.POST("/attendance/check-in", s.checkIn)
	a.PUT("/attendance/:id/check-out", s.checkOut)
	a.DELETE("/attendance/:id", s.deleteAttendance)

	a.GET("/payrolls", s.listPayrolls)
	a.POST("/payrolls", s.createPayroll)
	a.GET("/payrolls/:id", s.getPayroll)
	a.PUT("/payrolls/:id", s.updatePayroll)
	a.DELETE("/payrolls/:id", s.deletePayroll)
	a.GET("/payrolls/:id/payslip", s.getPayslip)

	a.GET("/projects", s.listProjects)
	a.POST("/projects", s.createProject)
	a.GET("/projects/:id", s.getProject)
	a.PUT("/projects/:id", s.updateProject)
	a.DELETE("/projects/:id", s.deleteProject)
	a.GET("/projects/:id/tasks", s.listTasks)
	a.POST("/projects/:id/tasks", s.createTask)
	a.PUT("/projects/:id/tasks/:taskID", s.updateTask)
	a.DELETE("/projects/:id/tasks/:taskID", s.deleteTask)

	a.GET("/mails", s.listMails)
	a.POST("/mails", s.sendMail)
	a.GET("/mails/:id", s.getMail)
	a.PUT("/mails/:id", s.updateMail)
	a.DELETE("/mails/:id", s.deleteMail)
	a.GET("/notifications", s.listNotifications)
	a.PUT("/notifications/read-all", s.readAllNotifications)

	a.POST("/jobs", s.createJob)
	a.PUT("/jobs/:id", s.updateJob)
	a.DELETE("/jobs/:id", s.deleteJob)
	a.GET("/applications", s.listApplications)
	a.PUT("/applications/:id", s.updateApplication)
	a.GET("/interviews", s.listInterviews)
	a.POST("/interviews", s.scheduleInterview)
	a.DELETE("/interviews/:id", s.deleteInterview)

	a.GET("/events", s.listEvents)
	a.POST("/events", s.createEvent)
	a.GET("/events/:id", s.getEvent)
	a.DELETE("/events/:id", s.deleteEvent)
}

// Auth

func (s *Server) login(ctx echo.Context) error {
	var creds core.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, row := range s.employees {
		if row.Username != creds.Username {
			continue
		}
		if bcrypt.CompareHashAndPassword(row.passwordHash, []byte(creds.Password)) != nil {
			break
		}
		if !row.IsActive {
			return fail(ctx, http.StatusForbidden, "account deactivated")
		}
		token, err := generateToken(row.Employee)
		if err != nil {
			return fail(ctx, http.StatusInternalServerError, "")
		}
		return respond(ctx, http.StatusOK, echo.Map{
			"token": token, "id": row.ID, "username": row.Username, "role": row.Role,
		})
	}
	return fail(ctx, http.StatusBadRequest, "authentication failed")
}

func (s *Server) forgotPassword(ctx echo.Context) error {
	return message(ctx, http.StatusOK, "password reset email sent")
}

// Employees

func (s *Server) listEmployees(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]employee.Employee, 0, len(s.employees))
	for _, row := range s.employees {
		items = append(items, row.Employee)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return respond(ctx, http.StatusOK, items)
}

func (s *Server) createEmployee(ctx echo.Context) error {
	var ne employee.NewEmployee
	if err := ctx.Bind(&ne); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, row := range s.employees {
		if row.Username == ne.Username || row.Email == ne.Email {
			return fail(ctx, http.StatusBadRequest, "an employee with this username or email already exists")
		}
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(ne.Password), bcrypt.MinCost)
	now := time.Now().UTC()
	row := &employeeRow{
		Employee: employee.Employee{
			ID:         uuid.NewString(),
			Name:       ne.Name,
			Username:   ne.Username,
			Email:      ne.Email,
			Role:       core.RoleEmployee,
			Position:   ne.Position,
			Department: ne.Department,
			IsActive:   true,
			JoinedOn:   core.DateOf(now),
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		passwordHash: hash,
	}
	s.employees[row.ID] = row
	return respond(ctx, http.StatusCreated, row.Employee)
}

func (s *Server) getEmployee(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if row, ok := s.employees[ctx.Param("id")]; ok {
		return respond(ctx, http.StatusOK, row.Employee)
	}
	return fail(ctx, http.StatusNotFound, "employee not found")
}

func (s *Server) updateEmployee(ctx echo.Context) error {
	var ue employee.UpdateEmployee
	if err := ctx.Bind(&ue); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	row, ok := s.employees[ctx.Param("id")]
	if !ok {
		return fail(ctx, http.StatusNotFound, "employee not found")
	}
	if ue.Name != "" {
		row.Name = ue.Name
	}
	if ue.Email != "" {
		row.Email = ue.Email
	}
	if ue.Position != "" {
		row.Position = ue.Position
	}
	if ue.Department != "" {
		row.Department = ue.Department
	}
	if ue.Phone != "" {
		row.Phone.SetValid(ue.Phone)
	}
	if ue.IsActive != nil {
		row.IsActive = *ue.IsActive
	}
	row.UpdatedAt = time.Now().UTC()
	return respond(ctx, http.StatusOK, row.Employee)
}

func (s *Server) deleteEmployee(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.employees[ctx.Param("id")]; !ok {
		return fail(ctx, http.StatusNotFound, "employee not found")
	}
	delete(s.employees, ctx.Param("id"))
	return message(ctx, http.StatusOK, "employee deleted")
}

func (s *Server) uploadPhoto(ctx echo.Context) error {
	file, err := ctx.FormFile("profile_picture")
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "profile_picture file is required")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	row, ok := s.employees[ctx.Param("id")]
	if !ok {
		return fail(ctx, http.StatusNotFound, "employee not found")
	}
	row.PhotoURL.SetValid("/static/photos/" + file.Filename)
	return respond(ctx, http.StatusOK, row.Employee)
}

// Leaves

func (s *Server) listLeaves(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]leave.Leave, 0, len(s.leaves))
	for _, l := range s.leaves {
		items = append(items, *l)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return respond(ctx, http.StatusOK, items)
}

func (s *Server) createLeave(ctx echo.Context) error {
	var nl leave.NewLeave
	if err := ctx.Bind(&nl); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	claims := contextClaims(ctx)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	l := &leave.Leave{
		ID:         uuid.NewString(),
		EmployeeID: claims.Subject,
		Type:       nl.Type,
		From:       nl.From,
		To:         nl.To,
		Reason:     nl.Reason,
		Status:     leave.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if row, ok := s.employees[claims.Subject]; ok {
		l.EmployeeName = row.Name
	}
	s.leaves[l.ID] = l
	return respond(ctx, http.StatusCreated, l)
}

func (s *Server) getLeave(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if l, ok := s.leaves[ctx.Param("id")]; ok {
		return respond(ctx, http.StatusOK, l)
	}
	return fail(ctx, http.StatusNotFound, "leave not found")
}

func (s *Server) updateLeave(ctx echo.Context) error {
	var payload struct {
		Status string `json:"status"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	l, ok := s.leaves[ctx.Param("id")]
	if !ok {
		return fail(ctx, http.StatusNotFound, "leave not found")
	}
	if payload.Status != "" {
		l.Status = payload.Status
		s.pushNotification("leave", "your leave request is "+payload.Status)
	}
	return respond(ctx, http.StatusOK, l)
}

func (s *Server) deleteLeave(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.leaves[ctx.Param("id")]; !ok {
		return fail(ctx, http.StatusNotFound, "leave not found")
	}
	delete(s.leaves, ctx.Param("id"))
	return message(ctx, http.StatusOK, "leave deleted")
}

// Attendance

func (s *Server) listAttendance(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]attendance.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		items = append(items, *e)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CheckIn.Before(items[j].CheckIn) })
	return respond(ctx, http.StatusOK, items)
}

func (s *Server) checkIn(ctx echo.Context) error {
	var req attendance.CheckInRequest
	if err := ctx.Bind(&req); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	claims := contextClaims(ctx)
	now := time.Now().UTC()
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, e := range s.entries {
		if e.EmployeeID == claims.Subject && core.SameDay(e.CheckIn, now) {
			return fail(ctx, http.StatusBadRequest, "attendance already marked for today")
		}
	}
	e := &attendance.Entry{
		ID:         uuid.NewString(),
		EmployeeID: claims.Subject,
		Date:       core.DateOf(now),
		CheckIn:    now,
		Mode:       req.Mode,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}
	if row, ok := s.employees[claims.Subject]; ok {
		e.EmployeeName = row.Name
	}
	s.entries[e.ID] = e
	return respond(ctx, http.StatusCreated, e)
}

func (s *Server) checkOut(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	e, ok := s.entries[ctx.Param("id")]
	if !ok {
		return fail(ctx, http.StatusNotFound, "attendance entry not found")
	}
	if e.CheckOut.Valid {
		return fail(ctx, http.StatusBadRequest, "already checked out")
	}
	e.CheckOut.SetValid(time.Now().UTC())
	return respond(ctx, http.StatusOK, e)
}

func (s *Server) deleteAttendance(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.entries[ctx.Param("id")]; !ok {
		return fail(ctx, http.StatusNotFound, "attendance entry not found")
	}
	delete(s.entries, ctx.Param("id"))
	return message(ctx, http.StatusOK, "attendance entry deleted")
}

// Payroll

func (s *Server) listPayrolls(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]payroll.Payroll, 0, len(s.payrolls))
	for _, p := range s.payrolls {
		items = append(items, *p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Period < items[j].Period })
	return respond(ctx, http.StatusOK, items)
}

func (s *Server) createPayroll(ctx echo.Context) error {
	var np payroll.NewPayroll
	if err := ctx.Bind(&np); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	row, ok := s.employees[np.EmployeeID]
	if !ok {
		return fail(ctx, http.StatusBadRequest, "unknown employee")
	}
	p := &payroll.Payroll{
		ID:           uuid.NewString(),
		EmployeeID:   np.EmployeeID,
		EmployeeName: row.Name,
		Period:       np.Period,
		Basic:        np.Basic,
		Allowances:   np.Allowances,
		Deductions:   np.Deductions,
		Net:          np.Basic + np.Allowances - np.Deductions,
		Status:       payroll.StatusDraft,
	}
	s.payrolls[p.ID] = p
	return respond(ctx, http.StatusCreated, p)
}

func (s *Server) getPayroll(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if p, ok := s.payrolls[ctx.Param("id")]; ok {
		return respond(ctx, http.StatusOK, p)
	}
	return fail(ctx, http.StatusNotFound, "payroll not found")
}

func (s *Server) updatePayroll(ctx echo.Context) error {
	var payload struct {
		Status string `json:"status"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	p, ok := s.payrolls[ctx.Param("id")]
	if !ok {
		return fail(ctx, http.StatusNotFound, "payroll not found")
	}
	if payload.Status == payroll.StatusPaid {
		p.Status = payroll.StatusPaid
		p.PaidAt = time.Now().UTC()
	}
	return respond(ctx, http.StatusOK, p)
}

func (s *Server) deletePayroll(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.payrolls[ctx.Param("id")]; !ok {
		return fail(ctx, http.StatusNotFound, "payroll not found")
	}
	delete(s.payrolls, ctx.Param("id"))
	return message(ctx, http.StatusOK, "payroll deleted")
}

func (s *Server) getPayslip(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	p, ok := s.payrolls[ctx.Param("id")]
	if !ok {
		return fail(ctx, http.StatusNotFound, "payroll not found")
	}
	slip := payroll.Payslip{
		Payroll:     *p,
		CompanyName: "Kazi Demo Ltd",
		Lines: []payroll.SlipLine{
			{Label: "Basic salary", Amount: p.Basic},
			{Label: "Allowances", Amount: p.Allowances},
			{Label: "Deductions", Amount: -p.Deductions},
		},
	}
	if row, ok := s.employees[p.EmployeeID]; ok {
		slip.Position = row.Position
		slip.Department = row.Department
	}
	return respond(ctx, http.StatusOK, slip)
}

// Projects & tasks

func (s *Server) listProjects(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		items = append(items, *p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return respond(ctx, http.StatusOK, items)
}

func (s *Server) createProject(ctx echo.Context) error {
	var np project.NewProject
	if err := ctx.Bind(&np); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	p := &project.Project{
		ID:          uuid.NewString(),
		Name:        np.Name,
		Description: np.Description,
		Status:      project.StatusTodo,
		LeadID:      np.LeadID,
		StartDate:   np.StartDate,
		Deadline:    np.Deadline,
		CreatedAt:   time.Now().UTC(),
	}
	if row, ok := s.employees[np.LeadID]; ok {
		p.LeadName = row.Name
	}
	s.projects[p.ID] = p
	return respond(ctx, http.StatusCreated, p)
}

func (s *Server) getProject(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if p, ok := s.projects[ctx.Param("id")]; ok {
		return respond(ctx, http.StatusOK, p)
	}
	return fail(ctx, http.StatusNotFound, "project not found")
}

func (s *Server) updateProject(ctx echo.Context) error {
	var payload struct {
		Status string `json:"status"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	p, ok := s.projects[ctx.Param("id")]
	if !ok {
		return fail(ctx, http.StatusNotFound, "project not found")
	}
	if payload.Status != "" {
		p.Status = payload.Status
	}
	return respond(ctx, http.StatusOK, p)
}

func (s *Server) deleteProject(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.projects[ctx.Param("id")]; !ok {
		return fail(ctx, http.StatusNotFound, "project not found")
	}
	delete(s.projects, ctx.Param("id"))
	for id, t := range s.tasks {
		if t.ProjectID == ctx.Param("id") {
			delete(s.tasks, id)
		}
	}
	return message(ctx, http.StatusOK, "project deleted")
}

func (s *Server) listTasks(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]project.Task, 0)
	for _, t := range s.tasks {
		if t.ProjectID == ctx.Param("id") {
			items = append(items, *t)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	return respond(ctx, http.StatusOK, items)
}

func (s *Server) createTask(ctx echo.Context) error {
	var nt project.NewTask
	if err := ctx.Bind(&nt); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.projects[ctx.Param("id")]; !ok {
		return fail(ctx, http.StatusNotFound, "project not found")
	}
	t := &project.Task{
		ID:        uuid.NewString(),
		ProjectID: ctx.Param("id"),
		Title:     nt.Title,
		Status:    project.StatusTodo,
		DueDate:   nt.DueDate,
	}
	if nt.AssigneeID != "" {
		t.AssigneeID.SetValid(nt.AssigneeID)
		if row, ok := s.employees[nt.AssigneeID]; ok {
			t.AssigneeName.SetValid(row.Name)
		}
	}
	s.tasks[t.ID] = t
	return respond(ctx, http.StatusCreated, t)
}

func (s *Server) updateTask(ctx echo.Context) error {
	var payload struct {
		Status string `json:"status"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	t, ok := s.tasks[ctx.Param("taskID")]
	if !ok || t.ProjectID != ctx.Param("id") {
		return fail(ctx, http.StatusNotFound, "task not found")
	}
	if payload.Status != "" {
		t.Status = payload.Status
	}
	return respond(ctx, http.StatusOK, t)
}

func (s *Server) deleteTask(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	t, ok := s.tasks[ctx.Param("taskID")]
	if !ok || t.ProjectID != ctx.Param("id") {
		return fail(ctx, http.StatusNotFound, "task not found")
	}
	delete(s.tasks, t.ID)
	return message(ctx, http.StatusOK, "task deleted")
}

// Mail & notifications

func (s *Server) listMails(ctx echo.Context) error {
	claims := contextClaims(ctx)
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]mailbox.Mail, 0)
	for _, m := range s.mails {
		if m.ToID == claims.Subject || m.FromID == claims.Subject {
			items = append(items, *m)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SentAt.Before(items[j].SentAt) })
	return respond(ctx, http.StatusOK, items)
}

func (s *Server) sendMail(ctx echo.Context) error {
	var nm mailbox.NewMail
	if err := ctx.Bind(&nm); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	claims := contextClaims(ctx)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	to, ok := s.employees[nm.ToID]
	if !ok {
		return fail(ctx, http.StatusBadRequest, "unknown recipient")
	}
	m := &mailbox.Mail{
		ID:      uuid.NewString(),
		FromID:  claims.Subject,
		ToID:    nm.ToID,
		ToName:  to.Name,
		Subject: nm.Subject,
		Body:    nm.Body,
		SentAt:  time.Now().UTC(),
	}
	if from, ok := s.employees[claims.Subject]; ok {
		m.FromName = from.Name
	}
	s.mails[m.ID] = m
	return respond(ctx, http.StatusCreated, m)
}

func (s *Server) getMail(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if m, ok := s.mails[ctx.Param("id")]; ok {
		return respond(ctx, http.StatusOK, m)
	}
	return fail(ctx, http.StatusNotFound, "mail not found")
}

func (s *Server) updateMail(ctx echo.Context) error {
	var payload struct {
		Read bool `json:"read"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	m, ok := s.mails[ctx.Param("id")]
	if !ok {
		return fail(ctx, http.StatusNotFound, "mail not found")
	}
	m.Read = payload.Read
	return respond(ctx, http.StatusOK, m)
}

func (s *Server) deleteMail(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.mails[ctx.Param("id")]; !ok {
		return fail(ctx, http.StatusNotFound, "mail not found")
	}
	delete(s.mails, ctx.Param("id"))
	return message(ctx, http.StatusOK, "mail deleted")
}

func (s *Server) listNotifications(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]mailbox.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		items = append(items, *n)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return respond(ctx, http.StatusOK, items)
}

func (s *Server) readAllNotifications(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, n := range s.notifications {
		n.Read = true
	}
	return message(ctx, http.StatusOK, "all notifications read")
}

// caller must hold s.mutex
func (s *Server) pushNotification(kind, text string) {
	n := &mailbox.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	s.notifications[n.ID] = n
}

// Recruitment

func (s *Server) listJobs(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]recruit.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		items = append(items, *j)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	return respond(ctx, http.StatusOK, items)
}

func (s *Server) createJob(ctx echo.Context) error {
	var nj recruit.NewJob
	if err := ctx.Bind(&nj); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	j := &recruit.Job{
		ID:          uuid.NewString(),
		Title:       nj.Title,
		Department:  nj.Department,
		Location:    nj.Location,
		Description: nj.Description,
		Status:      recruit.JobOpen,
		ClosesOn:    nj.ClosesOn,
		PostedAt:    time.Now().UTC(),
	}
	s.jobs[j.ID] = j
	return respond(ctx, http.StatusCreated, j)
}

func (s *Server) updateJob(ctx echo.Context) error {
	var payload struct {
		Status string `json:"status"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	j, ok := s.jobs[ctx.Param("id")]
	if !ok {
		return fail(ctx, http.StatusNotFound, "job not found")
	}
	if payload.Status != "" {
		j.Status = payload.Status
	}
	return respond(ctx, http.StatusOK, j)
}

func (s *Server) deleteJob(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.jobs[ctx.Param("id")]; !ok {
		return fail(ctx, http.StatusNotFound, "job not found")
	}
	delete(s.jobs, ctx.Param("id"))
	return message(ctx, http.StatusOK, "job deleted")
}

func (s *Server) applyForJob(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	j, ok := s.jobs[ctx.Param("id")]
	if !ok {
		return fail(ctx, http.StatusNotFound, "job not found")
	}
	if j.Status != recruit.JobOpen {
		return fail(ctx, http.StatusBadRequest, "job is closed")
	}
	a := &recruit.Application{
		ID:        uuid.NewString(),
		JobID:     j.ID,
		JobTitle:  j.Title,
		Candidate: ctx.FormValue("candidate"),
		Email:     ctx.FormValue("email"),
		Stage:     recruit.StageApplied,
		AppliedAt: time.Now().UTC(),
	}
	if phone := ctx.FormValue("phone"); phone != "" {
		a.Phone.SetValid(phone)
	}
	if file, err := ctx.FormFile("resume"); err == nil {
		a.ResumeURL.SetValid("/static/resumes/" + file.Filename)
	}
	s.applications[a.ID] = a
	return respond(ctx, http.StatusCreated, a)
}

func (s *Server) listApplications(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]recruit.Application, 0, len(s.applications))
	for _, a := range s.applications {
		items = append(items, *a)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].AppliedAt.Before(items[j].AppliedAt) })
	return respond(ctx, http.StatusOK, items)
}

func (s *Server) updateApplication(ctx echo.Context) error {
	var payload struct {
		Stage string `json:"stage"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	a, ok := s.applications[ctx.Param("id")]
	if !ok {
		return fail(ctx, http.StatusNotFound, "application not found")
	}
	if payload.Stage != "" {
		a.Stage = payload.Stage
	}
	return respond(ctx, http.StatusOK, a)
}

func (s *Server) listInterviews(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]recruit.Interview, 0, len(s.interviews))
	for _, i := range s.interviews {
		items = append(items, *i)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ScheduledAt.Before(items[j].ScheduledAt) })
	return respond(ctx, http.StatusOK, items)
}

func (s *Server) scheduleInterview(ctx echo.Context) error {
	var ni recruit.NewInterview
	if err := ctx.Bind(&ni); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	a, ok := s.applications[ni.ApplicationID]
	if !ok {
		return fail(ctx, http.StatusBadRequest, "unknown application")
	}
	i := &recruit.Interview{
		ID:            uuid.NewString(),
		ApplicationID: a.ID,
		Candidate:     a.Candidate,
		JobTitle:      a.JobTitle,
		ScheduledAt:   ni.ScheduledAt,
		Panel:         ni.Panel,
		Location:      ni.Location,
		Notes:         ni.Notes,
	}
	a.Stage = recruit.StageInterview
	s.interviews[i.ID] = i
	s.pushNotification("interview", "interview scheduled with "+a.Candidate)
	return respond(ctx, http.StatusCreated, i)
}

func (s *Server) deleteInterview(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.interviews[ctx.Param("id")]; !ok {
		return fail(ctx, http.StatusNotFound, "interview not found")
	}
	delete(s.interviews, ctx.Param("id"))
	return message(ctx, http.StatusOK, "interview cancelled")
}

// Events

func (s *Server) listEvents(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	items := make([]event.Event, 0, len(s.events))
	for _, e := range s.events {
		items = append(items, *e)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartDate.Before(items[j].StartDate.Time) })
	return respond(ctx, http.StatusOK, items)
}

func (s *Server) createEvent(ctx echo.Context) error {
	var ne event.NewEvent
	if err := ctx.Bind(&ne); err != nil {
		return fail(ctx, http.StatusBadRequest, "malformed payload")
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	e := &event.Event{
		ID:          uuid.NewString(),
		Title:       ne.Title,
		Kind:        ne.Kind,
		Description: ne.Description,
		StartDate:   ne.StartDate,
		EndDate:     ne.EndDate,
		Location:    ne.Location,
		CreatedAt:   time.Now().UTC(),
	}
	s.events[e.ID] = e
	return respond(ctx, http.StatusCreated, e)
}

func (s *Server) getEvent(ctx echo.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if e, ok := s.events[ctx.Param("id")]; ok {
		return respond(ctx, http.StatusOK, e)
	}
	return fail(ctx, http.StatusNotFound, "event not found")
}

func (s *Server) deleteEvent(ctx echo.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.events[ctx.Param("id")]; !ok {
		return fail(ctx, http.StatusNotFound, "event not found")
	}
	delete(s.events, ctx.Param("id"))
	return message(ctx, http.StatusOK, "event deleted")
}
