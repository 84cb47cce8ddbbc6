// Package apitest runs an in-memory kazi backend for tests: the same
// {success, data, message} envelope, bearer-token auth and collection routes
// the real service exposes, backed by map tables instead of a database.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

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

var (
	secretKey       = []byte("secret")
	tokenExpiration = 10 * time.Minute
)

type (
	employeeRow struct {
		employee.Employee
		passwordHash []byte
	}

	// Server is the fake backend. Tables are exported through Seed* helpers
	// and the HTTP surface only.
	Server struct {
		app  *echo.Echo
		http *httptest.Server

		mutex         sync.RWMutex
		employees     map[string]*employeeRow
		leaves        map[string]*leave.Leave
		entries       map[string]*attendance.Entry
		payrolls      map[string]*payroll.Payroll
		projects      map[string]*project.Project
		tasks         map[string]*project.Task
		mails         map[string]*mailbox.Mail
		notifications map[string]*mailbox.Notification
		jobs          map[string]*recruit.Job
		applications  map[string]*recruit.Application
		interviews    map[string]*recruit.Interview
		events        map[string]*event.Event

		failStatus  int
		failMessage string
	}
)

func NewServer() *Server {
	s := &Server{
		employees:     make(map[string]*employeeRow),
		leaves:        make(map[string]*leave.Leave),
		entries:       make(map[string]*attendance.Entry),
		payrolls:      make(map[string]*payroll.Payroll),
		projects:      make(map[string]*project.Project),
		tasks:         make(map[string]*project.Task),
		mails:         make(map[string]*mailbox.Mail),
		notifications: make(map[string]*mailbox.Notification),
		jobs:          make(map[string]*recruit.Job),
		applications:  make(map[string]*recruit.Application),
		interviews:    make(map[string]*recruit.Interview),
		events:        make(map[string]*event.Event),
	}
	s.app = echo.New()
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(s.failureMiddleware)
	s.register()
	s.http = httptest.NewServer(s.app)
	return s
}

// URL is the base URL tests point their core.Client at.
func (s *Server) URL() string { return s.http.URL }

func (s *Server) Close() { s.http.Close() }

// Client wires a core.Client at this server.
func (s *Server) Client(session core.SessionSource) *core.Client {
	return core.NewClient(&core.ClientOptions{BaseURL: s.URL(), Session: session})
}

// FailNext makes the next request fail with the given status and message,
// whatever the route; used to simulate backend/server errors.
func (s *Server) FailNext(status int, message string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.failStatus = status
	s.failMessage = message
}

func (s *Server) failureMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		s.mutex.Lock()
		status, msg := s.failStatus, s.failMessage
		s.failStatus, s.failMessage = 0, ""
		s.mutex.Unlock()
		if status != 0 {
			return fail(ctx, status, msg)
		}
		return next(ctx)
	}
}

// requireAuth rejects requests without a valid bearer token. Public routes
// (login, forgot-password, job listing) are registered outside it.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return fail(ctx, http.StatusUnauthorized, "missing or malformed token")
		}
		claims := new(core.Claims)
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims,
			func(*jwt.Token) (interface{}, error) { return secretKey, nil })
		if err != nil || !token.Valid {
			return fail(ctx, http.StatusUnauthorized, "invalid token")
		}
		ctx.Set("claims", claims)
		return next(ctx)
	}
}

func contextClaims(ctx echo.Context) *core.Claims {
	claims, _ := ctx.Get("claims").(*core.Claims)
	return claims
}

func respond(ctx echo.Context, code int, data interface{}) error {
	return ctx.JSON(code, echo.Map{"success": true, "data": data})
}

func message(ctx echo.Context, code int, msg string) error {
	return ctx.JSON(code, echo.Map{"success": true, "message": msg})
}

func fail(ctx echo.Context, code int, msg string) error {
	return ctx.JSON(code, echo.Map{"success": false, "message": msg})
}

func generateToken(emp employee.Employee) (string, error) {
	now := time.Now()
	claims := &core.Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    "Kazi",
			Subject:   emp.ID,
			ExpiresAt: now.Add(tokenExpiration).Unix(),
			IssuedAt:  now.Unix(),
		},
		Role: emp.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}
