package handler

import (
	"attendance-tracker/internal/repository"
	"attendance-tracker/internal/service"
	"attendance-tracker/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	auth       *service.AuthService
	attendance *service.AttendanceService
	breaks     *service.BreakService
	leaves     *service.LeaveService
	employees  *service.EmployeeService
	history    *service.HistoryService
	users      repository.UserRepository
	tokens     *token.Manager
	logger     *logrus.Logger
}

func NewHandler(
	auth *service.AuthService,
	attendance *service.AttendanceService,
	breaks *service.BreakService,
	leaves *service.LeaveService,
	employees *service.EmployeeService,
	history *service.HistoryService,
	users repository.UserRepository,
	tokens *token.Manager,
) *Handler {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Handler{
		auth:       auth,
		attendance: attendance,
		breaks:     breaks,
		leaves:     leaves,
		employees:  employees,
		history:    history,
		users:      users,
		tokens:     tokens,
		logger:     logger,
	}
}

// RegisterRoutes mounts every endpoint on the router. Leave routes also
// re-check that the caller's account still exists and is active.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Live)

	api := r.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
	}

	attendance := api.Group("/attendance")
	attendance.Use(RequireAuth(h.tokens))
	{
		attendance.GET("/status/:userId", h.AttendanceStatus)
		attendance.POST("/checkin", h.CheckIn)
		attendance.POST("/checkout", h.CheckOut)
		attendance.GET("/history/:userId", h.AttendanceHistory)
	}

	breaks := api.Group("/breaks")
	breaks.Use(RequireAuth(h.tokens))
	{
		breaks.GET("/status", h.BreakStatus)
		breaks.POST("/start", h.StartBreak)
		breaks.POST("/end", h.EndBreak)
	}

	leaves := api.Group("/leaves")
	leaves.Use(RequireAuth(h.tokens), RequireActiveUser(h.users))
	{
		leaves.POST("/submit", h.SubmitLeave)
		leaves.GET("/getleaves", h.GetLeaves)
		leaves.PUT("/update-status", h.UpdateLeaveStatus)
	}

	employees := api.Group("/employees")
	employees.Use(RequireAuth(h.tokens))
	{
		employees.GET("/all/:userId", h.AllEmployees)
		employees.DELETE("/:employeeId", h.DeleteEmployee)
		employees.POST("/assign", h.AssignEmployee)
	}
}

func (h *Handler) Live(c *gin.Context) {
	c.String(200, "Server running successfully, ready to accept client requests")
}
