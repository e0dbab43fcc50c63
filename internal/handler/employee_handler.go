package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AllEmployees(c *gin.Context) {
	userID := c.Param("userId")
	claims := ClaimsFrom(c)

	if userID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized access"})
		return
	}

	roster, err := h.employees.Roster(claims.UserID, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Employees retrieved successfully",
		"employees": roster,
	})
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	employeeID := c.Param("employeeId")
	if employeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Employee ID is required"})
		return
	}

	claims := ClaimsFrom(c)

	if err := h.employees.Remove(claims.UserID, employeeID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

type assignEmployeeRequest struct {
	EmployeeUserID string `json:"employeeUserId"`
}

func (h *Handler) AssignEmployee(c *gin.Context) {
	var req assignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EmployeeUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "employeeUserId is required"})
		return
	}

	claims := ClaimsFrom(c)

	employee, err := h.employees.Assign(claims.UserID, req.EmployeeUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Employee assigned successfully",
		"employee": employee,
	})
}
