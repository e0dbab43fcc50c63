package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const leaveDateFormat = "2006-01-02"

type submitLeaveRequest struct {
	UserID    string `json:"userId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

func (h *Handler) SubmitLeave(c *gin.Context) {
	var req submitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	if req.UserID == "" || req.StartDate == "" || req.EndDate == "" || req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	claims := ClaimsFrom(c)
	if req.UserID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized access"})
		return
	}

	startDate, err := time.ParseInLocation(leaveDateFormat, req.StartDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	endDate, err := time.ParseInLocation(leaveDateFormat, req.EndDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	leave, message, err := h.leaves.Submit(req.UserID, startDate, endDate, req.Reason, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"leave":   leave,
	})
}

func (h *Handler) GetLeaves(c *gin.Context) {
	claims := ClaimsFrom(c)

	leaves, err := h.leaves.Upcoming(claims.UserID, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Leaves retrieved successfully",
		"leaves":  leaves,
	})
}

type updateLeaveStatusRequest struct {
	LeaveID uint   `json:"leaveId"`
	Status  string `json:"status"`
}

func (h *Handler) UpdateLeaveStatus(c *gin.Context) {
	var req updateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.LeaveID == 0 || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "leaveId and status are required"})
		return
	}

	claims := ClaimsFrom(c)

	leave, err := h.leaves.UpdateStatus(claims.UserID, req.LeaveID, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Leave status updated successfully",
		"leave":   leave,
	})
}
