package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type attendanceRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) AttendanceStatus(c *gin.Context) {
	userID := c.Param("userId")
	claims := ClaimsFrom(c)

	if userID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized access"})
		return
	}

	status, err := h.attendance.Status(userID, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *Handler) CheckIn(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required"})
		return
	}

	claims := ClaimsFrom(c)
	if req.UserID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized access"})
		return
	}

	attendance, err := h.attendance.CheckIn(req.UserID, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Check-in successful",
		"attendance": attendance,
	})
}

func (h *Handler) CheckOut(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required"})
		return
	}

	claims := ClaimsFrom(c)
	if req.UserID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized access"})
		return
	}

	attendance, breakClosed, err := h.attendance.CheckOut(req.UserID, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "Check-out successful."
	if breakClosed {
		message += " Active break was automatically ended."
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"attendance": attendance,
	})
}

func (h *Handler) AttendanceHistory(c *gin.Context) {
	userID := c.Param("userId")
	claims := ClaimsFrom(c)

	if userID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized access"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 {
		limit = 5
	}

	result, err := h.history.History(userID, page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Attendance history retrieved successfully",
		"history":    result.History,
		"pagination": result.Pagination,
	})
}
