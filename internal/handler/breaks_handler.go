package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) BreakStatus(c *gin.Context) {
	claims := ClaimsFrom(c)

	status, err := h.breaks.Status(claims.UserID, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *Handler) StartBreak(c *gin.Context) {
	claims := ClaimsFrom(c)

	brk, err := h.breaks.Start(claims.UserID, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Break started",
		"break":   brk,
	})
}

func (h *Handler) EndBreak(c *gin.Context) {
	claims := ClaimsFrom(c)

	brk, err := h.breaks.End(claims.UserID, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Break ended",
		"break":   brk,
	})
}
