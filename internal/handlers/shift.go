package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theyeesha/physioreact/internal/service"
)

type ShiftHandler struct {
	svc *service.ShiftSvc
}

func NewShiftHandler(svc *service.ShiftSvc) *ShiftHandler {
	return &ShiftHandler{svc: svc}
}

// POST /v1/shifts (ADMIN)
func (h *ShiftHandler) Create(c *gin.Context) {
	var in struct {
		UserID    string `json:"user_id" binding:"required"`
		Date      string `json:"date" binding:"required"`
		StartTime string `json:"start_time" binding:"required"`
		EndTime   string `json:"end_time" binding:"required"`
		Location  string `json:"location" binding:"required"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sh, err := h.svc.Assign(c.Request.Context(), actorFrom(c), service.AssignShiftInput{
		UserID:    in.UserID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Location:  in.Location,
		Notes:     in.Notes,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, sh)
}

// PUT /v1/shifts/:id (ADMIN)
func (h *ShiftHandler) Update(c *gin.Context) {
	var in struct {
		Date      string  `json:"date"`
		StartTime string  `json:"start_time"`
		EndTime   string  `json:"end_time"`
		Location  string  `json:"location"`
		Notes     *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sh, err := h.svc.Update(c.Request.Context(), actorFrom(c), c.Param("id"), service.UpdateShiftInput{
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Location:  in.Location,
		Notes:     in.Notes,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sh)
}

// DELETE /v1/shifts/:id (ADMIN, soft delete)
func (h *ShiftHandler) Delete(c *gin.Context) {
	if err := h.svc.Remove(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "shift removed"})
}

// GET /v1/shifts
func (h *ShiftHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/shifts/user/:id
func (h *ShiftHandler) ListForUser(c *gin.Context) {
	out, err := h.svc.ListForUser(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
