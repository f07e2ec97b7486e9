package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theyeesha/physioreact/internal/domain"
	"github.com/theyeesha/physioreact/internal/service"
)

type SwapHandler struct {
	svc *service.SwapSvc
}

func NewSwapHandler(svc *service.SwapSvc) *SwapHandler {
	return &SwapHandler{svc: svc}
}

// POST /v1/swap-requests
func (h *SwapHandler) Create(c *gin.Context) {
	var in struct {
		RequesterShiftID string `json:"requester_shift_id" binding:"required"`
		TargetUserID     string `json:"target_user_id" binding:"required"`
		TargetShiftID    string `json:"target_shift_id"`
		SwapType         string `json:"swap_type" binding:"required"`
		Reason           string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sr, err := h.svc.Submit(c.Request.Context(), actorFrom(c), service.SubmitSwapInput{
		RequesterShiftID: in.RequesterShiftID,
		TargetUserID:     in.TargetUserID,
		TargetShiftID:    in.TargetShiftID,
		SwapType:         domain.SwapType(in.SwapType),
		Reason:           in.Reason,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, sr)
}

// PUT /v1/swap-requests/:id/decision (ADMIN)
func (h *SwapHandler) Decide(c *gin.Context) {
	var in struct {
		Decision      string `json:"decision" binding:"required"`
		AdminResponse string `json:"admin_response"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sr, err := h.svc.Decide(c.Request.Context(), actorFrom(c), c.Param("id"),
		service.Decision(in.Decision), in.AdminResponse)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sr)
}

// GET /v1/swap-requests
func (h *SwapHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
