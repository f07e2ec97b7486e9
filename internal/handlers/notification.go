package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theyeesha/physioreact/internal/service"
)

type NotificationHandler struct {
	svc *service.NotificationSvc
}

func NewNotificationHandler(svc *service.NotificationSvc) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// GET /v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	out, err := h.svc.ListForActor(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.svc.MarkRead(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

// PUT /v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.svc.MarkAllRead(c.Request.Context(), actorFrom(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}
