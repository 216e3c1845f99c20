package handlers

import (
	"net/http"

	"servitech/services/notify"
	"servitech/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler serves the per-user notification endpoints.
type NotificationHandler struct {
	Notifications notify.Service
}

func NewNotificationHandler(svc notify.Service) *NotificationHandler {
	return &NotificationHandler{Notifications: svc}
}

// List returns the authenticated user's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	notifs, err := h.Notifications.List(c.Request.Context(), principalID(c))
	if err != nil {
		getLogger(c).Error("failed to list notifications", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list notifications", "")
		return
	}
	c.JSON(http.StatusOK, notifs)
}

// MarkRead flags the given notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var input struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Notifications.MarkRead(c.Request.Context(), principalID(c), input.IDs); err != nil {
		getLogger(c).Error("failed to mark notifications read", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to mark notifications read", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notificaciones marcadas como leidas."})
}

// Delete removes one of the user's notifications.
func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.Notifications.Delete(c.Request.Context(), principalID(c), c.Param("id")); err != nil {
		getLogger(c).Error("failed to delete notification", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete notification", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notificacion eliminada."})
}
