package handlers

import (
	"net/http"

	"servitech/session"
	"servitech/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler serves the internal session admin endpoints used to issue
// and revoke bearer tokens.
type SessionHandler struct {
	Directory *session.RedisDirectory
}

func NewSessionHandler(dir *session.RedisDirectory) *SessionHandler {
	return &SessionHandler{Directory: dir}
}

// Open issues a fresh session token for a principal.
func (h *SessionHandler) Open(c *gin.Context) {
	var input struct {
		PrincipalID string `json:"principalId"`
		Role        string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	role := session.Role(input.Role)
	if input.PrincipalID == "" || (role != session.RoleCustomer && role != session.RoleTechnician) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a principal id and a valid role are required"})
		return
	}

	token, err := h.Directory.Open(c.Request.Context(), session.Principal{ID: input.PrincipalID, Role: role})
	if err != nil {
		getLogger(c).Error("failed to open session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to open session", "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// Close revokes a session token.
func (h *SessionHandler) Close(c *gin.Context) {
	if err := h.Directory.Close(c.Request.Context(), c.Param("token")); err != nil {
		getLogger(c).Error("failed to close session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to close session", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}
