package handlers

import (
	"errors"
	"net/http"

	"servitech/services/dispatch"
	"servitech/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getLogger(c *gin.Context) *zap.Logger {
	return utils.GetLogger()
}

// principalID reads the authenticated principal set by the session middleware.
func principalID(c *gin.Context) string {
	v, ok := c.Get("principalID")
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// respondError translates a dispatch error into the HTTP status it carries.
// Unclassified errors are reported as internal and logged with their cause.
func respondError(c *gin.Context, err error) {
	var de *dispatch.Error
	if !errors.As(err, &de) {
		getLogger(c).Error("dispatch operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error",
			"An unexpected error occurred. Please try again later.")
		return
	}

	status := http.StatusInternalServerError
	switch de.Code {
	case dispatch.CodeValidation:
		status = http.StatusBadRequest
	case dispatch.CodeAuth:
		status = http.StatusUnauthorized
	case dispatch.CodeForbidden:
		status = http.StatusForbidden
	case dispatch.CodeConflict:
		status = http.StatusConflict
	case dispatch.CodeNotFound:
		status = http.StatusNotFound
	}
	utils.JSONError(c, status, de.Message, "")
}
