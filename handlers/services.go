package handlers

import (
	"net/http"

	"servitech/services/dispatch"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public service catalog.
type CatalogHandler struct {
	Dispatch dispatch.Service
}

func NewCatalogHandler(svc dispatch.Service) *CatalogHandler {
	return &CatalogHandler{Dispatch: svc}
}

// List returns every offered service type with its base price.
func (h *CatalogHandler) List(c *gin.Context) {
	types, err := h.Dispatch.ListServiceTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}
