package handlers

import (
	"net/http"

	"servitech/services/dispatch"

	"github.com/gin-gonic/gin"
)

// TechnicianHandler serves the technician-facing dispatch endpoints.
type TechnicianHandler struct {
	Dispatch dispatch.Service
}

func NewTechnicianHandler(svc dispatch.Service) *TechnicianHandler {
	return &TechnicianHandler{Dispatch: svc}
}

// Available lists pending requests any technician may claim.
func (h *TechnicianHandler) Available(c *gin.Context) {
	reqs, err := h.Dispatch.ListAvailable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// Claim assigns a pending request to the authenticated technician.
func (h *TechnicianHandler) Claim(c *gin.Context) {
	assignment, err := h.Dispatch.Claim(c.Request.Context(), c.Param("id"), principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// Cancel releases an assignment before any work has been recorded.
func (h *TechnicianHandler) Cancel(c *gin.Context) {
	if err := h.Dispatch.CancelByTechnician(c.Request.Context(), c.Param("id"), principalID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Asignacion cancelada."})
}

// Advance moves a request to the next lifecycle state.
func (h *TechnicianHandler) Advance(c *gin.Context) {
	var input struct {
		State            string `json:"state"`
		ConfirmationCode string `json:"confirmationCode"`
		Detail           string `json:"detail"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	event, err := h.Dispatch.Advance(c.Request.Context(), c.Param("id"), principalID(c), input.State, input.ConfirmationCode, input.Detail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Assigned lists the technician's active assignments.
func (h *TechnicianHandler) Assigned(c *gin.Context) {
	reqs, err := h.Dispatch.ListAssigned(c.Request.Context(), principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// Completed lists the technician's completed service history.
func (h *TechnicianHandler) Completed(c *gin.Context) {
	reqs, err := h.Dispatch.CompletedByTechnician(c.Request.Context(), principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// Payments lists completed payments for the technician's services.
func (h *TechnicianHandler) Payments(c *gin.Context) {
	payments, err := h.Dispatch.PaymentsByTechnician(c.Request.Context(), principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
