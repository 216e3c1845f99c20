package handlers

import (
	"net/http"

	"servitech/services/dispatch"

	"github.com/gin-gonic/gin"
)

// RequestHandler serves the customer-facing request endpoints.
type RequestHandler struct {
	Dispatch dispatch.Service
}

func NewRequestHandler(svc dispatch.Service) *RequestHandler {
	return &RequestHandler{Dispatch: svc}
}

// Create registers a new service request for the authenticated customer.
func (h *RequestHandler) Create(c *gin.Context) {
	var input dispatch.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	req, err := h.Dispatch.CreateRequest(c.Request.Context(), principalID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// LatestActive returns the customer's most recent non-cancelled request.
func (h *RequestHandler) LatestActive(c *gin.Context) {
	req, err := h.Dispatch.LatestActiveRequest(c.Request.Context(), principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// Cancel cancels one of the customer's own requests.
func (h *RequestHandler) Cancel(c *gin.Context) {
	if err := h.Dispatch.CancelByCustomer(c.Request.Context(), c.Param("id"), principalID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Solicitud cancelada."})
}

// Progress returns a request with its full ordered progress log.
func (h *RequestHandler) Progress(c *gin.Context) {
	progress, err := h.Dispatch.Progress(c.Request.Context(), c.Param("id"), principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// CurrentState returns the latest recorded lifecycle state of a request.
func (h *RequestHandler) CurrentState(c *gin.Context) {
	event, err := h.Dispatch.CurrentState(c.Request.Context(), c.Param("id"), principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if event == nil {
		c.JSON(http.StatusOK, gin.H{"state": nil})
		return
	}
	c.JSON(http.StatusOK, event)
}

// Completed returns the customer's completed service history.
func (h *RequestHandler) Completed(c *gin.Context) {
	reqs, err := h.Dispatch.CompletedByCustomer(c.Request.Context(), principalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// Settle records the customer's payment and completes the request.
func (h *RequestHandler) Settle(c *gin.Context) {
	var input struct {
		Method string  `json:"method"`
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	payment, err := h.Dispatch.Settle(c.Request.Context(), c.Param("id"), principalID(c), input.Method, input.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Report files a complaint about the technician assigned to a request.
func (h *RequestHandler) Report(c *gin.Context) {
	var input struct {
		RequestID    string `json:"requestId"`
		TechnicianID string `json:"technicianId"`
		Description  string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	report, err := h.Dispatch.ReportTechnician(c.Request.Context(), principalID(c), input.RequestID, input.TechnicianID, input.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}
