// Package handler exposes the hotel reservation operations over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"utrippin_backend/internal/hotels/service"
	"utrippin_backend/internal/hotels/transport"
	"utrippin_backend/platform/httpkit"
	"utrippin_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for hotel reservations.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new hotels handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the reservation routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.Search)
	rg.POST("/offers", h.Offers)
	rg.POST("/prebook", h.Prebook)
	rg.POST("/book", h.Book)
	rg.POST("/status", h.Status)
	rg.POST("/cancel", h.Cancel)
}

// RegisterCertificationRoutes registers the unattended workflow route.
func (h *Handler) RegisterCertificationRoutes(rg *gin.RouterGroup) {
	rg.POST("/run", h.RunWorkflow)
}

// Search handles POST /api/v1/hotels/search
func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	data, err := h.svc.Search(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SearchResponse{Data: *data})
}

// Offers handles POST /api/v1/hotels/offers
func (h *Handler) Offers(c *gin.Context) {
	var req transport.OffersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	data, err := h.svc.Offers(c.Request.Context(), req.SearchID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SearchResponse{Data: *data})
}

// Prebook handles POST /api/v1/hotels/prebook
func (h *Handler) Prebook(c *gin.Context) {
	var req transport.PrebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	hold, err := h.svc.Prebook(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.PrebookResponse{Status: "ok", Data: *hold})
}

// Book handles POST /api/v1/hotels/book
func (h *Handler) Book(c *gin.Context) {
	var req transport.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	booking, err := h.svc.Book(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.BookResponse{Status: "ok", Data: *booking})
}

// Status handles POST /api/v1/hotels/status
func (h *Handler) Status(c *gin.Context) {
	var req transport.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	snap, err := h.svc.Status(c.Request.Context(), req.OrderID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, snap)
}

// Cancel handles POST /api/v1/hotels/cancel
func (h *Handler) Cancel(c *gin.Context) {
	var req transport.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	receipt, err := h.svc.Cancel(c.Request.Context(), req.OrderID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.CancelResponse{Status: "ok", Data: *receipt})
}

// RunWorkflow handles POST /api/v1/certification/run
func (h *Handler) RunWorkflow(c *gin.Context) {
	var req transport.WorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	summary, err := h.svc.RunWorkflow(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, summary)
}
