package handler

import (
	partnerapp "github.com/finmanager/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List returns the caller's customers grouped by company
func (h *CustomerHandler) List(c *gin.Context) {
	var query ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	groups, err := h.customerService.List(c.Request.Context(), currentUser(c).ID, query.CompanyID, query.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, groups)
}

// Create adds a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), currentUser(c).ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Get returns a linked customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Update applies the present fields to a linked customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), currentUser(c).ID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Delete removes a customer no trade record refers to
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}
