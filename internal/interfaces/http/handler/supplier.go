package handler

import (
	partnerapp "github.com/finmanager/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// SupplierHandler handles supplier-related API endpoints
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List returns the caller's suppliers; q matches name, phone, email or address
func (h *SupplierHandler) List(c *gin.Context) {
	var query ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	suppliers, err := h.supplierService.List(c.Request.Context(), currentUser(c).ID, query.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// Count returns the number of matching suppliers as a bare integer
func (h *SupplierHandler) Count(c *gin.Context) {
	var query ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	count, err := h.supplierService.Count(c.Request.Context(), currentUser(c).ID, query.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, count)
}

// Create adds a supplier with a name unique among the caller's suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partnerapp.CreateSupplierRequest
	if !h.bindJSON(c, &req) {
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), currentUser(c).ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Get returns a linked supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	supplier, err := h.supplierService.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Update applies the present fields to a linked supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateSupplierRequest
	if !h.bindJSON(c, &req) {
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), currentUser(c).ID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Delete removes a supplier no purchase refers to
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}
