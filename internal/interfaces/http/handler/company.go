package handler

import (
	partnerapp "github.com/finmanager/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company-related API endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *partnerapp.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *partnerapp.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// List returns the caller's companies; q matches the name
func (h *CompanyHandler) List(c *gin.Context) {
	var query ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	companies, err := h.companyService.List(c.Request.Context(), currentUser(c).ID, query.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, companies)
}

// Create adds a company, or returns the identical existing one
func (h *CompanyHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCompanyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), currentUser(c).ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// Get returns a linked company
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	company, err := h.companyService.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// Update applies the present fields to a linked company
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateCompanyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), currentUser(c).ID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// Delete removes a company without customers or departments
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}
