package handler

import (
	partnerapp "github.com/finmanager/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// DepartmentHandler handles department-related API endpoints
type DepartmentHandler struct {
	BaseHandler
	departmentService *partnerapp.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(departmentService *partnerapp.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// List returns the departments of the caller's companies, optionally of
// one company
func (h *DepartmentHandler) List(c *gin.Context) {
	var query ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	departments, err := h.departmentService.List(c.Request.Context(), currentUser(c).ID, query.CompanyID, query.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, departments)
}

// Create adds a department to a linked company
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req partnerapp.CreateDepartmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	department, err := h.departmentService.Create(c.Request.Context(), currentUser(c).ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, department)
}

// Get returns an accessible department
func (h *DepartmentHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	department, err := h.departmentService.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, department)
}

// Update renames or moves a department
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateDepartmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	department, err := h.departmentService.Update(c.Request.Context(), currentUser(c).ID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, department)
}

// Delete removes a department without customers
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.departmentService.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}
