package handler

import (
	catalogapp "github.com/finmanager/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// TypeHandler handles category type endpoints
type TypeHandler struct {
	BaseHandler
	typeService *catalogapp.TypeService
}

// NewTypeHandler creates a new TypeHandler
func NewTypeHandler(typeService *catalogapp.TypeService) *TypeHandler {
	return &TypeHandler{typeService: typeService}
}

// List returns the caller's types; q matches the name
func (h *TypeHandler) List(c *gin.Context) {
	var query ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	types, err := h.typeService.List(c.Request.Context(), currentUser(c).ID, query.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, types)
}

// Create adds a type with a name unique to the caller
func (h *TypeHandler) Create(c *gin.Context) {
	var req catalogapp.CreateTypeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	t, err := h.typeService.Create(c.Request.Context(), currentUser(c).ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// Get returns one of the caller's types
func (h *TypeHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	t, err := h.typeService.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Update renames one of the caller's types
func (h *TypeHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateTypeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	t, err := h.typeService.Update(c.Request.Context(), currentUser(c).ID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Delete removes a type; trade records using it lose their type
func (h *TypeHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.typeService.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}
