package handler

import (
	tradeapp "github.com/finmanager/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles purchase record endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List returns a filtered page of the caller's purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var query tradeapp.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	page, err := h.purchaseService.List(c.Request.Context(), currentUser(c).ID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// Create records a purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req tradeapp.CreatePurchaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), currentUser(c).ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Get returns one of the caller's purchases
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Update applies a partial update and recomputes the price fields
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.UpdatePurchaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	purchase, err := h.purchaseService.Update(c.Request.Context(), currentUser(c).ID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Delete removes a purchase
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}
