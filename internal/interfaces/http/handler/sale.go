package handler

import (
	"errors"
	"io"
	"net/http"

	tradeapp "github.com/finmanager/backend/internal/application/trade"
	"github.com/finmanager/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// imageFormField is the multipart field carrying an uploaded image
const imageFormField = "file"

// SaleHandler handles sale record and sale image endpoints
type SaleHandler struct {
	BaseHandler
	saleService *tradeapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *tradeapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List returns a filtered page of the caller's sales
func (h *SaleHandler) List(c *gin.Context) {
	var query tradeapp.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	page, err := h.saleService.List(c.Request.Context(), currentUser(c).ID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// Create records a sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), currentUser(c).ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Get returns one of the caller's sales
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Update applies a partial update and recomputes the price fields
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.UpdateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.Update(c.Request.Context(), currentUser(c).ID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Delete removes a sale and its stored image
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// UploadImage stores an image without attaching it to a sale
func (h *SaleHandler) UploadImage(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	resp, err := h.saleService.UploadImage(c.Request.Context(), data)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AttachImage uploads an image and sets it on the sale, replacing any
// previous image
func (h *SaleHandler) AttachImage(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	sale, err := h.saleService.AttachImage(c.Request.Context(), currentUser(c).ID, id, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// readUpload reads the whole multipart image. An empty file is passed on
// so the image pipeline can reject it.
func (h *SaleHandler) readUpload(c *gin.Context) ([]byte, bool) {
	file, _, err := c.Request.FormFile(imageFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.ValidationError(c, err)
			return nil, false
		}
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(getRequestID(c), []dto.ValidationDetail{
			{Field: imageFormField, Message: "Field required"},
		}))
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.ValidationError(c, err)
		return nil, false
	}
	return data, true
}
