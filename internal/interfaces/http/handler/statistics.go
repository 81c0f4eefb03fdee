package handler

import (
	reportapp "github.com/finmanager/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// StatisticsHandler serves the dashboard aggregates
type StatisticsHandler struct {
	BaseHandler
	statisticsService *reportapp.StatisticsService
}

// NewStatisticsHandler creates a new StatisticsHandler
func NewStatisticsHandler(statisticsService *reportapp.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// Summary returns purchase, sale and profit totals for the current month and year
func (h *StatisticsHandler) Summary(c *gin.Context) {
	summary, err := h.statisticsService.Summary(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Trend returns monthly or yearly purchase and sale totals
func (h *StatisticsHandler) Trend(c *gin.Context) {
	var query reportapp.TrendQuery
	if !h.bindQuery(c, &query) {
		return
	}

	trend, err := h.statisticsService.Trend(c.Request.Context(), currentUser(c).ID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, trend)
}

// TopCustomers ranks customers by purchase or sale total; limit defaults to 5
func (h *StatisticsHandler) TopCustomers(c *gin.Context) {
	var query reportapp.TopCustomersQuery
	if !h.bindQuery(c, &query) {
		return
	}

	top, err := h.statisticsService.TopCustomers(c.Request.Context(), currentUser(c).ID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, top)
}
