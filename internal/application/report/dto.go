package report

import (
	"github.com/finmanager/backend/internal/domain/report"
)

// TopCustomersQuery carries the parameters of GET /statistics/top-customers
type TopCustomersQuery struct {
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Year  int    `form:"year" binding:"omitempty,min=1900,max=9999"`
	Month int    `form:"month" binding:"omitempty,min=1,max=12"`
	Kind  string `form:"kind"`
}

// TrendQuery carries the parameters of GET /statistics/trend
type TrendQuery struct {
	Year        int    `form:"year" binding:"omitempty,min=1900,max=9999"`
	Granularity string `form:"granularity"`
}

// TotalsResponse renders purchase and sale sums with their profit
type TotalsResponse struct {
	PurchaseTotal string `json:"purchase_total"`
	SaleTotal     string `json:"sale_total"`
	Profit        string `json:"profit"`
}

func toTotalsResponse(t report.Totals) TotalsResponse {
	return TotalsResponse{
		PurchaseTotal: t.PurchaseTotal.StringFixed(2),
		SaleTotal:     t.SaleTotal.StringFixed(2),
		Profit:        t.Profit().StringFixed(2),
	}
}

// SummaryResponse is the current month and year of an owner
type SummaryResponse struct {
	Monthly TotalsResponse `json:"monthly"`
	Yearly  TotalsResponse `json:"yearly"`
}

// TrendPointResponse is one period of a trend series
type TrendPointResponse struct {
	Period string `json:"period"`
	TotalsResponse
}

// TrendResponse is an ordered trend series
type TrendResponse struct {
	Granularity string               `json:"granularity"`
	Points      []TrendPointResponse `json:"points"`
}

// CustomerTotalResponse is one ranked customer
type CustomerTotalResponse struct {
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Total        string `json:"total"`
}

// OthersResponse folds the customers beyond the ranking limit
type OthersResponse struct {
	Count int    `json:"count"`
	Total string `json:"total"`
}

// TopCustomersResponse is a customer ranking
type TopCustomersResponse struct {
	Items      []CustomerTotalResponse `json:"items"`
	Others     *OthersResponse         `json:"others"`
	GrandTotal string                  `json:"grand_total"`
}

func toTopCustomersResponse(top report.TopCustomers) TopCustomersResponse {
	resp := TopCustomersResponse{
		Items:      make([]CustomerTotalResponse, len(top.Items)),
		GrandTotal: top.GrandTotal.StringFixed(2),
	}
	for i, item := range top.Items {
		resp.Items[i] = CustomerTotalResponse{
			CustomerID:   item.CustomerID,
			CustomerName: item.CustomerName,
			Total:        item.Total.StringFixed(2),
		}
	}
	if top.Others != nil {
		resp.Others = &OthersResponse{Count: top.Others.Count, Total: top.Others.Total.StringFixed(2)}
	}
	return resp
}
