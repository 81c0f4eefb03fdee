package trade

import (
	"strings"

	"github.com/finmanager/backend/internal/domain/shared"
)

// PurchaseStatus is the lifecycle state of a purchase
type PurchaseStatus string

const (
	PurchaseStatusPending  PurchaseStatus = "pending"
	PurchaseStatusOrdered  PurchaseStatus = "ordered"
	PurchaseStatusReceived PurchaseStatus = "received"
)

// IsValid checks if the status is a valid PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusOrdered, PurchaseStatusReceived:
		return true
	}
	return false
}

// String returns the string representation of PurchaseStatus
func (s PurchaseStatus) String() string {
	return string(s)
}

// SaleStatus is the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusDraft SaleStatus = "draft"
	SaleStatusSent  SaleStatus = "sent"
	SaleStatusPaid  SaleStatus = "paid"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusDraft, SaleStatusSent, SaleStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

var (
	ErrInvalidStatus       = shared.NewDomainError("INVALID_INPUT", "Invalid status")
	ErrInvalidStatusFilter = shared.NewDomainError("INVALID_INPUT", "Invalid status filter")
)

// ParsePurchaseStatus normalises and validates a purchase status.
// A blank value is invalid; only NewPurchase falls back to the default.
func ParsePurchaseStatus(raw string) (PurchaseStatus, error) {
	s := PurchaseStatus(normalizeStatus(raw))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ParseSaleStatus normalises and validates a sale status.
// A blank value is invalid; only NewSale falls back to the default.
func ParseSaleStatus(raw string) (SaleStatus, error) {
	s := SaleStatus(normalizeStatus(raw))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// initialStatus parses a create-time status, where blank means def
func initialStatus[S ~string](raw string, def S, parse func(string) (S, error)) (S, error) {
	if normalizeStatus(raw) == "" {
		return def, nil
	}
	return parse(raw)
}

func normalizeStatus(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
