package http

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"partsdesk/internal/core/application/usecases/queries"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the POST /orders body.
type NewOrderRequest struct {
	OrderNo          string          `json:"orderNo"`
	CustomerName     string          `json:"customerName"`
	PartDescription  string          `json:"partDescription"`
	QuotedPrice      decimal.Decimal `json:"quotedPrice"`
	YardCostEstimate decimal.Decimal `json:"yardCostEstimate"`
	ShippingEstimate decimal.Decimal `json:"shippingEstimate"`
	Actor            string          `json:"actor"`
}

// CancellationRequest carries refund details for transitions into the
// cancellation family. The date is a plain calendar date; it defaults to
// today when omitted.
type CancellationRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
	Date   *types.Date     `json:"date,omitempty"`
}

// StatusChangeRequest is the PUT /orders/:orderNo/status body.
type StatusChangeRequest struct {
	Status       string               `json:"status"`
	Cancellation *CancellationRequest `json:"cancellation,omitempty"`
	Actor        string               `json:"actor"`
}

// YardCostsRequest mirrors the monetary components of a yard leg.
type YardCostsRequest struct {
	PartPrice               decimal.Decimal `json:"partPrice"`
	Others                  decimal.Decimal `json:"others"`
	CustShippingReturn      decimal.Decimal `json:"custShippingReturn"`
	CustShippingReplacement decimal.Decimal `json:"custShippingReplacement"`
	YardShippingReplacement decimal.Decimal `json:"yardShippingReplacement"`
	RefundedAmount          decimal.Decimal `json:"refundedAmount"`
}

// NewYardEntryRequest is the POST /orders/:orderNo/yards body.
type NewYardEntryRequest struct {
	YardName string           `json:"yardName"`
	Costs    YardCostsRequest `json:"costs"`
	Actor    string           `json:"actor"`
}

// ShippingRequest assigns a structured shipping cost to a yard leg.
type ShippingRequest struct {
	Payer string          `json:"payer"`
	Cost  decimal.Decimal `json:"cost"`
}

// YardStatusRequest rewrites a leg's transaction and payment status.
type YardStatusRequest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// UpdateYardEntryRequest is the PATCH /orders/:orderNo/yards/:index body.
// Absent sections leave the corresponding fields untouched.
type UpdateYardEntryRequest struct {
	Costs          *YardCostsRequest  `json:"costs,omitempty"`
	Shipping       *ShippingRequest   `json:"shipping,omitempty"`
	ShippingDetail *string            `json:"shippingDetail,omitempty"`
	Status         *YardStatusRequest `json:"status,omitempty"`
	Escalation     *bool              `json:"escalation,omitempty"`
	Actor          string             `json:"actor"`
}

// NoteRequest is the body for both order-level and yard-level notes.
type NoteRequest struct {
	Note string `json:"note"`
}

// YardEntryResponse is one procurement leg of the order snapshot.
type YardEntryResponse struct {
	Index          int              `json:"index"`
	YardName       string           `json:"yardName"`
	Costs          YardCostsRequest `json:"costs"`
	ShippingDetail string           `json:"shippingDetail,omitempty"`
	ShippingPayer  string           `json:"shippingPayer"`
	ShippingCost   decimal.Decimal  `json:"shippingCost"`
	Status         string           `json:"status"`
	PaymentStatus  string           `json:"paymentStatus"`
	Escalation     bool             `json:"escalation"`
	Notes          []string         `json:"notes"`
}

// OrderResponse is the full order snapshot.
type OrderResponse struct {
	OrderNo            string              `json:"orderNo"`
	CustomerName       string              `json:"customerName"`
	PartDescription    string              `json:"partDescription"`
	QuotedPrice        decimal.Decimal     `json:"quotedPrice"`
	SalesTax           decimal.Decimal     `json:"salesTax"`
	EstimatedGP        decimal.Decimal     `json:"estimatedGP"`
	CurrentGP          decimal.Decimal     `json:"currentGP"`
	RefundAmount       decimal.Decimal     `json:"refundAmount"`
	RefundDate         *time.Time          `json:"refundDate,omitempty"`
	CancellationReason string              `json:"cancellationReason,omitempty"`
	Status             string              `json:"status"`
	Escalation         string              `json:"escalation"`
	History            []string            `json:"history"`
	SupportNotes       []string            `json:"supportNotes"`
	YardEntries        []YardEntryResponse `json:"yardEntries"`
	Version            int                 `json:"version"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// OrderSummaryResponse is one row of the order listing.
type OrderSummaryResponse struct {
	OrderNo         string          `json:"orderNo"`
	CustomerName    string          `json:"customerName"`
	PartDescription string          `json:"partDescription"`
	QuotedPrice     decimal.Decimal `json:"quotedPrice"`
	EstimatedGP     decimal.Decimal `json:"estimatedGP"`
	CurrentGP       decimal.Decimal `json:"currentGP"`
	Status          string          `json:"status"`
	Escalation      string          `json:"escalation"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func orderResponseFrom(snapshot queries.GetOrderQueryResponse) OrderResponse {
	entries := make([]YardEntryResponse, 0, len(snapshot.YardEntries))
	for _, entry := range snapshot.YardEntries {
		entries = append(entries, YardEntryResponse{
			Index:    entry.Index,
			YardName: entry.YardName,
			Costs: YardCostsRequest{
				PartPrice:               entry.PartPrice,
				Others:                  entry.Others,
				CustShippingReturn:      entry.CustShippingReturn,
				CustShippingReplacement: entry.CustShippingReplacement,
				YardShippingReplacement: entry.YardShippingReplacement,
				RefundedAmount:          entry.RefundedAmount,
			},
			ShippingDetail: entry.ShippingDetail,
			ShippingPayer:  entry.ShippingPayer,
			ShippingCost:   entry.ShippingCost,
			Status:         entry.Status,
			PaymentStatus:  entry.PaymentStatus,
			Escalation:     entry.Escalation,
			Notes:          entry.Notes,
		})
	}

	return OrderResponse{
		OrderNo:            snapshot.OrderNo,
		CustomerName:       snapshot.CustomerName,
		PartDescription:    snapshot.PartDescription,
		QuotedPrice:        snapshot.QuotedPrice,
		SalesTax:           snapshot.SalesTax,
		EstimatedGP:        snapshot.EstimatedGP,
		CurrentGP:          snapshot.CurrentGP,
		RefundAmount:       snapshot.RefundAmount,
		RefundDate:         snapshot.RefundDate,
		CancellationReason: snapshot.CancellationReason,
		Status:             snapshot.Status,
		Escalation:         snapshot.Escalation,
		History:            snapshot.History,
		SupportNotes:       snapshot.SupportNotes,
		YardEntries:        entries,
		Version:            snapshot.Version,
		CreatedAt:          snapshot.CreatedAt,
		UpdatedAt:          snapshot.UpdatedAt,
	}
}

func summaryResponseFrom(summary queries.OrderSummary) OrderSummaryResponse {
	return OrderSummaryResponse{
		OrderNo:         summary.OrderNo,
		CustomerName:    summary.CustomerName,
		PartDescription: summary.PartDescription,
		QuotedPrice:     summary.QuotedPrice,
		EstimatedGP:     summary.EstimatedGP,
		CurrentGP:       summary.CurrentGP,
		Status:          summary.Status,
		Escalation:      summary.Escalation,
		CreatedAt:       summary.CreatedAt,
	}
}
