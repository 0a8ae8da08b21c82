// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and their relational
// representation.
package orderrepo

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The external order number is the primary key; the version
// column carries the optimistic concurrency token.
type OrderDTO struct {
	OrderNo            string `gorm:"primaryKey"`
	CustomerName       string
	PartDescription    string
	QuotedPrice        decimal.Decimal `gorm:"type:decimal(18,4)"`
	SalesTax           decimal.Decimal `gorm:"type:decimal(18,4)"`
	EstimatedGP        decimal.Decimal `gorm:"type:decimal(18,4);column:estimated_gp"`
	CurrentGP          decimal.Decimal `gorm:"type:decimal(18,4);column:current_gp"`
	RefundAmount       decimal.Decimal `gorm:"type:decimal(18,4)"`
	RefundDate         *time.Time
	CancellationReason string
	Status             string         `gorm:"index"`
	History            pq.StringArray `gorm:"type:text[]"`
	SupportNotes       pq.StringArray `gorm:"type:text[]"`
	Version            int
	YardEntries        []YardEntryDTO `gorm:"foreignKey:OrderNo;references:OrderNo;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time
	UpdatedAt          time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// YardEntryDTO represents one procurement leg of an order's yard ledger.
// Rows are keyed by order number and the leg's stable positional index.
type YardEntryDTO struct {
	OrderNo                 string `gorm:"primaryKey"`
	EntryIndex              int    `gorm:"primaryKey;autoIncrement:false"`
	YardName                string
	PartPrice               decimal.Decimal `gorm:"type:decimal(18,4)"`
	Others                  decimal.Decimal `gorm:"type:decimal(18,4)"`
	CustShippingReturn      decimal.Decimal `gorm:"type:decimal(18,4)"`
	CustShippingReplacement decimal.Decimal `gorm:"type:decimal(18,4)"`
	YardShippingReplacement decimal.Decimal `gorm:"type:decimal(18,4)"`
	RefundedAmount          decimal.Decimal `gorm:"type:decimal(18,4)"`
	ShippingDetail          string
	ShippingPayer           string
	ShippingCost            decimal.Decimal `gorm:"type:decimal(18,4)"`
	Status                  string
	PaymentStatus           string
	Escalation              bool
	Notes                   pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for yard ledger entries.
func (YardEntryDTO) TableName() string {
	return "yard_entries"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	entries := aggregate.YardEntries()
	entryDTOs := make([]YardEntryDTO, 0, len(entries))
	for i := range entries {
		entryDTOs = append(entryDTOs, entryFromDomain(aggregate.OrderNo().String(), &entries[i]))
	}

	return OrderDTO{
		OrderNo:            aggregate.OrderNo().String(),
		CustomerName:       aggregate.CustomerName(),
		PartDescription:    aggregate.PartDescription(),
		QuotedPrice:        aggregate.QuotedPrice(),
		SalesTax:           aggregate.SalesTax(),
		EstimatedGP:        aggregate.EstimatedGP(),
		CurrentGP:          aggregate.CurrentGP(),
		RefundAmount:       aggregate.RefundAmount(),
		RefundDate:         aggregate.RefundDate(),
		CancellationReason: aggregate.CancellationReason(),
		Status:             aggregate.Status().String(),
		History:            aggregate.History(),
		SupportNotes:       aggregate.SupportNotes(),
		Version:            aggregate.Version(),
		YardEntries:        entryDTOs,
	}
}

func entryFromDomain(orderNo string, entry *order.YardEntry) YardEntryDTO {
	costs := entry.Costs()
	return YardEntryDTO{
		OrderNo:                 orderNo,
		EntryIndex:              entry.Index(),
		YardName:                entry.YardName(),
		PartPrice:               costs.PartPrice,
		Others:                  costs.Others,
		CustShippingReturn:      costs.CustShippingReturn,
		CustShippingReplacement: costs.CustShippingReplacement,
		YardShippingReplacement: costs.YardShippingReplacement,
		RefundedAmount:          costs.RefundedAmount,
		ShippingDetail:          entry.ShippingDetail(),
		ShippingPayer:           entry.ShippingPayer().String(),
		ShippingCost:            entry.ShippingCost(),
		Status:                  entry.Status().String(),
		PaymentStatus:           entry.PaymentStatus().String(),
		Escalation:              entry.Escalation(),
		Notes:                   entry.Notes(),
	}
}

// toDomain converts a database DTO back to an order aggregate using
// RestoreOrder. Enum strings coerce through their FromString helpers.
func toDomain(dto OrderDTO) (*order.Order, error) {
	orderNo, err := kernel.NewOrderNumber(dto.OrderNo)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	entries := make([]order.YardEntry, 0, len(dto.YardEntries))
	for _, entryDTO := range dto.YardEntries {
		entries = append(entries, entryToDomain(entryDTO))
	}

	return order.RestoreOrder(
		orderNo,
		dto.CustomerName,
		dto.PartDescription,
		dto.QuotedPrice,
		dto.SalesTax,
		dto.EstimatedGP,
		dto.CurrentGP,
		dto.RefundAmount,
		dto.RefundDate,
		dto.CancellationReason,
		status,
		dto.History,
		dto.SupportNotes,
		entries,
		dto.Version,
	)
}

func entryToDomain(dto YardEntryDTO) order.YardEntry {
	return order.RestoreYardEntry(
		dto.EntryIndex,
		dto.YardName,
		order.YardCosts{
			PartPrice:               dto.PartPrice,
			Others:                  dto.Others,
			CustShippingReturn:      dto.CustShippingReturn,
			CustShippingReplacement: dto.CustShippingReplacement,
			YardShippingReplacement: dto.YardShippingReplacement,
			RefundedAmount:          dto.RefundedAmount,
		},
		dto.ShippingDetail,
		order.ShippingPayerFromString(dto.ShippingPayer),
		dto.ShippingCost,
		order.YardStatusFromString(dto.Status),
		order.PaymentStatusFromString(dto.PaymentStatus),
		dto.Escalation,
		dto.Notes,
	)
}
