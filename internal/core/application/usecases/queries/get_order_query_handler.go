package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/core/domain/services"
	"partsdesk/internal/pkg/errs"
)

// GetOrderQueryHandler retrieves one order's snapshot from the database.
type GetOrderQueryHandler struct {
	db         *gorm.DB
	classifier services.EscalationClassifier
}

// NewGetOrderQueryHandler creates a handler for order snapshot queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		db:         db,
		classifier: services.NewEscalationClassifier(),
	}
}

// Handle executes the snapshot query. Returns an ObjectNotFoundError when no
// order carries the requested number.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var history, supportNotes pq.StringArray
	var refundDate *time.Time

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			order_no,
			customer_name,
			part_description,
			quoted_price,
			sales_tax,
			estimated_gp,
			current_gp,
			refund_amount,
			refund_date,
			cancellation_reason,
			status,
			history,
			support_notes,
			version,
			created_at,
			updated_at
		FROM orders
		WHERE order_no = ?
	`, query.OrderNo().String()).Row()

	err := row.Scan(
		&resp.OrderNo,
		&resp.CustomerName,
		&resp.PartDescription,
		&resp.QuotedPrice,
		&resp.SalesTax,
		&resp.EstimatedGP,
		&resp.CurrentGP,
		&resp.RefundAmount,
		&refundDate,
		&resp.CancellationReason,
		&resp.Status,
		&history,
		&supportNotes,
		&resp.Version,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError(
			"orderNo", query.OrderNo().String(),
		)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.RefundDate = refundDate
	resp.History = history
	resp.SupportNotes = supportNotes

	entries, err := h.loadYardEntries(ctx, resp.OrderNo)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.YardEntries = entries

	status, err := order.StatusFromString(resp.Status)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	primaryFlagged := len(entries) > 0 && entries[0].Escalation
	resp.Escalation = h.classifier.ClassifyPrimary(status, primaryFlagged).String()

	return resp, nil
}

func (h GetOrderQueryHandler) loadYardEntries(
	ctx context.Context,
	orderNo string,
) ([]YardEntryResponse, error) {
	entries := make([]YardEntryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			entry_index,
			yard_name,
			part_price,
			others,
			cust_shipping_return,
			cust_shipping_replacement,
			yard_shipping_replacement,
			refunded_amount,
			shipping_detail,
			shipping_payer,
			shipping_cost,
			status,
			payment_status,
			escalation,
			notes
		FROM yard_entries
		WHERE order_no = ?
		ORDER BY entry_index
	`, orderNo).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry YardEntryResponse
		var notes pq.StringArray

		err = rows.Scan(
			&entry.Index,
			&entry.YardName,
			&entry.PartPrice,
			&entry.Others,
			&entry.CustShippingReturn,
			&entry.CustShippingReplacement,
			&entry.YardShippingReplacement,
			&entry.RefundedAmount,
			&entry.ShippingDetail,
			&entry.ShippingPayer,
			&entry.ShippingCost,
			&entry.Status,
			&entry.PaymentStatus,
			&entry.Escalation,
			&notes,
		)
		if err != nil {
			return nil, err
		}

		entry.Notes = notes
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
