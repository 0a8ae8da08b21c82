package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/core/domain/services"
)

// ListOrdersQueryHandler retrieves filtered order summaries from the
// database. The escalation bucket of each row is derived from the status and
// the primary yard's flag during the scan, so the listing can never show a
// stale bucket.
type ListOrdersQueryHandler struct {
	db         *gorm.DB
	classifier services.EscalationClassifier
}

// NewListOrdersQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{
		db:         db,
		classifier: services.NewEscalationClassifier(),
	}
}

// Handle executes the listing query, newest orders first.
//
// Status, date, and free-text constraints apply in SQL. The escalation
// constraint applies after the scan, since the bucket is derived, so the
// page is cut in memory whenever that filter is present.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()
	stmt, args := buildListSQL(filter, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		var summary OrderSummary
		var primaryFlagged bool

		err = rows.Scan(
			&summary.OrderNo,
			&summary.CustomerName,
			&summary.PartDescription,
			&summary.QuotedPrice,
			&summary.EstimatedGP,
			&summary.CurrentGP,
			&summary.Status,
			&summary.CreatedAt,
			&primaryFlagged,
		)
		if err != nil {
			return nil, err
		}

		status, err := order.StatusFromString(summary.Status)
		if err != nil {
			return nil, err
		}

		bucket := h.classifier.ClassifyPrimary(status, primaryFlagged)
		if filter.Escalation != nil && bucket != *filter.Escalation {
			continue
		}
		summary.Escalation = bucket.String()
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if filter.Escalation != nil {
		summaries = pageOf(summaries, query.Limit(), query.Offset())
	}

	return summaries, nil
}

func buildListSQL(filter ListOrdersFilter, limit, offset int) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0)

	sb.WriteString(`
		SELECT
			o.order_no,
			o.customer_name,
			o.part_description,
			o.quoted_price,
			o.estimated_gp,
			o.current_gp,
			o.status,
			o.created_at,
			COALESCE(y.escalation, FALSE) AS primary_escalation
		FROM orders o
		LEFT JOIN yard_entries y
			ON y.order_no = o.order_no AND y.entry_index = 0
		WHERE 1=1
	`)

	if filter.Status != nil {
		sb.WriteString(" AND o.status = ?")
		args = append(args, filter.Status.String())
	}
	if filter.CreatedFrom != nil {
		sb.WriteString(" AND o.created_at >= ?")
		args = append(args, *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		sb.WriteString(" AND o.created_at <= ?")
		args = append(args, *filter.CreatedTo)
	}
	if filter.Search != "" {
		sb.WriteString(` AND (
			o.order_no ILIKE ? OR o.customer_name ILIKE ? OR o.part_description ILIKE ?
		)`)
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	sb.WriteString(" ORDER BY o.created_at DESC, o.order_no")

	// a derived-bucket filter pages in memory instead
	if filter.Escalation == nil {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, limit, offset)
	}

	return sb.String(), args
}

func pageOf(summaries []OrderSummary, limit, offset int) []OrderSummary {
	if offset >= len(summaries) {
		return []OrderSummary{}
	}
	end := offset + limit
	if end > len(summaries) {
		end = len(summaries)
	}
	return summaries[offset:end]
}
