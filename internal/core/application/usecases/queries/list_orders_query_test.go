package queries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsdesk/internal/core/application/usecases/queries"
	"partsdesk/internal/core/domain/model/order"
)

func TestNewListOrdersQuery_Defaults(t *testing.T) {
	query, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, query.Limit())
	assert.Equal(t, 0, query.Offset())
	require.NoError(t, query.Validate())
}

func TestNewListOrdersQuery_WithFilter(t *testing.T) {
	status := order.InTransit
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	query, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{
		Status:      &status,
		CreatedFrom: &from,
		CreatedTo:   &to,
		Search:      "tailgate",
	}, 25, 50)
	require.NoError(t, err)
	assert.Equal(t, 25, query.Limit())
	assert.Equal(t, 50, query.Offset())
	assert.Equal(t, order.InTransit, *query.Filter().Status)
	assert.Equal(t, "tailgate", query.Filter().Search)
}

func TestNewListOrdersQuery_PageSizeTooLarge(t *testing.T) {
	_, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{}, 201, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrPageSizeIsInvalid)
}

func TestNewListOrdersQuery_NegativeOffset(t *testing.T) {
	_, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{}, 10, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrOffsetIsInvalid)
}

func TestNewListOrdersQuery_InvertedDateRange(t *testing.T) {
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{
		CreatedFrom: &from,
		CreatedTo:   &to,
	}, 10, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrDateRangeIsInvalid)
}

func TestNewListOrdersQuery_UnknownStatusFilter(t *testing.T) {
	status := order.Unknown
	_, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{Status: &status}, 10, 0)
	require.Error(t, err)
}

func TestListOrdersQuery_NotConstructed(t *testing.T) {
	query := queries.ListOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListOrdersQueryIsNotConstructed)
}
