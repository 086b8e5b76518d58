package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/olist-agent-poc/server/internal/core/error"
)

func TestEnsureReadOnlyAllowsSelects(t *testing.T) {
	for _, query := range []string{
		"SELECT 1",
		"select `order_id` from `olist_orders_dataset`",
		"  SELECT 1;  ",
		"WITH revenue AS (SELECT SUM(`payment_value`) AS total FROM `olist_order_payments_dataset`) SELECT * FROM revenue",
	} {
		assert.NoError(t, EnsureReadOnly(query), "query %q", query)
	}
}

func TestEnsureReadOnlyRejectsDestructiveStatements(t *testing.T) {
	for _, query := range []string{
		"",
		"DROP TABLE `olist_orders_dataset`",
		"DELETE FROM `olist_orders_dataset`",
		"UPDATE `olist_orders_dataset` SET `order_status` = 'x'",
		"INSERT INTO `olist_orders_dataset` VALUES (1)",
		"TRUNCATE TABLE `olist_orders_dataset`",
		"SELECT 1; DROP TABLE `olist_orders_dataset`",
	} {
		assert.ErrorIs(t, EnsureReadOnly(query), ErrNotReadOnly, "query %q", query)
	}
}

func TestExecuteRejectsNonSelectBeforeTouchingTheDatabase(t *testing.T) {
	// nil db: reaching the database would panic, so passing proves the guard
	// runs first.
	s := New(nil)

	_, err := s.Execute(context.Background(), "DROP TABLE `olist_orders_dataset`")

	var queryErr *errx.QueryExecutionError
	require.True(t, errors.As(err, &queryErr))
	assert.ErrorIs(t, err, ErrNotReadOnly)
}

func TestNormalizeRowConvertsBytes(t *testing.T) {
	row := map[string]any{
		"city":  []byte("sao paulo"),
		"count": int64(3),
	}
	normalizeRow(row)

	assert.Equal(t, "sao paulo", row["city"])
	assert.Equal(t, int64(3), row["count"])
}
