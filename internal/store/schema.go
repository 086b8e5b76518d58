package store

import (
	"context"
	"strings"

	logx "github.com/olist-agent-poc/server/pkg/logger"
)

// fallbackSchema is the versioned contract of the nine Olist entity tables
// the SQL generation prompt depends on. Introspection of the live database is
// preferred; this text is used when introspection fails so the agent can
// still phrase queries against the expected layout. Any change to the store
// schema must be reflected here.
const fallbackSchema = `Table: olist_customers_dataset, Columns: customer_id, customer_unique_id, customer_zip_code_prefix, customer_city, customer_state
Table: olist_geolocation_dataset, Columns: geolocation_zip_code_prefix, geolocation_lat, geolocation_lng, geolocation_city, geolocation_state
Table: olist_order_items_dataset, Columns: order_id, order_item_id, product_id, seller_id, shipping_limit_date, price, freight_value
Table: olist_order_payments_dataset, Columns: order_id, payment_sequential, payment_type, payment_installments, payment_value
Table: olist_order_reviews_dataset, Columns: review_id, order_id, review_score, review_comment_title, review_comment_message, review_creation_date, review_answer_timestamp
Table: olist_orders_dataset, Columns: order_id, customer_id, order_status, order_purchase_timestamp, order_approved_at, order_delivered_carrier_date, order_delivered_customer_date, order_estimated_delivery_date
Table: olist_products_dataset, Columns: product_id, product_category_name, product_name_lenght, product_description_lenght, product_photos_qty, product_weight_g, product_length_cm, product_height_cm, product_width_cm
Table: olist_sellers_dataset, Columns: seller_id, seller_zip_code_prefix, seller_city, seller_state
Table: product_category_name_translation, Columns: product_category_name, product_category_name_english`

const introspectQuery = `
SELECT TABLE_NAME, COLUMN_NAME
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = DATABASE()
ORDER BY TABLE_NAME, ORDINAL_POSITION`

// SchemaDescription returns one line per table in the form the SQL generation
// prompt embeds: "Table: <name>, Columns: <a, b, c>". The live schema is
// introspected once and cached; the embedded contract is the fallback.
func (s *Store) SchemaDescription(ctx context.Context) string {
	s.schemaOnce.Do(func() {
		desc, err := s.introspect(ctx)
		if err != nil || desc == "" {
			logx.Warn().Err(err).Msg("schema introspection failed, using embedded contract")
			s.schemaDesc = fallbackSchema
			return
		}
		s.schemaDesc = desc
	})
	return s.schemaDesc
}

func (s *Store) introspect(ctx context.Context) (string, error) {
	rows, err := s.db.QueryContext(ctx, introspectQuery)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	tables := []string{}
	columns := map[string][]string{}
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return "", err
		}
		if _, seen := columns[table]; !seen {
			tables = append(tables, table)
		}
		columns[table] = append(columns[table], column)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	for i, table := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Table: " + table + ", Columns: " + strings.Join(columns[table], ", "))
	}
	return b.String(), nil
}
