package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/olist-agent-poc/server/internal/agent/model"
	errx "github.com/olist-agent-poc/server/internal/core/error"
	logx "github.com/olist-agent-poc/server/pkg/logger"
)

// Store executes read-only queries against the Olist relational database.
// The schema is populated by the separate loader; the agent never writes.
type Store struct {
	db         *sqlx.DB
	schemaOnce sync.Once
	schemaDesc string
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// ErrNotReadOnly rejects generated statements that are not a single SELECT.
var ErrNotReadOnly = fmt.Errorf("only a single SELECT statement is allowed")

// EnsureReadOnly checks that the statement is a single SELECT (or WITH-prefixed
// SELECT). This is a minimal guard against a destructive generated query, not
// full SQL validation; the prompt remains the primary constraint.
func EnsureReadOnly(query string) error {
	q := strings.TrimSpace(query)
	q = strings.TrimSuffix(q, ";")
	if strings.Contains(q, ";") {
		return ErrNotReadOnly
	}
	fields := strings.Fields(strings.ToUpper(q))
	if len(fields) == 0 {
		return ErrNotReadOnly
	}
	switch fields[0] {
	case "SELECT", "WITH":
		return nil
	}
	return ErrNotReadOnly
}

// Execute runs one read-only query and returns all rows with the select-list
// column order preserved. Failures come back as QueryExecutionError carrying
// the query text; there is no retry.
func (s *Store) Execute(ctx context.Context, query string) (*model.QueryResult, error) {
	if err := EnsureReadOnly(query); err != nil {
		return nil, errx.WrapStore(query, err)
	}

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		logx.Error().Err(err).Str("query", query).Msg("query execution failed")
		return nil, errx.WrapStore(query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errx.WrapStore(query, err)
	}

	result := &model.QueryResult{Columns: columns, Rows: []map[string]any{}}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, errx.WrapStore(query, err)
		}
		normalizeRow(row)
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.WrapStore(query, err)
	}
	result.RowCount = len(result.Rows)

	logx.Debug().Int("rows", result.RowCount).Msg("query executed")
	return result, nil
}

// normalizeRow converts the MySQL driver's []byte column values to strings so
// rows marshal to readable JSON for the summarization prompt.
func normalizeRow(row map[string]any) {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
}

const customerLocationsQuery = `
SELECT geo.geolocation_lat AS lat, geo.geolocation_lng AS lng, c.customer_city AS label
FROM olist_customers_dataset c
JOIN olist_geolocation_dataset geo
  ON c.customer_zip_code_prefix = geo.geolocation_zip_code_prefix`

const sellerLocationsQuery = `
SELECT geo.geolocation_lat AS lat, geo.geolocation_lng AS lng, s.seller_city AS label
FROM olist_sellers_dataset s
JOIN olist_geolocation_dataset geo
  ON s.seller_zip_code_prefix = geo.geolocation_zip_code_prefix`

type geoRow struct {
	Lat   float64        `db:"lat"`
	Lng   float64        `db:"lng"`
	Label sql.NullString `db:"label"`
}

// CustomerLocations returns customer coordinates joined through the
// geolocation table, optionally filtered to one Brazilian state.
func (s *Store) CustomerLocations(ctx context.Context, state string, limit int) ([]model.GeoPoint, error) {
	return s.locations(ctx, customerLocationsQuery, "c.customer_state", state, limit)
}

// SellerLocations returns seller coordinates joined through the geolocation
// table, optionally filtered to one Brazilian state.
func (s *Store) SellerLocations(ctx context.Context, state string, limit int) ([]model.GeoPoint, error) {
	return s.locations(ctx, sellerLocationsQuery, "s.seller_state", state, limit)
}

func (s *Store) locations(ctx context.Context, base, stateColumn, state string, limit int) ([]model.GeoPoint, error) {
	query := base
	args := []any{}
	if state != "" {
		query += fmt.Sprintf("\nWHERE %s = ?", stateColumn)
		args = append(args, state)
	}
	query += "\nLIMIT ?"
	args = append(args, limit)

	var raw []geoRow
	if err := s.db.SelectContext(ctx, &raw, query, args...); err != nil {
		logx.Error().Err(err).Str("state", state).Msg("geo query failed")
		return nil, errx.WrapStore(query, err)
	}

	points := make([]model.GeoPoint, 0, len(raw))
	for _, r := range raw {
		p := model.GeoPoint{Lat: r.Lat, Lng: r.Lng}
		if r.Label.Valid {
			p.Label = r.Label.String
		}
		points = append(points, p)
	}
	return points, nil
}
