package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/olist-agent-poc/server/internal/agent/model"
)

// GeoStore is the slice of the relational store the map handler needs.
type GeoStore interface {
	CustomerLocations(ctx context.Context, state string, limit int) ([]model.GeoPoint, error)
	SellerLocations(ctx context.Context, state string, limit int) ([]model.GeoPoint, error)
}

// PlotMap resolves a location-oriented sub-query to a finite point set. The
// sub-query is interpreted by direct pass-through: a "seller" keyword selects
// seller locations (customers otherwise), and an uppercase two-letter
// Brazilian state code narrows the filter. Zero matching rows is a valid
// answer, not an error.
type PlotMap struct {
	store      GeoStore
	pointLimit int
}

func NewPlotMap(store GeoStore, cfg model.AnalysisConfig) *PlotMap {
	return &PlotMap{
		store:      store,
		pointLimit: cfg.MapPointLimit,
	}
}

func (h *PlotMap) Answer(ctx context.Context, query string, _ []*schema.Message) (*model.FinalAnswer, error) {
	dataset := "customer"
	if strings.Contains(strings.ToLower(query), "seller") {
		dataset = "seller"
	}
	state := extractState(query)

	var (
		points []model.GeoPoint
		err    error
	)
	if dataset == "seller" {
		points, err = h.store.SellerLocations(ctx, state, h.pointLimit)
	} else {
		points, err = h.store.CustomerLocations(ctx, state, h.pointLimit)
	}
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []model.GeoPoint{}
	}

	return &model.FinalAnswer{
		Text:   caption(dataset, state, len(points)),
		Points: points,
	}, nil
}

func caption(dataset, state string, count int) string {
	scope := dataset + " locations"
	if state != "" {
		scope += " in " + state
	}
	if count == 0 {
		return fmt.Sprintf("No %s matched that request.", scope)
	}
	return fmt.Sprintf("Here is a map showing %d sample %s.", count, scope)
}

// brazilianStates is the filter vocabulary for the geolocation tables.
var brazilianStates = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true,
	"DF": true, "ES": true, "GO": true, "MA": true, "MT": true, "MS": true,
	"MG": true, "PA": true, "PB": true, "PR": true, "PE": true, "PI": true,
	"RJ": true, "RN": true, "RS": true, "RO": true, "RR": true, "SC": true,
	"SP": true, "SE": true, "TO": true,
}

// extractState finds an explicit uppercase state code in the sub-query.
// Lowercase words are never promoted, so "to" does not match the TO state.
func extractState(query string) string {
	for _, token := range strings.FieldsFunc(query, func(r rune) bool {
		return !('A' <= r && r <= 'Z' || 'a' <= r && r <= 'z')
	}) {
		if len(token) == 2 && token == strings.ToUpper(token) && brazilianStates[token] {
			return token
		}
	}
	return ""
}

var _ Handler = (*PlotMap)(nil)
