package service

import (
	"context"
	"strconv"

	"github.com/noah-isme/monitoring-admin-api/internal/gateway"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
	"github.com/noah-isme/monitoring-admin-api/internal/preference"
)

// resolveNames looks up the names of the filter ids so the view can show them.
// Ids that no longer exist are dropped.
func resolveNames(ctx context.Context, gw gateway.Gateway, entity gateway.Entity, idsParam, idField string, ids []string) ([]models.NamedRef, error) {
	refs := []models.NamedRef{}
	if len(ids) == 0 {
		return refs, nil
	}

	var records []map[string]string
	criteria := gateway.Criteria{
		Output: []string{idField, "name"},
		IDs:    map[string][]string{idsParam: ids},
	}
	if err := gw.Query(ctx, entity, criteria, &records); err != nil {
		return nil, err
	}
	for _, record := range records {
		refs = append(refs, models.NamedRef{ID: record[idField], Name: record["name"]})
	}
	return refs, nil
}

// activeTab returns the filter tab the user left open, 1 by default.
func activeTab(ctx context.Context, store preference.Store, prefix string) (int, error) {
	raw, err := store.Get(ctx, prefix+".filter.active", "1")
	if err != nil {
		return 0, err
	}
	tab, err := strconv.Atoi(raw)
	if err != nil {
		return 1, nil
	}
	return tab, nil
}
