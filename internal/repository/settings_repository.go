package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/monitoring-admin-api/internal/models"
)

// SettingsRepository reads the global settings table.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// ListByNames returns the settings whose name is in names.
func (r *SettingsRepository) ListByNames(ctx context.Context, names []string) ([]models.Setting, error) {
	if len(names) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT name, type, value_str, value_int
FROM settings WHERE name IN (%s) ORDER BY name ASC`, placeholders(len(names)))
	args := make([]interface{}, len(names))
	for i, name := range names {
		args[i] = name
	}
	var settings []models.Setting
	if err := r.db.SelectContext(ctx, &settings, query, args...); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// Ping reports whether the database answers.
func (r *SettingsRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func placeholders(n int) string {
	values := make([]string, n)
	for i := 1; i <= n; i++ {
		values[i-1] = fmt.Sprintf("$%d", i)
	}
	return strings.Join(values, ",")
}
