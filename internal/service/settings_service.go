package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/monitoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/monitoring-admin-api/pkg/errors"
)

const settingsCacheKey = "settings:global"

type settingsRepository interface {
	ListByNames(ctx context.Context, names []string) ([]models.Setting, error)
}

// SettingsServiceConfig carries the fallbacks used when the settings table has no
// usable row.
type SettingsServiceConfig struct {
	Defaults models.GlobalSettings
	CacheTTL time.Duration
}

// SettingsService reads the global settings the list pages depend on.
type SettingsService struct {
	repo     settingsRepository
	cache    *CacheService
	defaults models.GlobalSettings
	ttl      time.Duration
	logger   *zap.Logger
}

// NewSettingsService constructs a SettingsService. cache may be nil.
func NewSettingsService(repo settingsRepository, cache *CacheService, logger *zap.Logger, cfg SettingsServiceConfig) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, cache: cache, defaults: cfg.Defaults, ttl: cfg.CacheTTL, logger: logger}
}

// Get returns the current global settings.
func (s *SettingsService) Get(ctx context.Context) (models.GlobalSettings, error) {
	var cached models.GlobalSettings
	if hit, _ := s.cache.Get(ctx, settingsCacheKey, &cached); hit {
		return cached, nil
	}

	rows, err := s.repo.ListByNames(ctx, []string{
		models.SettingSearchLimit,
		models.SettingRowsPerPage,
		models.SettingMaxInTable,
		models.SettingLoginAttempts,
	})
	if err != nil {
		return models.GlobalSettings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}

	settings := s.defaults
	for _, row := range rows {
		value, ok := settingValue(row)
		if !ok {
			s.logger.Warn("ignoring unusable setting", zap.String("name", row.Name))
			continue
		}
		switch row.Name {
		case models.SettingSearchLimit:
			settings.SearchLimit = value
		case models.SettingRowsPerPage:
			settings.RowsPerPage = value
		case models.SettingMaxInTable:
			settings.MaxInTable = value
		case models.SettingLoginAttempts:
			settings.LoginAttempts = value
		}
	}

	_ = s.cache.Set(ctx, settingsCacheKey, settings, s.ttl)
	return settings, nil
}

// Invalidate forgets cached settings.
func (s *SettingsService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, settingsCacheKey)
}

func settingValue(row models.Setting) (int, bool) {
	var n int64
	switch {
	case row.ValueInt != nil:
		n = *row.ValueInt
	case row.ValueStr != nil:
		parsed, err := strconv.ParseInt(strings.TrimSpace(*row.ValueStr), 10, 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if n <= 0 {
		return 0, false
	}
	return int(n), true
}
