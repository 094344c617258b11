package listpage

import (
	"context"
	"errors"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/noah-isme/monitoring-admin-api/internal/access"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
	"github.com/noah-isme/monitoring-admin-api/internal/preference"
	"github.com/noah-isme/monitoring-admin-api/internal/validation"
	appErrors "github.com/noah-isme/monitoring-admin-api/pkg/errors"
)

// Request fields understood by every list page.
const (
	FieldSort      = "sort"
	FieldSortOrder = "sortorder"
	FieldFilterSet = "filter_set"
	FieldFilterRst = "filter_rst"
	FieldPage      = "page"
)

// Definition describes one list page. Pipeline calls its methods in a fixed order:
// Fetch, Enrich, Keep for every row, EnrichPage for the visible rows, then Assemble.
type Definition[R any, V any] interface {
	Capability() access.Capability
	// Rules declares the page specific fields. Sort, filter signal and page rules are
	// added by the pipeline.
	Rules() validation.RuleSet
	// ProfilePrefix namespaces the preference keys of the page, e.g. "web.user".
	ProfilePrefix() string
	// ListID identifies the page for pager persistence.
	ListID() string
	DefaultSort() SortSpec
	SortFields() map[string]SortField[R]
	Filters() []FilterField
	Fetch(ctx context.Context, filter FilterState, limit int) ([]R, error)
	Enrich(ctx context.Context, rows []R) ([]R, error)
	Keep(filter FilterState, row R) bool
	EnrichPage(ctx context.Context, rows []R) error
	Assemble(ctx context.Context, state State[R]) (V, error)
}

// State is everything the pipeline resolved for one request.
type State[R any] struct {
	Subject  access.Subject
	Store    preference.Store
	Input    validation.Input
	Sort     SortSpec
	Filter   FilterState
	Rows     []R
	Pager    Pager
	Settings models.GlobalSettings
}

// SettingsProvider supplies the global settings a list depends on.
type SettingsProvider interface {
	Get(ctx context.Context) (models.GlobalSettings, error)
}

// Pipeline runs a Definition for one request at a time. It holds no per-request state
// and is safe for concurrent use.
type Pipeline[R any, V any] struct {
	def       Definition[R, V]
	guard     *access.Guard
	validator *validation.Validator
	settings  SettingsProvider
	logger    *zap.Logger
}

// New builds a Pipeline for def.
func New[R any, V any](def Definition[R, V], guard *access.Guard, validator *validation.Validator, settings SettingsProvider, logger *zap.Logger) *Pipeline[R, V] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if guard == nil {
		guard = access.NewGuard()
	}
	if validator == nil {
		validator = validation.New(nil)
	}
	return &Pipeline[R, V]{
		def:       def,
		guard:     guard,
		validator: validator,
		settings:  settings,
		logger:    logger.With(zap.String("list", def.ListID())),
	}
}

// Run assembles the page for subject. Nothing is persisted unless access and
// validation pass.
func (p *Pipeline[R, V]) Run(ctx context.Context, subject access.Subject, store preference.Store, req validation.Request) (V, error) {
	var zero V

	if !p.guard.CheckPermission(subject, p.def.Capability()) {
		p.logger.Info("list access denied", zap.String("capability", string(p.def.Capability())), zap.Int("user_type", int(subject.UserType)))
		return zero, appErrors.Clone(appErrors.ErrForbidden, "")
	}

	in, err := p.validator.Validate(req, p.rules())
	if err != nil {
		p.logger.Debug("list request rejected", zap.Error(err))
		return zero, err
	}

	sort, err := p.resolveSort(ctx, store, in)
	if err != nil {
		return zero, p.storeFailure(err)
	}

	filter, err := p.resolveFilter(ctx, store, in)
	if err != nil {
		return zero, p.storeFailure(err)
	}

	settings, err := p.settings.Get(ctx)
	if err != nil {
		return zero, err
	}

	rows, err := p.def.Fetch(ctx, filter, settings.SearchLimit+1)
	if err != nil {
		p.logger.Error("list fetch failed", zap.Error(err))
		return zero, p.gatewayFailure(err)
	}

	rows, err = p.def.Enrich(ctx, rows)
	if err != nil {
		p.logger.Error("list enrichment failed", zap.Error(err))
		return zero, p.gatewayFailure(err)
	}

	rows = slices.DeleteFunc(rows, func(row R) bool { return !p.def.Keep(filter, row) })

	SortRows(rows, p.def.SortFields()[sort.Field], sort.Order)

	page, err := p.resolvePage(ctx, store, in)
	if err != nil {
		return zero, p.storeFailure(err)
	}
	visible, pager := Paginate(rows, page, settings.RowsPerPage, settings.SearchLimit, sort.Order)

	if err := p.def.EnrichPage(ctx, visible); err != nil {
		p.logger.Error("page enrichment failed", zap.Error(err))
		return zero, err
	}

	return p.def.Assemble(ctx, State[R]{
		Subject:  subject,
		Store:    store,
		Input:    in,
		Sort:     sort,
		Filter:   filter,
		Rows:     visible,
		Pager:    pager,
		Settings: settings,
	})
}

func (p *Pipeline[R, V]) rules() validation.RuleSet {
	rules := validation.RuleSet{
		FieldSort:      validation.In(slices.Sorted(maps.Keys(p.def.SortFields()))...),
		FieldSortOrder: validation.In(string(SortAsc), string(SortDesc)),
		FieldFilterSet: validation.In("1"),
		FieldFilterRst: validation.In("1"),
		FieldPage:      validation.Min(1),
	}
	maps.Copy(rules, p.def.Rules())
	return rules
}

func (p *Pipeline[R, V]) key(name string) string {
	return p.def.ProfilePrefix() + "." + name
}

func (p *Pipeline[R, V]) resolveSort(ctx context.Context, store preference.Store, in validation.Input) (SortSpec, error) {
	def := p.def.DefaultSort()
	fields := p.def.SortFields()

	storedField, err := store.Get(ctx, p.key(FieldSort), def.Field)
	if err != nil {
		return SortSpec{}, err
	}
	if _, ok := fields[storedField]; !ok {
		storedField = def.Field
	}
	storedOrder, err := store.Get(ctx, p.key(FieldSortOrder), string(def.Order))
	if err != nil {
		return SortSpec{}, err
	}
	if storedOrder != string(SortAsc) && storedOrder != string(SortDesc) {
		storedOrder = string(def.Order)
	}

	spec := SortSpec{
		Field: in.String(FieldSort, storedField),
		Order: SortOrder(in.String(FieldSortOrder, storedOrder)),
	}
	if err := store.Set(ctx, p.key(FieldSort), spec.Field, preference.TypeStr); err != nil {
		return SortSpec{}, err
	}
	if err := store.Set(ctx, p.key(FieldSortOrder), string(spec.Order), preference.TypeStr); err != nil {
		return SortSpec{}, err
	}
	return spec, nil
}

func (p *Pipeline[R, V]) resolveFilter(ctx context.Context, store preference.Store, in validation.Input) (FilterState, error) {
	fields := p.def.Filters()

	switch {
	case in.Has(FieldFilterSet):
		for _, f := range fields {
			var err error
			if f.List {
				err = store.SetList(ctx, p.key(f.Name), in.IDs(f.Name, nil), f.Type)
			} else {
				err = store.Set(ctx, p.key(f.Name), in.String(f.Name, ""), f.Type)
			}
			if err != nil {
				return FilterState{}, err
			}
		}
	case in.Has(FieldFilterRst):
		for _, f := range fields {
			var err error
			if f.List {
				err = store.DeleteList(ctx, p.key(f.Name))
			} else {
				err = store.Delete(ctx, p.key(f.Name))
			}
			if err != nil {
				return FilterState{}, err
			}
		}
	}

	state := NewFilterState(nil, nil)
	for _, f := range fields {
		if f.List {
			values, err := store.GetList(ctx, p.key(f.Name), []string{})
			if err != nil {
				return FilterState{}, err
			}
			state.lists[f.Name] = values
			continue
		}
		value, err := store.Get(ctx, p.key(f.Name), f.Default)
		if err != nil {
			return FilterState{}, err
		}
		state.scalars[f.Name] = value
	}
	return state, nil
}

// resolvePage takes the requested page, or the saved one when the request has none.
// Changing the filter starts over at the first page.
func (p *Pipeline[R, V]) resolvePage(ctx context.Context, store preference.Store, in validation.Input) (int, error) {
	page := 1
	switch {
	case in.Has(FieldPage):
		page = in.Int(FieldPage, 1)
	case in.Has(FieldFilterSet), in.Has(FieldFilterRst):
	default:
		saved, err := LoadPage(ctx, store, p.def.ListID())
		if err != nil {
			return 0, err
		}
		page = saved
	}
	if err := SavePage(ctx, store, p.def.ListID(), page); err != nil {
		return 0, err
	}
	return page, nil
}

func (p *Pipeline[R, V]) storeFailure(err error) error {
	p.logger.Error("list preferences unavailable", zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to access list preferences")
}

func (p *Pipeline[R, V]) gatewayFailure(err error) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return appErrors.Wrap(err, appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, appErrors.ErrGateway.Message)
}
