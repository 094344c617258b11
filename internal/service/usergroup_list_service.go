package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/monitoring-admin-api/internal/access"
	"github.com/noah-isme/monitoring-admin-api/internal/dto"
	"github.com/noah-isme/monitoring-admin-api/internal/gateway"
	"github.com/noah-isme/monitoring-admin-api/internal/listpage"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
	"github.com/noah-isme/monitoring-admin-api/internal/preference"
	"github.com/noah-isme/monitoring-admin-api/internal/validation"
)

// UserGroupListTitle is the title of the user group list page.
const UserGroupListTitle = "Configuration of user groups"

const (
	userGroupProfilePrefix = "web.usergroup"
	userGroupListID        = "usergroup.list"
	anyUserStatus          = "-1"
)

// UserGroupListService assembles the user group administration list.
type UserGroupListService struct {
	pipeline *listpage.Pipeline[models.UserGroupRow, dto.UserGroupListView]
	metrics  *MetricsService
}

// NewUserGroupListService wires the user group list definition into a pipeline.
func NewUserGroupListService(gw gateway.Gateway, settings listpage.SettingsProvider, guard *access.Guard, validator *validation.Validator, metrics *MetricsService, logger *zap.Logger) *UserGroupListService {
	if guard == nil {
		guard = access.NewGuard()
	}
	def := &userGroupList{gateway: gw, guard: guard}
	return &UserGroupListService{
		pipeline: listpage.New[models.UserGroupRow, dto.UserGroupListView](def, guard, validator, settings, logger),
		metrics:  metrics,
	}
}

// List runs the user group list for subject with the preferences in store.
func (s *UserGroupListService) List(ctx context.Context, subject access.Subject, store preference.Store, req validation.Request) (*dto.UserGroupListView, error) {
	start := time.Now()
	view, err := s.pipeline.Run(ctx, subject, store, req)
	s.metrics.ObserveListPage(userGroupListID, outcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}
	return &view, nil
}

type userGroupList struct {
	gateway gateway.Gateway
	guard   *access.Guard
}

func (d *userGroupList) Capability() access.Capability { return access.UIAdministrationUserGroups }
func (d *userGroupList) ProfilePrefix() string         { return userGroupProfilePrefix }
func (d *userGroupList) ListID() string                { return userGroupListID }

func (d *userGroupList) DefaultSort() listpage.SortSpec {
	return listpage.SortSpec{Field: "name", Order: listpage.SortAsc}
}

func (d *userGroupList) Rules() validation.RuleSet {
	return validation.RuleSet{
		"uncheck":            validation.In("1"),
		"filter_name":        validation.Text(),
		"filter_user_status": validation.In("", anyUserStatus, "0", "1"),
	}
}

func (d *userGroupList) SortFields() map[string]listpage.SortField[models.UserGroupRow] {
	return map[string]listpage.SortField[models.UserGroupRow]{
		"name":     {Kind: listpage.CompareNatural, Value: func(g models.UserGroupRow) string { return g.Name }},
		"user_cnt": {Kind: listpage.CompareNumeric, Value: func(g models.UserGroupRow) string { return strconv.Itoa(g.UserCount) }},
	}
}

func (d *userGroupList) Filters() []listpage.FilterField {
	return []listpage.FilterField{
		{Name: "filter_name", Type: preference.TypeStr},
		{Name: "filter_user_status", Type: preference.TypeInt, Default: anyUserStatus},
	}
}

func (d *userGroupList) Fetch(ctx context.Context, filter listpage.FilterState, limit int) ([]models.UserGroupRow, error) {
	criteria := gateway.Criteria{
		Output: []string{"usrgrpid", "name", "gui_access", "users_status", "debug_mode"},
		Select: map[string][]string{"selectUsers": {"userid", "username", "name", "surname"}},
		Search: map[string]string{"name": filter.String("filter_name")},
		Limit:  limit,
	}
	if status := filter.String("filter_user_status"); status != "" && status != anyUserStatus {
		criteria.Filter = map[string][]string{"users_status": {status}}
	}

	var groups []models.APIUserGroup
	if err := d.gateway.Query(ctx, gateway.EntityUserGroup, criteria, &groups); err != nil {
		return nil, err
	}

	rows := make([]models.UserGroupRow, 0, len(groups))
	for _, g := range groups {
		users := g.Users
		if users == nil {
			users = []models.APIGroupMember{}
		}
		rows = append(rows, models.UserGroupRow{
			UsrgrpID:    g.UsrgrpID,
			Name:        g.Name,
			GUIAccess:   atoi(g.GUIAccess),
			UsersStatus: atoi(g.UsersStatus),
			DebugMode:   atoi(g.DebugMode),
			UserCount:   len(users),
			Users:       users,
		})
	}
	return rows, nil
}

func (d *userGroupList) Enrich(_ context.Context, rows []models.UserGroupRow) ([]models.UserGroupRow, error) {
	return rows, nil
}

func (d *userGroupList) Keep(listpage.FilterState, models.UserGroupRow) bool { return true }

func (d *userGroupList) EnrichPage(context.Context, []models.UserGroupRow) error { return nil }

func (d *userGroupList) Assemble(ctx context.Context, state listpage.State[models.UserGroupRow]) (dto.UserGroupListView, error) {
	tab, err := activeTab(ctx, state.Store, userGroupProfilePrefix)
	if err != nil {
		return dto.UserGroupListView{}, err
	}
	// Member lists are cut to what one table cell shows; UserCount keeps the real size.
	maxInTable := state.Settings.MaxInTable
	for i := range state.Rows {
		if maxInTable > 0 && len(state.Rows[i].Users) > maxInTable {
			state.Rows[i].Users = state.Rows[i].Users[:maxInTable]
		}
	}
	return dto.UserGroupListView{
		Uncheck:   state.Input.Has("uncheck"),
		Sort:      state.Sort.Field,
		SortOrder: string(state.Sort.Order),
		Filter: dto.UserGroupListFilter{
			Name:       state.Filter.String("filter_name"),
			UserStatus: state.Filter.String("filter_user_status"),
		},
		ProfileIdx:     userGroupProfilePrefix + ".filter",
		ActiveTab:      tab,
		Groups:         state.Rows,
		Paging:         state.Pager,
		AllowedUIUsers: d.guard.CheckPermission(state.Subject, access.UIAdministrationUsers),
		Config:         dto.ListConfig{MaxInTable: maxInTable},
	}, nil
}
