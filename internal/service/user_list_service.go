package service

import (
	"context"
	"slices"
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

// UserListTitle is the title of the user list page.
const UserListTitle = "Configuration of users"

// User source categories, indexed by the filter_source value.
const (
	SourceAll      = "All"
	SourceInternal = "Internal"
	SourceLDAP     = "LDAP"
	SourceSAML     = "SAML"
)

var userSources = []string{SourceAll, SourceInternal, SourceLDAP, SourceSAML}

const (
	userProfilePrefix = "web.user"
	userListID        = "user.list"
)

type sessionReader interface {
	LastAccess(ctx context.Context, userIDs []string) ([]models.UserSession, error)
}

// UserListService assembles the user administration list.
type UserListService struct {
	pipeline *listpage.Pipeline[models.UserRow, dto.UserListView]
	metrics  *MetricsService
}

// NewUserListService wires the user list definition into a pipeline.
func NewUserListService(gw gateway.Gateway, sessions sessionReader, settings listpage.SettingsProvider, guard *access.Guard, validator *validation.Validator, metrics *MetricsService, logger *zap.Logger) *UserListService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if guard == nil {
		guard = access.NewGuard()
	}
	def := &userList{gateway: gw, sessions: sessions, guard: guard, logger: logger}
	return &UserListService{
		pipeline: listpage.New[models.UserRow, dto.UserListView](def, guard, validator, settings, logger),
		metrics:  metrics,
	}
}

// List runs the user list for subject with the preferences in store.
func (s *UserListService) List(ctx context.Context, subject access.Subject, store preference.Store, req validation.Request) (*dto.UserListView, error) {
	start := time.Now()
	view, err := s.pipeline.Run(ctx, subject, store, req)
	s.metrics.ObserveListPage(userListID, outcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

type userList struct {
	gateway  gateway.Gateway
	sessions sessionReader
	guard    *access.Guard
	logger   *zap.Logger
}

func (d *userList) Capability() access.Capability { return access.UIAdministrationUsers }
func (d *userList) ProfilePrefix() string         { return userProfilePrefix }
func (d *userList) ListID() string                { return userListID }

func (d *userList) DefaultSort() listpage.SortSpec {
	return listpage.SortSpec{Field: "username", Order: listpage.SortAsc}
}

func (d *userList) Rules() validation.RuleSet {
	return validation.RuleSet{
		"uncheck":          validation.In("1"),
		"filter_username":  validation.Text(),
		"filter_name":      validation.Text(),
		"filter_surname":   validation.Text(),
		"filter_roles":     validation.IDs(),
		"filter_usrgrpids": validation.IDs(),
		"filter_source":    validation.In("", "0", "1", "2", "3"),
	}
}

func (d *userList) SortFields() map[string]listpage.SortField[models.UserRow] {
	return map[string]listpage.SortField[models.UserRow]{
		"username":  {Kind: listpage.CompareNatural, Value: func(u models.UserRow) string { return u.Username }},
		"name":      {Kind: listpage.CompareNatural, Value: func(u models.UserRow) string { return u.Name }},
		"surname":   {Kind: listpage.CompareNatural, Value: func(u models.UserRow) string { return u.Surname }},
		"role_name": {Kind: listpage.CompareNatural, Value: func(u models.UserRow) string { return u.RoleName }},
	}
}

func (d *userList) Filters() []listpage.FilterField {
	return []listpage.FilterField{
		{Name: "filter_username", Type: preference.TypeStr},
		{Name: "filter_name", Type: preference.TypeStr},
		{Name: "filter_surname", Type: preference.TypeStr},
		{Name: "filter_roles", List: true, Type: preference.TypeID},
		{Name: "filter_usrgrpids", List: true, Type: preference.TypeID},
		{Name: "filter_source", Type: preference.TypeStr},
	}
}

func (d *userList) Fetch(ctx context.Context, filter listpage.FilterState, limit int) ([]models.UserRow, error) {
	criteria := gateway.Criteria{
		Output: []string{"userid", "username", "name", "surname", "autologout", "attempt_failed", "roleid", "userdirectoryid"},
		Select: map[string][]string{
			"selectUsrgrps": {"name", "gui_access", "users_status"},
			"selectRole":    {"name"},
		},
		Search: map[string]string{
			"username": filter.String("filter_username"),
			"name":     filter.String("filter_name"),
			"surname":  filter.String("filter_surname"),
		},
		Filter: map[string][]string{"roleid": filter.List("filter_roles")},
		IDs:    map[string][]string{"usrgrpids": filter.List("filter_usrgrpids")},
		Flags:  map[string]bool{"getAccess": true},
		Limit:  limit,
	}

	var users []models.APIUser
	if err := d.gateway.Query(ctx, gateway.EntityUser, criteria, &users); err != nil {
		return nil, err
	}

	rows := make([]models.UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, toUserRow(u))
	}
	return rows, nil
}

// Enrich classifies every user by the identity provider of its user directory.
// Users without a directory, or whose directory no longer exists, are internal.
func (d *userList) Enrich(ctx context.Context, rows []models.UserRow) ([]models.UserRow, error) {
	var directoryIDs []string
	for _, row := range rows {
		if isZeroID(row.UserDirectoryID) || slices.Contains(directoryIDs, row.UserDirectoryID) {
			continue
		}
		directoryIDs = append(directoryIDs, row.UserDirectoryID)
	}

	idpTypes := map[string]string{}
	if len(directoryIDs) > 0 {
		var directories []models.APIUserDirectory
		criteria := gateway.Criteria{
			Output: []string{"userdirectoryid", "idp_type"},
			IDs:    map[string][]string{"userdirectoryids": directoryIDs},
		}
		if err := d.gateway.Query(ctx, gateway.EntityUserDirectory, criteria, &directories); err != nil {
			return nil, err
		}
		for _, dir := range directories {
			idpTypes[dir.UserDirectoryID] = dir.IdPType
		}
	}

	for i := range rows {
		rows[i].Source = SourceInternal
		if isZeroID(rows[i].UserDirectoryID) {
			continue
		}
		idpType, ok := idpTypes[rows[i].UserDirectoryID]
		switch {
		case !ok:
			d.logger.Debug("user directory not found", zap.String("userid", rows[i].UserID), zap.String("userdirectoryid", rows[i].UserDirectoryID))
		case idpType == models.IdPTypeLDAP:
			rows[i].Source = SourceLDAP
		default:
			rows[i].Source = SourceSAML
		}
	}
	return rows, nil
}

func (d *userList) Keep(filter listpage.FilterState, row models.UserRow) bool {
	source, err := strconv.Atoi(filter.String("filter_source"))
	if err != nil || source <= 0 || source >= len(userSources) {
		return true
	}
	return row.Source == userSources[source]
}

// EnrichPage attaches the most recent session to the visible users only.
func (d *userList) EnrichPage(ctx context.Context, rows []models.UserRow) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]string, len(rows))
	index := make(map[string]int, len(rows))
	for i := range rows {
		rows[i].Session = models.UserSessionInfo{}
		ids[i] = rows[i].UserID
		index[rows[i].UserID] = i
	}

	sessions, err := d.sessions.LastAccess(ctx, ids)
	if err != nil {
		d.logger.Error("failed to load sessions", zap.Error(err))
		return err
	}
	for _, s := range sessions {
		i, ok := index[s.UserID]
		if !ok {
			continue
		}
		if rows[i].Session.LastAccess < s.LastAccess {
			rows[i].Session = models.UserSessionInfo{LastAccess: s.LastAccess, Status: s.Status}
		}
	}
	return nil
}

func (d *userList) Assemble(ctx context.Context, state listpage.State[models.UserRow]) (dto.UserListView, error) {
	roles, err := resolveNames(ctx, d.gateway, gateway.EntityRole, "roleids", "roleid", state.Filter.List("filter_roles"))
	if err != nil {
		return dto.UserListView{}, err
	}
	groups, err := resolveNames(ctx, d.gateway, gateway.EntityUserGroup, "usrgrpids", "usrgrpid", state.Filter.List("filter_usrgrpids"))
	if err != nil {
		return dto.UserListView{}, err
	}
	activeTab, err := activeTab(ctx, state.Store, userProfilePrefix)
	if err != nil {
		return dto.UserListView{}, err
	}

	return dto.UserListView{
		Uncheck:   state.Input.Has("uncheck"),
		Sort:      state.Sort.Field,
		SortOrder: string(state.Sort.Order),
		Filter: dto.UserListFilter{
			Username:  state.Filter.String("filter_username"),
			Name:      state.Filter.String("filter_name"),
			Surname:   state.Filter.String("filter_surname"),
			Roles:     roles,
			UsrgrpIDs: groups,
			Source:    state.Filter.String("filter_source"),
		},
		ProfileIdx:          userProfilePrefix + ".filter",
		ActiveTab:           activeTab,
		Users:               state.Rows,
		Paging:              state.Pager,
		Sources:             slices.Clone(userSources),
		AllowedUIUserGroups: d.guard.CheckPermission(state.Subject, access.UIAdministrationUserGroups),
		Config: dto.ListConfig{
			LoginAttempts: state.Settings.LoginAttempts,
			MaxInTable:    state.Settings.MaxInTable,
		},
	}, nil
}

func toUserRow(u models.APIUser) models.UserRow {
	row := models.UserRow{
		UserID:          u.UserID,
		Username:        u.Username,
		Name:            u.Name,
		Surname:         u.Surname,
		Autologout:      u.Autologout,
		AttemptFailed:   atoi(u.AttemptFailed),
		RoleID:          u.RoleID,
		UserDirectoryID: u.UserDirectoryID,
		GUIAccess:       atoi(u.GUIAccess),
		DebugMode:       atoi(u.DebugMode),
		UsersStatus:     atoi(u.UsersStatus),
		Groups:          make([]models.UserGroupRef, 0, len(u.Usrgrps)),
	}
	if u.Role.Present {
		row.RoleName = u.Role.Name
	}
	for _, g := range u.Usrgrps {
		row.Groups = append(row.Groups, models.UserGroupRef{
			ID:          g.UsrgrpID,
			Name:        g.Name,
			GUIAccess:   atoi(g.GUIAccess),
			UsersStatus: atoi(g.UsersStatus),
		})
	}
	return row
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func isZeroID(id string) bool {
	return id == "" || id == "0"
}
