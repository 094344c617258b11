package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/monitoring-admin-api/internal/access"
	"github.com/noah-isme/monitoring-admin-api/internal/gateway"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
	"github.com/noah-isme/monitoring-admin-api/internal/validation"
	appErrors "github.com/noah-isme/monitoring-admin-api/pkg/errors"
)

const userGroups = `[
	{"usrgrpid":"7","name":"Zabbix administrators","gui_access":"0","users_status":"0","users":[{"userid":"1","username":"Admin"}]},
	{"usrgrpid":"8","name":"Guests","gui_access":"0","users_status":"1","users":[{"userid":"2","username":"guest"},{"userid":"3","username":"viewer"},{"userid":"4","username":"ops"}]},
	{"usrgrpid":"13","name":"group10","users_status":"0","users":[]},
	{"usrgrpid":"12","name":"group9","users_status":"0"}
]`

func newUserGroupList(settings staticSettings) (*UserGroupListService, *fakeGateway) {
	gw := &fakeGateway{results: map[gateway.Entity]string{gateway.EntityUserGroup: userGroups}}
	return NewUserGroupListService(gw, settings, nil, nil, nil, nil), gw
}

func groupNames(rows []models.UserGroupRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestUserGroupListNaturalNameOrder(t *testing.T) {
	svc, _ := newUserGroupList(listSettings)

	view, err := svc.List(context.Background(), superAdmin, newStore(), validation.Request{})

	require.NoError(t, err)
	assert.Equal(t, []string{"group9", "group10", "Guests", "Zabbix administrators"}, groupNames(view.Groups))
	assert.Equal(t, "web.usergroup.filter", view.ProfileIdx)
	assert.True(t, view.AllowedUIUsers)
}

func TestUserGroupListSortByUserCount(t *testing.T) {
	svc, _ := newUserGroupList(listSettings)

	view, err := svc.List(context.Background(), superAdmin, newStore(), validation.Request{"sort": {"user_cnt"}, "sortorder": {"DESC"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"Guests", "Zabbix administrators", "group10", "group9"}, groupNames(view.Groups))
	assert.Equal(t, 3, view.Groups[0].UserCount)
}

func TestUserGroupListStatusFilter(t *testing.T) {
	svc, gw := newUserGroupList(listSettings)
	ctx := context.Background()
	store := newStore()

	_, err := svc.List(ctx, superAdmin, store, validation.Request{"filter_set": {"1"}, "filter_user_status": {"1"}, "filter_name": {"gu"}})
	require.NoError(t, err)
	params := gw.calls[0].criteria.Params()
	assert.Equal(t, map[string][]string{"users_status": {"1"}}, params["filter"])
	assert.Equal(t, map[string]string{"name": "gu"}, params["search"])

	view, err := svc.List(ctx, superAdmin, store, validation.Request{"filter_rst": {"1"}})
	require.NoError(t, err)
	assert.Equal(t, "-1", view.Filter.UserStatus)
	params = gw.calls[1].criteria.Params()
	assert.NotContains(t, params, "filter")
	assert.NotContains(t, params, "search")
}

func TestUserGroupListCutsMembersToMaxInTable(t *testing.T) {
	svc, _ := newUserGroupList(staticSettings{SearchLimit: 100, RowsPerPage: 50, MaxInTable: 2})

	view, err := svc.List(context.Background(), superAdmin, newStore(), validation.Request{"sort": {"user_cnt"}, "sortorder": {"DESC"}})

	require.NoError(t, err)
	assert.Len(t, view.Groups[0].Users, 2)
	assert.Equal(t, 3, view.Groups[0].UserCount)
	assert.Equal(t, 2, view.Config.MaxInTable)
}

func TestUserGroupListRespectsRoleRules(t *testing.T) {
	svc, gw := newUserGroupList(listSettings)
	subject := access.Subject{
		UserType: access.UserTypeSuperAdmin,
		Rules:    map[access.Capability]bool{access.UIAdministrationUsers: true},
	}

	_, err := svc.List(context.Background(), subject, newStore(), validation.Request{})

	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
	assert.Empty(t, gw.calls)
}

func TestUserGroupListEmptyFiltersAreUnconstrained(t *testing.T) {
	svc, gw := newUserGroupList(listSettings)
	store := newStore()

	view, err := svc.List(context.Background(), superAdmin, store, validation.Request{
		"filter_set": {"1"}, "filter_name": {""}, "filter_user_status": {""},
	})

	require.NoError(t, err)
	assert.Len(t, view.Groups, 4)
	assert.Equal(t, "", view.Filter.UserStatus)
	params := gw.calls[0].criteria.Params()
	assert.NotContains(t, params, "filter")
	assert.NotContains(t, params, "search")

	view, err = svc.List(context.Background(), superAdmin, store, validation.Request{})
	require.NoError(t, err)
	assert.Len(t, view.Groups, 4)
}
