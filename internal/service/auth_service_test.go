package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/monitoring-admin-api/internal/gateway"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/monitoring-admin-api/pkg/errors"
)

func newAuthService(gw *fakeGateway) *AuthService {
	return NewAuthService(gw, nil, nil, AuthConfig{AccessTokenSecret: "secret", AccessTokenExpiry: time.Hour, Issuer: "admin-console"})
}

func TestAuthServiceLoginIssuesToken(t *testing.T) {
	gw := &fakeGateway{
		loginUser: &models.APILoginUser{UserID: "1", Username: "Admin", Name: "Zabbix", Type: "3", RoleID: "3", SessionID: "s1"},
		results: map[gateway.Entity]string{
			gateway.EntityRole: `[{"roleid":"3","name":"Super admin role","type":"3","rules":{
				"ui.default_access":"1",
				"ui":[{"name":"administration.users","status":"1"},{"name":"reports.audit","status":"0"}]}}]`,
		},
	}
	svc := newAuthService(gw)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "Admin", Password: "zabbix"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, 3, resp.User.Type)
	assert.Equal(t, []string{"s1"}, gw.loggedOut)

	roleCalls := gw.callsTo(gateway.EntityRole)
	require.Len(t, roleCalls, 1)
	assert.Equal(t, []string{"3"}, roleCalls[0].criteria.IDs["roleids"])

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)
	assert.Equal(t, 3, claims.UserType)
	assert.True(t, claims.UIDefaultAccess)
	assert.Equal(t, map[string]bool{"ui.administration.users": true, "ui.reports.audit": false}, claims.UIRules)
}

func TestAuthServiceLoginRejected(t *testing.T) {
	gw := &fakeGateway{loginErr: appErrors.Clone(appErrors.ErrInvalidCredentials, "")}

	_, err := newAuthService(gw).Login(context.Background(), models.LoginRequest{Username: "Admin", Password: "nope"})

	assert.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))
	assert.Empty(t, gw.calls)
}

func TestAuthServiceLoginValidatesPayload(t *testing.T) {
	_, err := newAuthService(&fakeGateway{}).Login(context.Background(), models.LoginRequest{Username: "Admin"})

	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestAuthServiceLogoutFailureIsNotFatal(t *testing.T) {
	gw := &fakeGateway{
		loginUser: &models.APILoginUser{UserID: "2", Username: "guest", Type: "1", RoleID: "4", SessionID: "s2"},
		logoutErr: errors.New("gone"),
	}

	resp, err := newAuthService(gw).Login(context.Background(), models.LoginRequest{Username: "guest", Password: "x"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthServiceRejectsForeignTokens(t *testing.T) {
	svc := newAuthService(&fakeGateway{loginUser: &models.APILoginUser{UserID: "1", Type: "3", RoleID: "3"}})
	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "Admin", Password: "zabbix"})
	require.NoError(t, err)

	other := NewAuthService(&fakeGateway{}, nil, nil, AuthConfig{AccessTokenSecret: "other", Issuer: "admin-console"})
	_, err = other.ValidateToken(resp.AccessToken)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	expired := newAuthService(&fakeGateway{})
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.ValidateToken(resp.AccessToken)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}
