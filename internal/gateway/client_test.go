package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/monitoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/monitoring-admin-api/pkg/errors"
)

type recordedCall struct {
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
	Auth   string                 `json:"-"`
}

type observerStub struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *observerStub) ObserveGatewayCall(method, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, method+":"+outcome)
}

func newServer(t *testing.T, reply string, calls *[]recordedCall) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var call recordedCall
		require.NoError(t, json.Unmarshal(body, &call))
		call.Auth = r.Header.Get("Authorization")
		*calls = append(*calls, call)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
}

func TestQueryDecodesUsers(t *testing.T) {
	var calls []recordedCall
	srv := newServer(t, `{"jsonrpc":"2.0","id":1,"result":[
		{"userid":"1","username":"Admin","roleid":"3","userdirectoryid":"0","role":{"roleid":"3","name":"Super admin role"},"usrgrps":[{"usrgrpid":"7","name":"Zabbix administrators","gui_access":"0","users_status":"0"}]},
		{"userid":"2","username":"guest","roleid":"4","userdirectoryid":"0","role":[]}
	]}`, &calls)
	defer srv.Close()

	obs := &observerStub{}
	client := NewClient(Config{URL: srv.URL, APIToken: "secret"}, srv.Client(), obs, nil)

	var users []models.APIUser
	err := client.Query(context.Background(), EntityUser, Criteria{
		Output: []string{"userid", "username"},
		Search: map[string]string{"username": "adm", "name": ""},
		Filter: map[string][]string{"roleid": nil},
		IDs:    map[string][]string{"usrgrpids": {"7"}},
		Select: map[string][]string{"selectRole": {"name"}},
		Flags:  map[string]bool{"getAccess": true},
		Limit:  1001,
	}, &users)
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.True(t, users[0].Role.Present)
	assert.Equal(t, "Super admin role", users[0].Role.Name)
	assert.False(t, users[1].Role.Present)
	assert.Equal(t, "Zabbix administrators", users[0].Usrgrps[0].Name)

	require.Len(t, calls, 1)
	assert.Equal(t, "user.get", calls[0].Method)
	assert.Equal(t, "Bearer secret", calls[0].Auth)
	assert.Equal(t, map[string]interface{}{"username": "adm"}, calls[0].Params["search"])
	assert.NotContains(t, calls[0].Params, "filter")
	assert.Equal(t, []interface{}{"7"}, calls[0].Params["usrgrpids"])
	assert.Equal(t, true, calls[0].Params["getAccess"])
	assert.EqualValues(t, 1001, calls[0].Params["limit"])
	assert.Equal(t, []string{"user.get:success"}, obs.outcomes)
}

func TestQueryRemoteError(t *testing.T) {
	var calls []recordedCall
	srv := newServer(t, `{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Invalid params.","data":"Not authorized."}}`, &calls)
	defer srv.Close()

	obs := &observerStub{}
	client := NewClient(Config{URL: srv.URL}, srv.Client(), obs, nil)

	var users []models.APIUser
	err := client.Query(context.Background(), EntityUser, Criteria{}, &users)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrGateway))
	assert.Equal(t, "Invalid params. Not authorized.", appErrors.FromError(err).Message)
	assert.Equal(t, []string{"user.get:error"}, obs.outcomes)
	assert.Len(t, calls, 1, "failed calls are not retried")
}

func TestQueryTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL}, srv.Client(), nil, nil)
	err := client.Query(context.Background(), EntityRole, Criteria{}, &[]models.APIRole{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrGateway))
}

func TestLoginIsUnauthenticated(t *testing.T) {
	var calls []recordedCall
	srv := newServer(t, `{"jsonrpc":"2.0","id":1,"result":{"userid":"1","username":"Admin","type":"3","roleid":"3","sessionid":"abc"}}`, &calls)
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL, APIToken: "secret"}, srv.Client(), nil, nil)
	user, err := client.Login(context.Background(), "Admin", "zabbix")
	require.NoError(t, err)
	assert.Equal(t, "abc", user.SessionID)
	assert.Equal(t, "", calls[0].Auth)
	assert.Equal(t, "user.login", calls[0].Method)
}

func TestCriteriaDefaultsToExtend(t *testing.T) {
	params := Criteria{Select: map[string][]string{"selectUsers": nil}}.Params()
	assert.Equal(t, "extend", params["output"])
	assert.Equal(t, "extend", params["selectUsers"])
	assert.NotContains(t, params, "limit")
}

func TestLoginRejectedIsInvalidCredentials(t *testing.T) {
	var calls []recordedCall
	srv := newServer(t, `{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Invalid params.","data":"Incorrect user name or password or account is temporarily blocked."}}`, &calls)
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL}, srv.Client(), nil, nil)
	_, err := client.Login(context.Background(), "Admin", "wrong")

	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))
	assert.Equal(t, "Incorrect user name or password or account is temporarily blocked.", appErrors.FromError(err).Message)
	var remote *RemoteError
	assert.True(t, errors.As(err, &remote))
	assert.Equal(t, -32602, remote.Code)
}

func TestLogoutUsesSessionToken(t *testing.T) {
	var calls []recordedCall
	srv := newServer(t, `{"jsonrpc":"2.0","id":1,"result":true}`, &calls)
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL, APIToken: "secret"}, srv.Client(), nil, nil)
	require.NoError(t, client.Logout(context.Background(), "abc"))
	assert.Equal(t, "Bearer abc", calls[0].Auth)
	assert.Equal(t, "user.logout", calls[0].Method)
}
