package service

import (
	"context"
	"encoding/json"

	"github.com/noah-isme/monitoring-admin-api/internal/gateway"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
)

type gatewayCall struct {
	entity   gateway.Entity
	criteria gateway.Criteria
}

// fakeGateway answers each entity with canned JSON, or with reply when set.
type fakeGateway struct {
	results map[gateway.Entity]string
	errs    map[gateway.Entity]error
	reply   func(entity gateway.Entity, criteria gateway.Criteria) string
	calls   []gatewayCall

	loginUser *models.APILoginUser
	loginErr  error
	logoutErr error
	loggedOut []string
}

func (f *fakeGateway) Query(_ context.Context, entity gateway.Entity, criteria gateway.Criteria, dest interface{}) error {
	f.calls = append(f.calls, gatewayCall{entity: entity, criteria: criteria})
	if err := f.errs[entity]; err != nil {
		return err
	}
	raw := f.results[entity]
	if f.reply != nil {
		raw = f.reply(entity, criteria)
	}
	if raw == "" {
		raw = "[]"
	}
	return json.Unmarshal([]byte(raw), dest)
}

func (f *fakeGateway) Login(context.Context, string, string) (*models.APILoginUser, error) {
	return f.loginUser, f.loginErr
}

func (f *fakeGateway) Logout(_ context.Context, sessionID string) error {
	f.loggedOut = append(f.loggedOut, sessionID)
	return f.logoutErr
}

func (f *fakeGateway) callsTo(entity gateway.Entity) []gatewayCall {
	var out []gatewayCall
	for _, c := range f.calls {
		if c.entity == entity {
			out = append(out, c)
		}
	}
	return out
}
