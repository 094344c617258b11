// Package preference persists per-user console settings such as list filters, sort
// order and pager position.
package preference

import (
	"context"
	"fmt"
)

// ValueType tags a stored value for serialisation.
type ValueType int

const (
	TypeID  ValueType = 1
	TypeInt ValueType = 2
	TypeStr ValueType = 3
)

func (t ValueType) String() string {
	switch t {
	case TypeID:
		return "id"
	case TypeInt:
		return "int"
	case TypeStr:
		return "str"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Backend persists preferences for every user. Scalars and lists share the key space:
// a scalar is a one-element list stored at position zero.
type Backend interface {
	Get(ctx context.Context, userID, key string) (value string, found bool, err error)
	GetList(ctx context.Context, userID, key string) ([]string, error)
	Set(ctx context.Context, userID, key, value string, typ ValueType) error
	SetList(ctx context.Context, userID, key string, values []string, typ ValueType) error
	Delete(ctx context.Context, userID, key string) error
	DeleteList(ctx context.Context, userID, key string) error
}

// Store is the preference view of a single user.
type Store interface {
	Get(ctx context.Context, key, def string) (string, error)
	GetList(ctx context.Context, key string, def []string) ([]string, error)
	Set(ctx context.Context, key, value string, typ ValueType) error
	SetList(ctx context.Context, key string, values []string, typ ValueType) error
	Delete(ctx context.Context, key string) error
	DeleteList(ctx context.Context, key string) error
}

type userStore struct {
	backend Backend
	userID  string
}

// Bind returns the Store of userID on top of backend.
func Bind(backend Backend, userID string) Store {
	return &userStore{backend: backend, userID: userID}
}

func (s *userStore) Get(ctx context.Context, key, def string) (string, error) {
	value, found, err := s.backend.Get(ctx, s.userID, key)
	if err != nil {
		return "", fmt.Errorf("get preference %s: %w", key, err)
	}
	if !found {
		return def, nil
	}
	return value, nil
}

func (s *userStore) GetList(ctx context.Context, key string, def []string) ([]string, error) {
	values, err := s.backend.GetList(ctx, s.userID, key)
	if err != nil {
		return nil, fmt.Errorf("get preference list %s: %w", key, err)
	}
	if len(values) == 0 {
		return def, nil
	}
	return values, nil
}

func (s *userStore) Set(ctx context.Context, key, value string, typ ValueType) error {
	if err := s.backend.Set(ctx, s.userID, key, value, typ); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

func (s *userStore) SetList(ctx context.Context, key string, values []string, typ ValueType) error {
	if err := s.backend.SetList(ctx, s.userID, key, values, typ); err != nil {
		return fmt.Errorf("set preference list %s: %w", key, err)
	}
	return nil
}

func (s *userStore) Delete(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, s.userID, key); err != nil {
		return fmt.Errorf("delete preference %s: %w", key, err)
	}
	return nil
}

func (s *userStore) DeleteList(ctx context.Context, key string) error {
	if err := s.backend.DeleteList(ctx, s.userID, key); err != nil {
		return fmt.Errorf("delete preference list %s: %w", key, err)
	}
	return nil
}

type readOnlyStore struct {
	Store
}

// ReadOnly returns a view of s whose writes succeed without changing anything.
func ReadOnly(s Store) Store {
	return readOnlyStore{Store: s}
}

func (readOnlyStore) Set(context.Context, string, string, ValueType) error       { return nil }
func (readOnlyStore) SetList(context.Context, string, []string, ValueType) error { return nil }
func (readOnlyStore) Delete(context.Context, string) error                       { return nil }
func (readOnlyStore) DeleteList(context.Context, string) error                   { return nil }
