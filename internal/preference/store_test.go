package preference

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDefaultsAndOverwrite(t *testing.T) {
	ctx := context.Background()
	store := Bind(NewMemoryBackend(), "1")

	got, err := store.Get(ctx, "web.user.sort", "username")
	require.NoError(t, err)
	assert.Equal(t, "username", got)

	require.NoError(t, store.Set(ctx, "web.user.sort", "surname", TypeStr))
	require.NoError(t, store.Set(ctx, "web.user.filter_name", "", TypeStr))

	got, err = store.Get(ctx, "web.user.sort", "username")
	require.NoError(t, err)
	assert.Equal(t, "surname", got)

	got, err = store.Get(ctx, "web.user.filter_name", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "", got, "an explicitly stored empty value is not the default")
}

func TestStoreListReplacedAtomically(t *testing.T) {
	ctx := context.Background()
	store := Bind(NewMemoryBackend(), "1")

	require.NoError(t, store.SetList(ctx, "web.user.filter_roles", []string{"1", "2", "3"}, TypeID))
	require.NoError(t, store.SetList(ctx, "web.user.filter_roles", []string{"7"}, TypeID))

	got, err := store.GetList(ctx, "web.user.filter_roles", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, got)

	require.NoError(t, store.SetList(ctx, "web.user.filter_roles", nil, TypeID))
	got, err = store.GetList(ctx, "web.user.filter_roles", []string{})
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}

func TestStoreDeleteRestoresDefault(t *testing.T) {
	ctx := context.Background()
	store := Bind(NewMemoryBackend(), "1")

	require.NoError(t, store.Set(ctx, "web.user.filter_source", "2", TypeStr))
	require.NoError(t, store.SetList(ctx, "web.user.filter_usrgrpids", []string{"7", "8"}, TypeID))

	require.NoError(t, store.Delete(ctx, "web.user.filter_source"))
	require.NoError(t, store.DeleteList(ctx, "web.user.filter_usrgrpids"))

	source, err := store.Get(ctx, "web.user.filter_source", "")
	require.NoError(t, err)
	assert.Equal(t, "", source)

	groups, err := store.GetList(ctx, "web.user.filter_usrgrpids", []string{"default"})
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, groups)
}

func TestStoresAreScopedByUser(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, Bind(backend, "1").Set(ctx, "web.user.sort", "name", TypeStr))

	got, err := Bind(backend, "2").Get(ctx, "web.user.sort", "username")
	require.NoError(t, err)
	assert.Equal(t, "username", got)
}

type failingBackend struct{ MemoryBackend }

func (*failingBackend) Get(context.Context, string, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func TestStoreWrapsBackendErrors(t *testing.T) {
	_, err := Bind(&failingBackend{}, "1").Get(context.Background(), "web.user.sort", "username")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "web.user.sort")
}

func TestReadOnlyStoreKeepsSavedValues(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	store := Bind(backend, "1")
	require.NoError(t, store.Set(ctx, "web.user.sort", "surname", TypeStr))
	require.NoError(t, store.SetList(ctx, "web.user.filter_roles", []string{"3"}, TypeID))

	view := ReadOnly(store)
	require.NoError(t, view.Set(ctx, "web.user.sort", "name", TypeStr))
	require.NoError(t, view.SetList(ctx, "web.user.filter_roles", []string{"1"}, TypeID))
	require.NoError(t, view.Delete(ctx, "web.user.sort"))
	require.NoError(t, view.DeleteList(ctx, "web.user.filter_roles"))

	got, err := view.Get(ctx, "web.user.sort", "username")
	require.NoError(t, err)
	assert.Equal(t, "surname", got)
	roles, err := store.GetList(ctx, "web.user.filter_roles", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, roles)
}
