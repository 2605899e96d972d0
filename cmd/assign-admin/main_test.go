package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"recruitfunnel/site/models"
	"recruitfunnel/site/store"
)

type fakeUsers struct {
	roles   map[string]string
	created map[string][]byte
}

func newFakeUsers(existing ...string) *fakeUsers {
	f := &fakeUsers{roles: map[string]string{}, created: map[string][]byte{}}
	for _, e := range existing {
		f.roles[e] = models.RoleViewer
	}
	return f
}

func (f *fakeUsers) SetRole(_ context.Context, email, role string) error {
	if _, ok := f.roles[email]; !ok {
		return fmt.Errorf("user with email '%s': %w", email, store.ErrNotFound)
	}
	f.roles[email] = role
	return nil
}

func (f *fakeUsers) CreateUser(_ context.Context, email string, hashed []byte, role string) (*models.User, error) {
	f.roles[email] = role
	f.created[email] = hashed
	return &models.User{ID: len(f.created), Email: email, Role: role}, nil
}

func TestAssignGrantsAdmin(t *testing.T) {
	users := newFakeUsers("ops@example.com")
	var out bytes.Buffer

	err := assign(context.Background(), users, options{email: " Ops@Example.com ", role: models.RoleAdmin}, &out)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, users.roles["ops@example.com"])
	assert.Contains(t, out.String(), "ops@example.com is now admin")
}

func TestAssignRevoke(t *testing.T) {
	users := newFakeUsers("ops@example.com")
	users.roles["ops@example.com"] = models.RoleAdmin

	err := assign(context.Background(), users, options{email: "ops@example.com", role: models.RoleAdmin, revoke: true}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, models.RoleViewer, users.roles["ops@example.com"])
}

func TestAssignUnknownUser(t *testing.T) {
	err := assign(context.Background(), newFakeUsers(), options{email: "ghost@example.com", role: models.RoleAdmin}, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAssignCreatesUserWithPassword(t *testing.T) {
	users := newFakeUsers()
	var out bytes.Buffer

	err := assign(context.Background(), users, options{email: "new@example.com", role: models.RoleAdmin, password: "s3cret-pass"}, &out)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, users.roles["new@example.com"])
	assert.NoError(t, bcrypt.CompareHashAndPassword(users.created["new@example.com"], []byte("s3cret-pass")))
	assert.Contains(t, out.String(), "created new@example.com")
}

func TestAssignRejectsUnknownRole(t *testing.T) {
	err := assign(context.Background(), newFakeUsers("a@example.com"), options{email: "a@example.com", role: "owner"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRootCmdRequiresEmail(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
