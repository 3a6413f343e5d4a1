package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Search(t *testing.T) {
	users := newFakeUserRepo("alice", "alicia", "bob")
	svc := NewUserService(users)

	found, err := svc.Search(context.Background(), "ali")
	require.NoError(t, err)

	names := make([]string, 0, len(found))
	for _, u := range found {
		names = append(names, u.Username)
	}
	assert.ElementsMatch(t, []string{"alice", "alicia"}, names)
}

func TestUserService_ContactsUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo("alice"))

	_, err := svc.Contacts(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ByID(t *testing.T) {
	users := newFakeUserRepo("alice")
	svc := NewUserService(users)

	details, err := svc.ByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", details.Username)

	_, err = svc.ByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	users := newFakeUserRepo("alice", "bob")
	svc := NewUserService(users)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
