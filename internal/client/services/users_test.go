package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/router"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func managedUser() *models.User {
	return &models.User{
		ID:       7,
		Username: "commission@unistra.fr",
		Groups: []models.UserGroup{
			{UserID: 7, GroupID: 6},
			{UserID: 7, GroupID: 4, CommissionID: null.IntFrom(1)},
		},
	}
}

func TestUserService_ValidateUser_SameGroupsOnlyValidates(t *testing.T) {
	e := newEnv()
	e.store.User.Groups = groups
	e.store.UserManager.User = managedUser()
	s := NewUserService(e.store, nil)

	require.NoError(t, s.ValidateUser(context.Background(), []int{4, 6}, []int{1}))

	assert.Equal(t, []string{"PATCH /users/7"}, e.fake.Paths())
	assert.Equal(t, map[string]any{"isValidatedByAdmin": true}, e.fake.BodyJSON(0))
}

func TestUserService_ValidateUser_ChangedGroups(t *testing.T) {
	e := newEnv()
	e.store.User.Groups = groups
	e.store.UserManager.User = managedUser()
	s := NewUserService(e.store, nil)

	require.NoError(t, s.ValidateUser(context.Background(), []int{2, 4}, []int{1}))

	assert.Equal(t, []string{
		"POST /users/groups/",
		"DELETE /users/7/groups/6",
		"PATCH /users/7",
	}, e.fake.Paths())
	assert.Equal(t, float64(2), e.fake.BodyJSON(0)["group"])
	assert.Equal(t, 1, e.fake.Count("PATCH", "/users/7"))
}

func TestUserService_ValidateUser_ChangedCommissions(t *testing.T) {
	e := newEnv()
	e.store.User.Groups = groups
	e.store.UserManager.User = managedUser()
	s := NewUserService(e.store, nil)

	require.NoError(t, s.ValidateUser(context.Background(), []int{6, 4}, []int{3}))

	assert.Equal(t, []string{
		"POST /users/groups/",
		"DELETE /users/7/groups/4/commissions/1",
		"PATCH /users/7",
	}, e.fake.Paths())
	assert.Equal(t, float64(3), e.fake.BodyJSON(0)["commission"])
}

func TestUserService_ValidateUser_NoUser(t *testing.T) {
	e := newEnv()
	s := NewUserService(e.store, nil)
	require.ErrorIs(t, s.ValidateUser(context.Background(), nil, nil), common.ErrorNotFound)
	assert.Empty(t, e.fake.Calls)
}

func TestUserService_GetUsers(t *testing.T) {
	e := newEnv()
	e.store.User.User = staffUser()
	e.fake.On("GET", "/users/?institutions=2,3", []models.User{*studentUser(), *managedUser()}).
		On("GET", "/users/?institutions=2,3&is_validated_by_admin=false", []models.User{*managedUser()})
	s := NewUserService(e.store, nil)
	ctx := context.Background()

	require.NoError(t, s.GetUsers(ctx, router.ManageUsers))
	assert.Len(t, e.store.UserManager.Users, 2)

	require.NoError(t, s.GetUsers(ctx, router.ValidateUsers))
	assert.Len(t, e.store.UserManager.Users, 1)

	require.ErrorIs(t, s.GetUsers(ctx, router.Dashboard), common.ErrorNotFound)
}

func TestUserService_GetUserAndDelete(t *testing.T) {
	e := newEnv()
	e.fake.On("GET", "/users/7", managedUser())
	s := NewUserService(e.store, nil)
	ctx := context.Background()

	require.ErrorIs(t, s.GetUser(ctx, "seven"), common.ErrValidation)

	require.NoError(t, s.GetUser(ctx, "7"))
	require.NotNil(t, e.store.UserManager.User)
	assert.Equal(t, "commission@unistra.fr", e.store.UserManager.User.Username)

	require.NoError(t, s.DeleteUser(ctx))
	assert.Equal(t, 1, e.fake.Count("DELETE", "/users/7"))
	assert.Nil(t, e.store.UserManager.User)
}

func TestUserGroupService(t *testing.T) {
	e := newEnv()
	e.fake.On("GET", "/groups/", groups)
	s := NewUserGroupService(e.store)

	require.NoError(t, s.GetGroups(context.Background()))
	assert.Len(t, s.GroupList(), 3)
	require.NotNil(t, s.StudentGroup())
	assert.Equal(t, 6, s.StudentGroup().ID)
	assert.Equal(t, 4, s.CommissionGroup().ID)

	e.store.UserManager.User = managedUser()
	s.InitNewGroups()
	assert.Equal(t, []int{6, 4}, s.NewGroups)
	assert.Equal(t, []int{1}, s.NewCommissions)
}
