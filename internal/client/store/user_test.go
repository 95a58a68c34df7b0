package store

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_IsAuth(t *testing.T) {
	s, _, _ := newTestStore()
	assert.False(t, s.User.IsAuth())
	s.User.User = student()
	assert.True(t, s.User.IsAuth())
}

func TestUserStore_UserNameFirstLetter(t *testing.T) {
	s, _, _ := newTestStore()
	assert.Empty(t, s.User.UserNameFirstLetter())

	s.User.User = student()
	assert.Equal(t, "J", s.User.UserNameFirstLetter())

	s.User.User.FirstName = "élodie"
	assert.Equal(t, "É", s.User.UserNameFirstLetter())
}

func TestUserStore_IsUniManager(t *testing.T) {
	s, _, _ := newTestStore()
	assert.False(t, s.User.IsUniManager())

	u := manager()
	u.IsStaff = true
	s.User.User = u
	assert.True(t, s.User.IsUniManager())
}

func TestUserStore_UserInstitutionsAndPerms(t *testing.T) {
	s, _, _ := newTestStore()
	u := manager()
	u.Groups = append(u.Groups, u.Groups[0])
	s.User.User = u

	assert.Equal(t, []int{2, 3}, s.User.UserInstitutions())
	assert.True(t, s.User.HasPerm(PermChangeAssociationUsers))
	assert.False(t, s.User.HasPerm(PermChangeUserMisc))
}

func TestUserStore_LogIn(t *testing.T) {
	s, fake, tokens := newTestStore()
	fake.On("POST", "/users/auth/login/", map[string]any{
		"access":  "a1",
		"refresh": "r1",
		"user":    student(),
	})

	err := s.User.LogIn(context.Background(), "/users/auth/login/", models.Credentials{Username: "student@unistra.fr", Password: "motdepasse"})
	require.NoError(t, err)

	require.Equal(t, 1, fake.Count("POST", "/users/auth/login/"))
	assert.Equal(t, map[string]any{"username": "student@unistra.fr", "password": "motdepasse"}, fake.BodyJSON(0))
	assert.Equal(t, student(), s.User.User)
	assert.Equal(t, "a1", tokens.t.Access)
	assert.Equal(t, "r1", tokens.t.Refresh)
}

func TestUserStore_LogIn_CamelCaseTokens(t *testing.T) {
	s, fake, tokens := newTestStore()
	fake.On("POST", "/users/auth/login/", map[string]any{"accessToken": "a2", "refreshToken": "r2", "user": student()})

	require.NoError(t, s.User.LogIn(context.Background(), "/users/auth/login/", models.Credentials{}))
	assert.Equal(t, "a2", tokens.t.Access)
	assert.Equal(t, "r2", tokens.t.Refresh)
}

func TestUserStore_LogIn_ReplacesPreviousTokens(t *testing.T) {
	s, fake, tokens := newTestStore()
	tokens.t = client.Tokens{Access: "old-access", Refresh: "old-refresh"}
	fake.On("POST", "/users/auth/login/", map[string]any{"access": "a3", "user": student()})

	require.NoError(t, s.User.LogIn(context.Background(), "/users/auth/login/", models.Credentials{}))
	assert.True(t, tokens.cleared)
	assert.Equal(t, client.Tokens{Access: "a3"}, tokens.t)
}

func TestUserStore_LogIn_NoToken(t *testing.T) {
	s, fake, _ := newTestStore()
	fake.On("POST", "/users/auth/login/", map[string]any{"user": student()})

	err := s.User.LogIn(context.Background(), "/users/auth/login/", models.Credentials{})
	require.ErrorIs(t, err, common.ErrInvalidToken)
	assert.Nil(t, s.User.User)
}

func TestUserStore_LoadCASUser(t *testing.T) {
	s, fake, tokens := newTestStore()
	fake.On("POST", CASLoginPath, map[string]any{"access": "a", "refresh": "r", "user": student()})

	require.NoError(t, s.User.LoadCASUser(context.Background(), "ticket"))

	assert.Equal(t, 1, len(fake.Calls))
	assert.Equal(t, map[string]any{"ticket": "ticket", "service": "http://localhost:3000/cas-register"}, fake.BodyJSON(0))
	assert.Equal(t, student(), s.User.NewUser)
	assert.True(t, s.User.IsCAS)
	assert.Nil(t, s.User.User)
	assert.Equal(t, "a", tokens.t.Access)
}

func TestUserStore_GetUser(t *testing.T) {
	s, fake, _ := newTestStore()
	fake.On("GET", UserPath, student())

	require.NoError(t, s.User.GetUser(context.Background()))
	assert.Equal(t, []string{"GET /users/auth/user/"}, fake.Paths())
	assert.Equal(t, student(), s.User.User)
}

func TestUserStore_CheckUserValidity(t *testing.T) {
	s, _, _ := newTestStore()

	s.User.User = student()
	s.User.CheckUserValidity()
	assert.NotNil(t, s.User.User)

	s.User.User.IsValidatedByAdmin = false
	s.User.CheckUserValidity()
	assert.Nil(t, s.User.User)
}

func TestUserStore_LogOut(t *testing.T) {
	s, _, tokens := newTestStore()
	tokens.t.Access, tokens.t.Refresh = "a", "r"
	s.User.User = student()

	require.NoError(t, s.User.LogOut(context.Background()))
	assert.Nil(t, s.User.User)
	assert.True(t, tokens.cleared)
	assert.Empty(t, tokens.t.Access)
}

func TestUserStore_Groups(t *testing.T) {
	s, fake, _ := newTestStore()
	fake.On("GET", GroupsPath, testGroups)

	require.NoError(t, s.User.GetGroups(context.Background()))
	assert.Equal(t, testGroups, s.User.Groups)
	assert.Equal(t, 1, fake.Count("GET", "/groups/"))

	assert.Equal(t, []models.SelectLabel{
		{Value: 2, Label: "Gestionnaire SVU"},
		{Value: 6, Label: "Étudiant"},
		{Value: 4, Label: "Commission"},
	}, s.User.GroupList())
	assert.Equal(t, &s.User.Groups[1], s.User.StudentGroup())
	assert.Equal(t, 4, s.User.CommissionGroup().ID)
}
