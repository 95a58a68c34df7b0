package store

import (
	"context"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/client/clienttest"
	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/volatiletech/null/v8"
)

type memTokens struct {
	t       client.Tokens
	cleared bool
}

func (m *memTokens) Tokens(context.Context) (client.Tokens, error) { return m.t, nil }

func (m *memTokens) Save(_ context.Context, t client.Tokens) error {
	if t.Access != "" {
		m.t.Access = t.Access
	}
	if t.Refresh != "" {
		m.t.Refresh = t.Refresh
	}
	return nil
}

func (m *memTokens) Clear(context.Context) error {
	m.t = client.Tokens{}
	m.cleared = true
	return nil
}

func newTestStore() (*Store, *clienttest.Fake, *memTokens) {
	fake := clienttest.New()
	tokens := &memTokens{}
	api := &client.API{Public: fake, Authenticated: fake, Tokens: tokens}
	return New(api, "http://localhost:3000/cas-register", nil), fake, tokens
}

func manager() *models.User {
	return &models.User{
		ID:                 1,
		Username:           "manager@unistra.fr",
		FirstName:          "Manager",
		LastName:           "Unistra",
		Email:              "manager@unistra.fr",
		IsValidatedByAdmin: true,
		Permissions:        []string{PermChangeAssociationUsers},
		Groups: []models.UserGroup{
			{UserID: 1, GroupID: 2, InstitutionID: null.IntFrom(2)},
			{UserID: 1, GroupID: 2, InstitutionID: null.IntFrom(3)},
		},
	}
}

func student() *models.User {
	return &models.User{
		ID:                 5,
		Username:           "student@unistra.fr",
		FirstName:          "john",
		LastName:           "Doe",
		IsValidatedByAdmin: true,
		Groups:             []models.UserGroup{{UserID: 5, GroupID: 6}},
		Associations:       []models.AssociationName{{ID: 1, Name: "PLANA"}, {ID: 2, Name: "Octant"}},
	}
}

var testGroups = []models.Group{
	{ID: 2, Name: "Gestionnaire SVU"},
	{ID: 6, Name: "Étudiant", IsPublic: true},
	{ID: 4, Name: "Commission"},
}
