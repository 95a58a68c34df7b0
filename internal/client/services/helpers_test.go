package services

import (
	"context"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/client/clienttest"
	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/store"
	"github.com/volatiletech/null/v8"
)

// ---- helpers ----

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

type env struct {
	api    *client.API
	store  *store.Store
	fake   *clienttest.Fake
	tokens *memTokens
}

func newEnv() *env {
	fake := clienttest.New()
	tokens := &memTokens{}
	api := &client.API{Public: fake, Authenticated: fake, Tokens: tokens}
	return &env{api: api, store: store.New(api, "http://localhost:3000/cas-register", nil), fake: fake, tokens: tokens}
}

// ---- fixtures ----

func staffUser() *models.User {
	return &models.User{
		ID:                 1,
		Username:           "admin@unistra.fr",
		FirstName:          "admin",
		LastName:           "Unistra",
		IsValidatedByAdmin: true,
		IsStaff:            true,
		Permissions:        []string{store.PermChangeAssociationUsers},
		Groups: []models.UserGroup{
			{UserID: 1, GroupID: 2, InstitutionID: null.IntFrom(2)},
			{UserID: 1, GroupID: 2, InstitutionID: null.IntFrom(3)},
		},
	}
}

func studentUser() *models.User {
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

var groups = []models.Group{
	{ID: 2, Name: "Gestionnaire SVU"},
	{ID: 6, Name: "Étudiant", IsPublic: true},
	{ID: 4, Name: "Commission"},
}

func associationList() []models.AssociationList {
	return []models.AssociationList{
		{
			ID: 1, Name: "Association des étudiants du site Alsace", Acronym: "AESA",
			Institution:          models.Institution{ID: 1, Name: "Université de Strasbourg"},
			InstitutionComponent: models.InstitutionComponent{ID: 1, Name: "Faculté de droit"},
			ActivityField:        models.ActivityField{ID: 3, Name: "Culture"},
		},
		{
			ID: 2, Name: "Amicale des étudiants en chimie", Acronym: "AEC",
			Institution:          models.Institution{ID: 1, Name: "Université de Strasbourg"},
			InstitutionComponent: models.InstitutionComponent{ID: 2, Name: "Faculté de chimie"},
			ActivityField:        models.ActivityField{ID: 1, Name: "Sciences"},
		},
		{
			ID: 3, Name: "Club Aéronautique", Acronym: "AEC-AERO",
			Institution:          models.Institution{ID: 2, Name: "Université de Haute-Alsace"},
			InstitutionComponent: models.InstitutionComponent{ID: 3, Name: "IUT"},
			ActivityField:        models.ActivityField{ID: 1, Name: "Sciences"},
		},
	}
}

func storedAssociation() *models.Association {
	return &models.Association{
		ID:                   1,
		Name:                 "PLANA",
		Acronym:              null.StringFrom("PA"),
		Institution:          models.Institution{ID: 1, Name: "Université de Strasbourg"},
		InstitutionComponent: models.InstitutionComponent{ID: 2, Name: "Faculté de chimie"},
		ActivityField:        models.ActivityField{ID: 3, Name: "Culture"},
		Email:                null.StringFrom("plana@unistra.fr"),
		Siret:                null.Int64From(12345678901234),
		LastGoaDate:          null.StringFrom("2022-10-27 13:45:35.000000 +00:00"),
		SocialNetworks: []models.SocialNetwork{
			{Type: "Mastodon", Location: "https://mastodon.social/@plana"},
			{Type: "Instagram", Location: "https://instagram.com/plana"},
		},
	}
}
