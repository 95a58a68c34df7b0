package store

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/logging"
)

// AssociationStore holds association listings and the association being viewed.
type AssociationStore struct {
	api    *client.API
	logger logging.Logger

	Association      *models.Association
	Associations     []models.AssociationList
	AssociationNames []models.AssociationName
	AssociationUsers []models.AssociationUser
}

func NewAssociationStore(api *client.API, logger logging.Logger) *AssociationStore {
	return &AssociationStore{api: api, logger: logging.OrNop(logger)}
}

func (s *AssociationStore) reset() {
	s.Association = nil
	s.Associations = nil
	s.AssociationNames = nil
	s.AssociationUsers = nil
}

func (s *AssociationStore) GetAssociations(ctx context.Context) error {
	var list []models.AssociationList
	if err := s.api.Authenticated.Get(ctx, "/associations/", &list); err != nil {
		return err
	}
	s.Associations = list
	return nil
}

func (s *AssociationStore) GetAssociationDetail(ctx context.Context, id int) error {
	var a models.Association
	if err := s.api.Authenticated.Get(ctx, fmt.Sprintf("/associations/%d", id), &a); err != nil {
		return err
	}
	s.Association = &a
	return nil
}

// GetAssociationNames loads id/name pairs. isPublic keeps public associations
// only; allowNewUsers keeps those accepting new members.
func (s *AssociationStore) GetAssociationNames(ctx context.Context, isPublic, allowNewUsers bool) error {
	q := url.Values{}
	if isPublic {
		q.Set("is_public", "true")
	}
	if allowNewUsers {
		q.Set("allow_new_users", "true")
	}
	path := "/associations/names"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var names []models.AssociationName
	if err := s.api.Public.Get(ctx, path, &names); err != nil {
		return err
	}
	s.AssociationNames = names
	return nil
}

// GetAssociationUsers loads the membership records of an association.
func (s *AssociationStore) GetAssociationUsers(ctx context.Context, associationID int) error {
	var users []models.AssociationUser
	if err := s.api.Authenticated.Get(ctx, fmt.Sprintf("/users/associations/%d", associationID), &users); err != nil {
		return err
	}
	s.AssociationUsers = users
	return nil
}
