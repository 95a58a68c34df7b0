package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/dmitrijs2005/plana/internal/logging"
	"github.com/volatiletech/null/v8"
)

// Permission codenames checked by the client.
const (
	PermChangeAssociationUsers = "change_associationusers"
	PermChangeUserMisc         = "change_user_misc"
)

// User listing filters.
const (
	StatusAll         = "all"
	StatusValidated   = "validated"
	StatusUnvalidated = "unvalidated"
)

// UserManagerStore holds the users a manager works on.
type UserManagerStore struct {
	api    *client.API
	self   *UserStore
	logger logging.Logger

	User             *models.User
	Users            []models.User
	UserAssociations []models.AssociationUserDetail
}

func NewUserManagerStore(api *client.API, self *UserStore, logger logging.Logger) *UserManagerStore {
	return &UserManagerStore{api: api, self: self, logger: logging.OrNop(logger)}
}

func (s *UserManagerStore) reset() {
	s.User = nil
	s.Users = nil
	s.UserAssociations = nil
}

// UserNames offers the loaded users as choices labelled "First Last".
func (s *UserManagerStore) UserNames() []models.SelectLabel {
	out := make([]models.SelectLabel, 0, len(s.Users))
	for _, u := range s.Users {
		out = append(out, models.SelectLabel{Value: u.ID, Label: u.FullName()})
	}
	return out
}

// UserGroups lists the distinct group ids of the managed user.
func (s *UserManagerStore) UserGroups() []int {
	if s.User == nil {
		return nil
	}
	ids := make([]int, 0, len(s.User.Groups))
	for _, g := range s.User.Groups {
		ids = append(ids, g.GroupID)
	}
	return common.Unique(ids)
}

// UserCommissions lists the commission ids of the managed user's groups.
func (s *UserManagerStore) UserCommissions() []int {
	if s.User == nil {
		return nil
	}
	var ids []int
	for _, g := range s.User.Groups {
		if g.CommissionID.Valid && g.CommissionID.Int != 0 {
			ids = append(ids, g.CommissionID.Int)
		}
	}
	return ids
}

// UsersURL builds the listing URL for status ("all", "validated", "unvalidated").
// A trailing comma after the institution ids asks the API to include users
// without institution; only holders of change_user_misc may see them.
func (s *UserManagerStore) UsersURL(status string) string {
	var b strings.Builder
	b.WriteString("/users/?institutions=")

	if institutions := s.self.UserInstitutions(); len(institutions) != 0 {
		parts := make([]string, len(institutions))
		for i, id := range institutions {
			parts[i] = strconv.Itoa(id)
		}
		b.WriteString(strings.Join(parts, ","))
		if s.self.HasPerm(PermChangeUserMisc) {
			b.WriteString(",")
		}
	}

	switch status {
	case StatusValidated:
		b.WriteString("&is_validated_by_admin=true")
	case StatusUnvalidated:
		b.WriteString("&is_validated_by_admin=false")
	}
	return b.String()
}

// GetUsers loads users when the signed-in user may manage memberships;
// otherwise it leaves Users untouched.
func (s *UserManagerStore) GetUsers(ctx context.Context, status string) error {
	if !s.self.HasPerm(PermChangeAssociationUsers) {
		s.logger.Debug(ctx, "skip user listing, missing permission", "perm", PermChangeAssociationUsers)
		return nil
	}
	var users []models.User
	if err := s.api.Authenticated.Get(ctx, s.UsersURL(status), &users); err != nil {
		return err
	}
	s.Users = users
	return nil
}

func (s *UserManagerStore) GetUserDetail(ctx context.Context, id int) error {
	var u models.User
	if err := s.api.Authenticated.Get(ctx, fmt.Sprintf("/users/%d", id), &u); err != nil {
		return err
	}
	s.User = &u
	return nil
}

func (s *UserManagerStore) commissionGroupID() (int, bool) {
	if g := s.self.CommissionGroup(); g != nil {
		return g.ID, true
	}
	return 0, false
}

// UpdateUserGroups adds the managed user to groupsToAdd. The commission group
// is expanded into one link per commission of commissionsToUpdate, and
// commissions are linked even when the commission group itself is not new.
func (s *UserManagerStore) UpdateUserGroups(ctx context.Context, groupsToAdd, commissionsToUpdate []int) error {
	if s.User == nil {
		return common.ErrorNotFound
	}
	commissionGroup, hasCommissionGroup := s.commissionGroupID()

	post := func(group int, commission null.Int) error {
		link := models.UserGroupLink{Username: s.User.Username, Group: group, Commission: commission}
		return s.api.Authenticated.Post(ctx, "/users/groups/", link, nil)
	}

	addsCommissionGroup := false
	for _, group := range groupsToAdd {
		if hasCommissionGroup && group == commissionGroup {
			addsCommissionGroup = true
			for _, c := range commissionsToUpdate {
				if err := post(group, null.IntFrom(c)); err != nil {
					return err
				}
			}
			continue
		}
		if err := post(group, null.Int{}); err != nil {
			return err
		}
	}

	if hasCommissionGroup && !addsCommissionGroup {
		for _, c := range commissionsToUpdate {
			if err := post(commissionGroup, null.IntFrom(c)); err != nil {
				return err
			}
		}
	}
	return nil
}

// DeleteUserGroups removes the managed user from groupsToDelete. Removing the
// commission group removes every commission link of the user; commissions in
// commissionsToDelete are unlinked individually.
func (s *UserManagerStore) DeleteUserGroups(ctx context.Context, groupsToDelete, commissionsToDelete []int) error {
	if s.User == nil {
		return common.ErrorNotFound
	}
	commissionGroup, hasCommissionGroup := s.commissionGroupID()

	for _, group := range groupsToDelete {
		if !hasCommissionGroup || group != commissionGroup {
			if err := s.api.Authenticated.Delete(ctx, fmt.Sprintf("/users/%d/groups/%d", s.User.ID, group)); err != nil {
				return err
			}
			continue
		}
		for _, c := range s.UserCommissions() {
			if err := s.deleteCommissionLink(ctx, commissionGroup, c); err != nil {
				return err
			}
		}
	}

	if !hasCommissionGroup {
		return nil
	}
	for _, c := range commissionsToDelete {
		if err := s.deleteCommissionLink(ctx, commissionGroup, c); err != nil {
			return err
		}
	}
	return nil
}

func (s *UserManagerStore) deleteCommissionLink(ctx context.Context, group, commission int) error {
	return s.api.Authenticated.Delete(ctx, fmt.Sprintf("/users/%d/groups/%d/commissions/%d", s.User.ID, group, commission))
}

func (s *UserManagerStore) ValidateUser(ctx context.Context) error {
	if s.User == nil {
		return common.ErrorNotFound
	}
	return s.api.Authenticated.Patch(ctx, fmt.Sprintf("/users/%d", s.User.ID), map[string]bool{"isValidatedByAdmin": true}, nil)
}

func (s *UserManagerStore) DeleteUser(ctx context.Context) error {
	if s.User == nil {
		return common.ErrorNotFound
	}
	return s.api.Authenticated.Delete(ctx, fmt.Sprintf("/users/%d", s.User.ID))
}
