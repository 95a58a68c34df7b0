package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/router"
	"github.com/dmitrijs2005/plana/internal/client/store"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/dmitrijs2005/plana/internal/logging"
)

// UserService runs the staff workflows on managed users.
type UserService struct {
	store  *store.Store
	logger logging.Logger
}

func NewUserService(st *store.Store, logger logging.Logger) *UserService {
	return &UserService{store: st, logger: logging.OrNop(logger)}
}

// GetUsers loads the users listed by route.
func (s *UserService) GetUsers(ctx context.Context, route router.Name) error {
	switch route {
	case router.ManageUsers:
		return s.store.UserManager.GetUsers(ctx, store.StatusAll)
	case router.ValidateUsers:
		return s.store.UserManager.GetUsers(ctx, store.StatusUnvalidated)
	}
	return fmt.Errorf("no user listing for route %q: %w", route, common.ErrorNotFound)
}

// GetUser loads the managed user from an id taken from user input.
func (s *UserService) GetUser(ctx context.Context, id string) error {
	n, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("%w: user id %q is not a number", common.ErrValidation, id)
	}
	return s.store.UserManager.GetUserDetail(ctx, n)
}

// ValidateUser aligns the managed user's groups and commissions with the
// edited lists, then marks the user validated.
func (s *UserService) ValidateUser(ctx context.Context, newGroups, newCommissions []int) error {
	um := s.store.UserManager
	if um.User == nil {
		return fmt.Errorf("validate user: %w", common.ErrorNotFound)
	}

	oldGroups := um.UserGroups()
	oldCommissions := um.UserCommissions()

	if !common.ArraysAreEqual(newGroups, oldGroups) || !common.ArraysAreEqual(newCommissions, oldCommissions) {
		err := um.UpdateUserGroups(ctx,
			common.Difference(newGroups, oldGroups),
			common.Difference(newCommissions, oldCommissions))
		if err != nil {
			return err
		}
		err = um.DeleteUserGroups(ctx,
			common.Difference(oldGroups, newGroups),
			common.Difference(oldCommissions, newCommissions))
		if err != nil {
			return err
		}
	}

	if err := um.ValidateUser(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "user validated", "id", um.User.ID)
	return nil
}

// DeleteUser removes the managed user and forgets it.
func (s *UserService) DeleteUser(ctx context.Context) error {
	if err := s.store.UserManager.DeleteUser(ctx); err != nil {
		return err
	}
	s.store.UserManager.User = nil
	return nil
}

// UserGroupService keeps the group edit buffer of the managed user.
type UserGroupService struct {
	store *store.Store

	NewGroups      []int
	NewCommissions []int
}

func NewUserGroupService(st *store.Store) *UserGroupService {
	return &UserGroupService{store: st}
}

func (s *UserGroupService) GetGroups(ctx context.Context) error {
	return s.store.User.GetGroups(ctx)
}

func (s *UserGroupService) GroupList() []models.SelectLabel {
	return s.store.User.GroupList()
}

func (s *UserGroupService) StudentGroup() *models.Group {
	return s.store.User.StudentGroup()
}

func (s *UserGroupService) CommissionGroup() *models.Group {
	return s.store.User.CommissionGroup()
}

// InitNewGroups seeds the buffer with the managed user's current groups.
func (s *UserGroupService) InitNewGroups() {
	s.NewGroups = s.store.UserManager.UserGroups()
	s.NewCommissions = s.store.UserManager.UserCommissions()
}
