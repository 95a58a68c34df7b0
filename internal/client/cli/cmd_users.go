package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/router"
	"github.com/dmitrijs2005/plana/internal/client/store"
	"github.com/dmitrijs2005/plana/internal/common"
)

func (a *App) Users(ctx context.Context, args []string) error {
	status := store.StatusAll
	if len(args) > 0 {
		status = args[0]
	}

	var err error
	switch status {
	case store.StatusAll:
		err = a.users.GetUsers(ctx, router.ManageUsers)
	case store.StatusUnvalidated:
		err = a.users.GetUsers(ctx, router.ValidateUsers)
	case store.StatusValidated:
		err = a.store.UserManager.GetUsers(ctx, status)
	default:
		return a.usage("users")
	}
	if err != nil {
		return err
	}

	users := a.store.UserManager.Users
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No user")
		return nil
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{strconv.Itoa(u.ID), u.FullName(), u.Email, yesNo(u.IsValidatedByAdmin)})
	}
	return table(a.out, []string{"ID", "NAME", "E-MAIL", "VALIDATED"}, rows)
}

func (a *App) loadManagedUser(ctx context.Context, args []string, name string) (*models.User, error) {
	if len(args) == 0 {
		return nil, a.usage(name)
	}
	if err := a.users.GetUser(ctx, args[0]); err != nil {
		return nil, err
	}
	return a.store.UserManager.User, nil
}

func (a *App) User(ctx context.Context, args []string) error {
	u, err := a.loadManagedUser(ctx, args, "user")
	if err != nil {
		return err
	}
	if err := a.userGroups.GetGroups(ctx); err != nil {
		return err
	}
	if err := a.userAssociations.GetUserAssociations(ctx, u.ID, true); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%s)\n", u.FullName(), u.Username)
	fmt.Fprintf(a.out, "E-mail: %s\n", u.Email)
	fmt.Fprintf(a.out, "Phone: %s\n", orDash(u.Phone))
	fmt.Fprintf(a.out, "CAS account: %s\n", yesNo(u.IsCas))
	fmt.Fprintf(a.out, "Validated: %s\n", yesNo(u.IsValidatedByAdmin))
	fmt.Fprintf(a.out, "Groups: %s\n", orDash(a.groupNames(a.store.UserManager.UserGroups())))
	if c := a.store.UserManager.UserCommissions(); len(c) > 0 {
		fmt.Fprintf(a.out, "Commissions: %v\n", c)
	}

	a.userAssociations.InitUserAssociations(true)
	return a.printRoles(a.userAssociations.UserAssociations)
}

func (a *App) groupNames(ids []int) string {
	labels := a.userGroups.GroupList()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name := "#" + strconv.Itoa(id)
		for _, l := range labels {
			if l.Value == id {
				name = l.Label
			}
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// ValidateUser validates the account, optionally replacing its groups and
// commissions first. Omitted lists keep the current ones.
func (a *App) ValidateUser(ctx context.Context, args []string) error {
	u, err := a.loadManagedUser(ctx, args, "user-validate")
	if err != nil {
		return err
	}
	if err := a.userGroups.GetGroups(ctx); err != nil {
		return err
	}
	a.userGroups.InitNewGroups()

	kv, _ := parseKeyValues(args[1:])
	if v, ok := kv["groups"]; ok {
		if a.userGroups.NewGroups, err = parseIDs(v); err != nil {
			return err
		}
	}
	if v, ok := kv["commissions"]; ok {
		if a.userGroups.NewCommissions, err = parseIDs(v); err != nil {
			return err
		}
		if len(a.userGroups.NewCommissions) > 0 && a.userGroups.CommissionGroup() == nil {
			return fmt.Errorf("%w: commission group not found", common.ErrValidation)
		}
	}

	if err := a.users.ValidateUser(ctx, a.userGroups.NewGroups, a.userGroups.NewCommissions); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s validated\n", u.Username)
	return nil
}

func (a *App) DeleteUser(ctx context.Context, args []string) error {
	u, err := a.loadManagedUser(ctx, args, "user-delete")
	if err != nil {
		return err
	}
	name := u.Username
	if err := a.users.DeleteUser(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s deleted\n", name)
	return nil
}

func (a *App) UnvalidatedMembers(ctx context.Context, _ []string) error {
	if err := a.userAssociations.GetUnvalidatedAssociationUsers(ctx); err != nil {
		return err
	}
	return a.printMembers(a.userAssociations.AssociationMembers, true)
}

