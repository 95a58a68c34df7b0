package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/services"
	"github.com/dmitrijs2005/plana/internal/common"
)

var roleNames = map[string]string{
	"president":      models.RolePresident,
	"secretary":      models.RoleSecretary,
	"treasurer":      models.RoleTreasurer,
	"vice-president": models.RoleVicePresident,
	"member":         models.RoleMember,
}

// Roles lists the memberships of the signed-in user, or of user=<id> for
// staff, and applies the role edits given as arguments.
func (a *App) Roles(ctx context.Context, args []string) error {
	kv, bare := parseKeyValues(args)
	if len(bare) != 0 {
		return a.usage("roles")
	}

	editedByStaff := false
	if uid, ok := kv["user"]; ok {
		delete(kv, "user")
		editedByStaff = true
		if err := a.users.GetUser(ctx, uid); err != nil {
			return err
		}
		if err := a.userAssociations.GetUserAssociations(ctx, a.store.UserManager.User.ID, true); err != nil {
			return err
		}
	} else if err := a.userAssociations.GetUserAssociations(ctx, a.store.User.User.ID, false); err != nil {
		return err
	}
	a.userAssociations.InitUserAssociations(editedByStaff)

	if len(kv) > 0 {
		if err := applyRoleEdits(a.userAssociations.UserAssociations, kv); err != nil {
			return err
		}
		if err := a.userAssociations.UpdateUserAssociations(ctx, editedByStaff); err != nil {
			return err
		}
	}
	return a.printRoles(a.userAssociations.UserAssociations)
}

func applyRoleEdits(rows []models.AssociationRole, kv map[string]string) error {
	find := func(key string) (*models.AssociationRole, error) {
		id, err := parseID(key)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			if rows[i].ID.Valid && rows[i].ID.Int == id {
				return &rows[i], nil
			}
		}
		return nil, fmt.Errorf("membership of association %d: %w", id, common.ErrorNotFound)
	}

	for k, v := range kv {
		if assoc, ok := strings.CutPrefix(k, "preside:"); ok {
			row, err := find(assoc)
			if err != nil {
				return err
			}
			if row.CanBePresident, err = parseBool(v); err != nil {
				return err
			}
			continue
		}

		row, err := find(k)
		if err != nil {
			return err
		}
		if v == "delete" {
			row.DeleteAssociation = true
			continue
		}
		role, ok := roleNames[strings.ToLower(v)]
		if !ok {
			return fmt.Errorf("%w: unknown role %q", common.ErrValidation, v)
		}
		row.Role = role
	}
	return nil
}

func (a *App) printRoles(rows []models.AssociationRole) error {
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No membership")
		return nil
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			strconv.Itoa(r.ID.Int), r.Name, services.RoleLabel(r.Role),
			yesNo(r.CanBePresident), yesNo(r.IsValidatedByAdmin),
		})
	}
	return table(a.out, []string{"ASSOCIATION", "NAME", "ROLE", "CAN PRESIDE", "VALIDATED"}, out)
}
