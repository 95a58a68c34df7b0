package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/volatiletech/null/v8"
)

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) Login(ctx context.Context, args []string) error {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		var err error
		if username, err = a.ask("Username"); err != nil {
			return err
		}
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	if err := a.authService.Login(ctx, username, password); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", a.store.User.User.Username)
	return nil
}

func (a *App) CASLogin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("cas")
	}
	if err := a.authService.CASLogin(ctx, args[0]); err != nil {
		return err
	}
	if u := a.store.User.NewUser; u != nil {
		fmt.Fprintf(a.out, "No account yet for %s, finish with 'register'\n", u.Username)
		return nil
	}
	if !a.isLoggedIn() {
		return common.ErrNotValidated
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", a.store.User.User.Username)
	return nil
}

// Register asks for the account fields, then the associations and groups
// the account is linked to.
func (a *App) Register(ctx context.Context, _ []string) error {
	var user models.UserRegister
	cas := a.store.User.NewUser
	if cas != nil {
		user.Username = cas.Username
		user.FirstName = cas.FirstName
		user.LastName = cas.LastName
		user.Email = cas.Email
	}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Username", &user.Username},
		{"First name", &user.FirstName},
		{"Last name", &user.LastName},
		{"E-mail", &user.Email},
		{"Phone (optional)", &user.Phone},
	}
	for _, f := range fields {
		if *f.dst != "" {
			continue
		}
		v, err := a.ask(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if err := a.store.Association.GetAssociationNames(ctx, true, true); err != nil {
		return err
	}
	names := make([]models.SelectLabel, 0, len(a.store.Association.AssociationNames))
	for _, n := range a.store.Association.AssociationNames {
		names = append(names, models.SelectLabel{Value: n.ID, Label: n.Name})
	}
	a.printLabels(names)
	ids, err := a.askIDs("Associations you belong to (ids, comma separated, optional)")
	if err != nil {
		return err
	}
	a.userAssociations.NewAssociations = nil
	for _, id := range ids {
		a.userAssociations.AddAssociation()
		a.userAssociations.NewAssociations[len(a.userAssociations.NewAssociations)-1].ID = null.IntFrom(id)
	}
	memberships := a.userAssociations.UpdateRegisterRoleInAssociation()

	if err := a.userGroups.GetGroups(ctx); err != nil {
		return err
	}
	a.printLabels(a.userGroups.GroupList())
	groups, err := a.askIDs("Groups (ids, comma separated)")
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		if g := a.userGroups.StudentGroup(); g != nil {
			groups = []int{g.ID}
		}
	}

	if err := a.authService.Register(ctx, user, memberships, groups); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created. An administrator has to validate it before you can sign in.")
	return nil
}

func (a *App) askIDs(prompt string) ([]int, error) {
	v, err := a.ask(prompt)
	if err != nil {
		return nil, err
	}
	return parseIDs(v)
}

func (a *App) PasswordReset(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("password-reset")
	}
	if err := a.authService.PasswordReset(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "If the address is known, a reset link was sent to it.")
	return nil
}

func (a *App) PasswordResetConfirm(ctx context.Context, args []string) error {
	kv, _ := parseKeyValues(args)
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	if err := a.authService.PasswordResetConfirm(ctx, kv["uid"], kv["token"], password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed, you can sign in.")
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u := a.store.User.User
	fmt.Fprintf(a.out, "%s (%s)\n", u.FullName(), u.Username)
	fmt.Fprintf(a.out, "E-mail: %s\n", u.Email)
	if u.IsStaff {
		fmt.Fprintln(a.out, "Staff member")
	}

	if err := a.userGroups.GetGroups(ctx); err != nil {
		a.logger.Debug(ctx, "groups unavailable", "error", err)
	}
	groups := make([]string, 0, len(u.Groups))
	for _, g := range u.Groups {
		label := fmt.Sprintf("#%d", g.GroupID)
		for _, known := range a.store.User.Groups {
			if known.ID == g.GroupID {
				label = known.Name
			}
		}
		groups = append(groups, label)
	}
	fmt.Fprintf(a.out, "Groups: %s\n", orDash(strings.Join(groups, ", ")))

	names := make([]string, 0, len(u.Associations))
	for _, as := range u.Associations {
		names = append(names, as.Name)
	}
	fmt.Fprintf(a.out, "Associations: %s\n", orDash(strings.Join(names, ", ")))
	return nil
}

func (a *App) printLabels(labels []models.SelectLabel) {
	rows := make([][]string, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, []string{fmt.Sprint(l.Value), l.Label})
	}
	_ = table(a.out, []string{"ID", "NAME"}, rows)
}
