package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/plana/internal/client/router"
	"github.com/dmitrijs2005/plana/internal/common"
)

// command binds a REPL word to the screen it belongs to. The guard decides
// whether the screen is reachable before run is called.
type command struct {
	route router.Name
	usage string
	run   func(ctx context.Context, args []string) error
	// query extracts route parameters checked by the guard.
	query func(args []string) map[string]string
}

func (a *App) commandTable() map[string]command {
	return map[string]command{
		"login":          {route: router.Login, usage: "login [username]", run: a.Login},
		"cas":            {route: router.CASRegister, usage: "cas <ticket>", run: a.CASLogin},
		"register":       {route: router.Registration, usage: "register", run: a.Register},
		"password-reset": {route: router.PasswordReset, usage: "password-reset <email>", run: a.PasswordReset},
		"password-reset-confirm": {
			route: router.PasswordResetConfirm,
			usage: "password-reset-confirm uid=<uid> token=<token>",
			run:   a.PasswordResetConfirm,
			query: func(args []string) map[string]string {
				kv, _ := parseKeyValues(args)
				return kv
			},
		},
		"logout": {route: router.Dashboard, usage: "logout", run: a.Logout},
		"whoami": {route: router.Dashboard, usage: "whoami", run: a.WhoAmI},

		"directory": {route: router.Directory, usage: "directory [query]", run: a.Directory},
		"advanced":  {route: router.Directory, usage: "advanced [search=…] name=… acronym=… institution=ID component=ID field=ID", run: a.AdvancedSearch},

		"associations":       {route: router.ManageAssociations, usage: "associations", run: a.Associations},
		"association":        {route: router.ManageAssociations, usage: "association <id>", run: a.Association},
		"association-create": {route: router.ManageAssociations, usage: "association-create <name>", run: a.CreateAssociation},
		"association-edit":   {route: router.ManageAssociations, usage: "association-edit <id> key=value… [description|activities]", run: a.EditAssociation},
		"association-social": {route: router.ManageAssociations, usage: "association-social <id> add <type> <location> | remove <index>", run: a.EditSocialNetworks},
		"association-delete": {route: router.ManageAssociations, usage: "association-delete <id>", run: a.DeleteAssociation},
		"association-enable": {route: router.ManageAssociations, usage: "association-enable <id> yes|no", run: a.EnableAssociation},
		"members":            {route: router.ManageAssociations, usage: "members <id>", run: a.Members},
		"roles":              {route: router.Dashboard, usage: "roles [user=<id>] [<associationID>=president|secretary|treasurer|vice-president|member|delete] [preside:<associationID>=yes|no]", run: a.Roles},

		"commissions":       {route: router.Commissions, usage: "commissions [active=…] [open=…] [site=…] [managed=…]", run: a.Commissions},
		"commission-create": {route: router.Commissions, usage: "commission-create", run: a.CreateCommission},
		"commission-update": {route: router.Commissions, usage: "commission-update <id> name=… date=… submission=… open=… funds=1,2", run: a.UpdateCommission},
		"commission-delete": {route: router.Commissions, usage: "commission-delete <id>", run: a.DeleteCommission},
		"funds":             {route: router.Commissions, usage: "funds [commission=<id> [site=yes|no]]", run: a.Funds},

		"users":               {route: router.ManageUsers, usage: "users [all|validated|unvalidated]", run: a.Users},
		"user":                {route: router.ManageUsers, usage: "user <id>", run: a.User},
		"user-validate":       {route: router.ValidateUsers, usage: "user-validate <id> [groups=2,4] [commissions=1]", run: a.ValidateUser},
		"user-delete":         {route: router.ManageUsers, usage: "user-delete <id>", run: a.DeleteUser},
		"unvalidated-members": {route: router.ValidateUsers, usage: "unvalidated-members", run: a.UnvalidatedMembers},

		"documents":       {route: router.Documents, usage: "documents [PROCESS_TYPE…]", run: a.Documents},
		"document-upload": {route: router.Documents, usage: "document-upload <documentID> <file> [association=<id>|project=<id>]", run: a.UploadDocument},
		"document-delete": {route: router.Documents, usage: "document-delete <uploadID>", run: a.DeleteDocumentUpload},
		"template":        {route: router.Documents, usage: "template <documentID>", run: a.Template},
	}
}

func (a *App) help() string {
	names := make([]string, 0, len(a.commands))
	for name, c := range a.commands {
		if r, ok := router.Lookup(c.route); ok && r.RequiresAuth && !a.isLoggedIn() {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, n := range names {
		fmt.Fprintf(&b, "  %s\n", a.commands[n].usage)
	}
	b.WriteString("  help\n  exit | quit")
	return b.String()
}

// exec navigates to the command's route and runs it when the guard lets
// the navigation through.
func (a *App) exec(ctx context.Context, name string, args []string) error {
	c, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", common.ErrValidation, name)
	}

	var query map[string]string
	if c.query != nil {
		query = c.query(args)
	}
	if dest := a.guard.BeforeEach(ctx, c.route, query); dest != c.route {
		return a.redirected(c.route, dest)
	}
	return c.run(ctx, args)
}

func (a *App) redirected(from, to router.Name) error {
	switch to {
	case router.Login:
		return fmt.Errorf("%w: sign in first with 'login' or 'cas'", common.ErrNotAuthenticated)
	case router.Dashboard, router.ProfilePasswordEdit:
		return fmt.Errorf("%w: already signed in as %s", common.ErrValidation, a.store.User.User.Username)
	}
	return fmt.Errorf("%s is not reachable (%s)", from, to)
}

func (a *App) usage(name string) error {
	return fmt.Errorf("%w: usage: %s", common.ErrValidation, a.commands[name].usage)
}
