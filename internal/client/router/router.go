// Package router names the screens of the client and guards navigation
// between them according to the session state.
package router

import (
	"context"

	"github.com/dmitrijs2005/plana/internal/logging"
)

type Name string

const (
	Login                Name = "Login"
	Registration         Name = "Registration"
	CASRegister          Name = "CASRegister"
	PasswordReset        Name = "PasswordReset"
	PasswordResetConfirm Name = "PasswordResetConfirm"
	Dashboard            Name = "Dashboard"
	ProfilePasswordEdit  Name = "ProfilePasswordEdit"
	Directory            Name = "Directory"
	ManageAssociations   Name = "ManageAssociations"
	ManageUsers          Name = "ManageUsers"
	ValidateUsers        Name = "ValidateUsers"
	Commissions          Name = "Commissions"
	Documents            Name = "Documents"
	NotFound             Name = "404"
)

type Route struct {
	Name         Name
	Path         string
	RequiresAuth bool
}

var routes = []Route{
	{Name: Login, Path: "/login"},
	{Name: Registration, Path: "/register"},
	{Name: CASRegister, Path: "/cas-register"},
	{Name: PasswordReset, Path: "/password-reset"},
	{Name: PasswordResetConfirm, Path: "/password-reset-confirm"},
	{Name: Directory, Path: "/directory"},
	{Name: Dashboard, Path: "/dashboard", RequiresAuth: true},
	{Name: ProfilePasswordEdit, Path: "/dashboard/password-edit", RequiresAuth: true},
	{Name: ManageAssociations, Path: "/dashboard/manage-associations", RequiresAuth: true},
	{Name: ManageUsers, Path: "/dashboard/manage-users", RequiresAuth: true},
	{Name: ValidateUsers, Path: "/dashboard/validate-users", RequiresAuth: true},
	{Name: Commissions, Path: "/dashboard/commissions", RequiresAuth: true},
	{Name: Documents, Path: "/dashboard/documents", RequiresAuth: true},
	{Name: NotFound, Path: "/404"},
}

// Lookup finds a route by name.
func Lookup(name Name) (Route, bool) {
	for _, r := range routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Session is what the guard needs to know about the signed-in user.
type Session interface {
	// LoadUser restores the user from stored tokens when possible.
	LoadUser(ctx context.Context) error
	IsAuth() bool
}

type Guard struct {
	session Session
	logger  logging.Logger
}

func NewGuard(session Session, logger logging.Logger) *Guard {
	return &Guard{session: session, logger: logging.OrNop(logger)}
}

// BeforeEach returns where navigation to `to` ends up. Unknown routes lead
// to NotFound.
func (g *Guard) BeforeEach(ctx context.Context, to Name, query map[string]string) Name {
	if err := g.session.LoadUser(ctx); err != nil {
		g.logger.Warn(ctx, "load user failed", "error", err)
	}

	route, ok := Lookup(to)
	if !ok {
		return NotFound
	}
	auth := g.session.IsAuth()

	if route.RequiresAuth && !auth {
		return Login
	}
	if to == PasswordResetConfirm && query["uid"] == "" && query["token"] == "" {
		return NotFound
	}
	if auth {
		switch to {
		case Registration, Login:
			return Dashboard
		case PasswordReset:
			return ProfilePasswordEdit
		}
	}
	return to
}
