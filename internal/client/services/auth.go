package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/store"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/dmitrijs2005/plana/internal/logging"
)

const (
	LoginPath                = "/users/auth/login/"
	RegistrationPath         = "/users/auth/registration/"
	PasswordResetPath        = "/users/auth/password/reset/"
	PasswordResetConfirmPath = "/users/auth/password/reset/confirm/"
)

// AuthService defines the session operations of the CLI.
//
// Contract:
//   - Login/CASLogin: authenticate and persist tokens.
//   - Register: create an account, its memberships and its groups.
//   - LoadUser: restore the signed-in user from persisted tokens.
//   - Logout: forget tokens and every loaded state.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) error
	CASLogin(ctx context.Context, ticket string) error
	Register(ctx context.Context, user models.UserRegister, memberships []models.AssociationUser, groups []int) error
	PasswordReset(ctx context.Context, email string) error
	PasswordResetConfirm(ctx context.Context, uid, token string, password []byte) error
	LoadUser(ctx context.Context) error
	IsAuth() bool
	Logout(ctx context.Context) error
}

type authService struct {
	api    *client.API
	store  *store.Store
	logger logging.Logger
	// session is cleared on logout along with the stores.
	session []SessionState
}

func NewAuthService(api *client.API, st *store.Store, logger logging.Logger, session ...SessionState) AuthService {
	return &authService{api: api, store: st, logger: logging.OrNop(logger), session: session}
}

// Login signs in with a password. The password buffer is wiped. Accounts
// not yet validated by an administrator are refused with ErrNotValidated.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	defer common.WipeByteArray(password)

	creds := models.Credentials{Username: username, Password: string(password)}
	if err := models.Validate(creds); err != nil {
		return err
	}
	if err := a.store.User.LogIn(ctx, LoginPath, creds); err != nil {
		return err
	}

	a.store.User.CheckUserValidity()
	if !a.store.User.IsAuth() {
		_ = a.api.Tokens.Clear(ctx)
		return common.ErrNotValidated
	}
	return nil
}

// CASLogin exchanges a CAS ticket. A new CAS user ends up in NewUser and
// must register; a known one is loaded as with Login.
func (a *authService) CASLogin(ctx context.Context, ticket string) error {
	if err := a.store.User.LoadCASUser(ctx, ticket); err != nil {
		return err
	}
	if err := a.store.User.GetUser(ctx); err != nil {
		a.logger.Debug(ctx, "cas user not registered yet", "error", err)
		return nil
	}
	a.store.User.CheckUserValidity()
	if a.store.User.IsAuth() {
		a.store.User.NewUser = nil
	}
	return nil
}

// Register creates the account then links it to memberships and groups,
// one call at a time. A failure leaves earlier calls in effect.
func (a *authService) Register(ctx context.Context, user models.UserRegister, memberships []models.AssociationUser, groups []int) error {
	if a.store.User.IsCAS && a.store.User.NewUser != nil {
		user.IsCas = true
		user.Username = a.store.User.NewUser.Username
	}
	if err := models.Validate(user); err != nil {
		return err
	}

	if err := a.api.Public.Post(ctx, RegistrationPath, user, nil); err != nil {
		return err
	}

	for _, m := range memberships {
		body := map[string]any{
			"user":            user.Username,
			"association":     m.Association,
			"isPresident":     m.IsPresident,
			"isSecretary":     m.IsSecretary,
			"isTreasurer":     m.IsTreasurer,
			"isVicePresident": m.IsVicePresident,
		}
		if err := a.api.Public.Post(ctx, "/users/associations/", body, nil); err != nil {
			return fmt.Errorf("link association: %w", err)
		}
	}
	for _, g := range groups {
		link := models.UserGroupLink{Username: user.Username, Group: g}
		if err := a.api.Public.Post(ctx, "/users/groups/", link, nil); err != nil {
			return fmt.Errorf("link group %d: %w", g, err)
		}
	}

	a.logger.Info(ctx, "user registered", "username", user.Username, "cas", user.IsCas)
	return nil
}

func (a *authService) PasswordReset(ctx context.Context, email string) error {
	return a.api.Public.Post(ctx, PasswordResetPath, map[string]string{"email": email}, nil)
}

// PasswordResetConfirm sets a new password from the uid and token of a
// reset e-mail. The password buffer is wiped.
func (a *authService) PasswordResetConfirm(ctx context.Context, uid, token string, password []byte) error {
	defer common.WipeByteArray(password)
	if len(password) == 0 {
		return fmt.Errorf("%w: password: this field is required", common.ErrValidation)
	}
	body := map[string]string{
		"uid":           uid,
		"token":         token,
		"new_password1": string(password),
		"new_password2": string(password),
	}
	return a.api.Public.Post(ctx, PasswordResetConfirmPath, body, nil)
}

// LoadUser fetches the user when tokens are stored and nobody is loaded.
// Any failure leaves the session anonymous.
func (a *authService) LoadUser(ctx context.Context) error {
	if a.store.User.IsAuth() {
		return nil
	}
	tokens, err := a.api.Tokens.Tokens(ctx)
	if err != nil {
		if errors.Is(err, client.ErrLocalDataNotAvailable) {
			return nil
		}
		return err
	}
	if tokens.Access == "" {
		return nil
	}

	if err := a.store.User.GetUser(ctx); err != nil {
		a.store.User.UnLoadUser()
		return err
	}
	a.store.User.CheckUserValidity()
	return nil
}

func (a *authService) IsAuth() bool {
	return a.store.User.IsAuth()
}

func (a *authService) Logout(ctx context.Context) error {
	a.store.Reset()
	for _, st := range a.session {
		st.reset()
	}
	return a.store.User.LogOut(ctx)
}
