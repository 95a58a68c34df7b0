package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/dmitrijs2005/plana/internal/logging"
	"github.com/tidwall/gjson"
)

const (
	CASLoginPath = "/users/auth/cas/login/"
	UserPath     = "/users/auth/user/"
	GroupsPath   = "/groups/"
)

// UserStore holds the signed-in user and the data derived from it.
type UserStore struct {
	api           *client.API
	casServiceURL string
	logger        logging.Logger

	User    *models.User
	NewUser *models.User
	IsCAS   bool
	Groups  []models.Group

	// UserAssociations are the signed-in user's memberships, enriched
	// with association details.
	UserAssociations []models.AssociationUserDetail
	// AssociationRoles are the raw membership records of the signed-in user.
	AssociationRoles []models.AssociationUser
}

func NewUserStore(api *client.API, casServiceURL string, logger logging.Logger) *UserStore {
	return &UserStore{api: api, casServiceURL: casServiceURL, logger: logging.OrNop(logger)}
}

func (s *UserStore) reset() {
	s.User = nil
	s.NewUser = nil
	s.IsCAS = false
	s.Groups = nil
	s.UserAssociations = nil
	s.AssociationRoles = nil
}

func (s *UserStore) IsAuth() bool {
	return s.User != nil
}

// UserNameFirstLetter is the upper-cased initial of the first name, or ""
// when nobody is signed in.
func (s *UserStore) UserNameFirstLetter() string {
	if !s.IsAuth() || s.User.FirstName == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s.User.FirstName)
	return string(unicode.ToUpper(r))
}

// IsUniManager reports whether the user manages every association.
func (s *UserStore) IsUniManager() bool {
	return s.IsAuth() && s.User.IsStaff
}

// UserInstitutions lists the distinct institutions of the user's groups.
func (s *UserStore) UserInstitutions() []int {
	if !s.IsAuth() {
		return nil
	}
	ids := make([]int, 0, len(s.User.Groups))
	for _, g := range s.User.Groups {
		if g.InstitutionID.Valid {
			ids = append(ids, g.InstitutionID.Int)
		}
	}
	return common.Unique(ids)
}

// HasPerm reports whether the signed-in user holds the permission codename.
func (s *UserStore) HasPerm(perm string) bool {
	return s.IsAuth() && slices.Contains(s.User.Permissions, perm)
}

// GroupList offers the loaded groups as choices.
func (s *UserStore) GroupList() []models.SelectLabel {
	out := make([]models.SelectLabel, 0, len(s.Groups))
	for _, g := range s.Groups {
		out = append(out, models.SelectLabel{Value: g.ID, Label: g.Name})
	}
	return out
}

func (s *UserStore) StudentGroup() *models.Group {
	return s.findGroup(models.StudentGroupName)
}

func (s *UserStore) CommissionGroup() *models.Group {
	return s.findGroup(models.CommissionGroupName)
}

func (s *UserStore) findGroup(name string) *models.Group {
	for i := range s.Groups {
		if strings.EqualFold(s.Groups[i].Name, name) {
			return &s.Groups[i]
		}
	}
	return nil
}

// LogIn posts credentials to path, stores the returned tokens and user.
func (s *UserStore) LogIn(ctx context.Context, path string, creds models.Credentials) error {
	user, err := s.authenticate(ctx, path, creds)
	if err != nil {
		return err
	}
	s.User = user
	s.logger.Info(ctx, "logged in", "user", user.Username)
	return nil
}

// LoadCASUser exchanges a CAS ticket. The returned user is a pending
// registration kept in NewUser.
func (s *UserStore) LoadCASUser(ctx context.Context, ticket string) error {
	body := map[string]string{"ticket": ticket, "service": s.casServiceURL}
	user, err := s.authenticate(ctx, CASLoginPath, body)
	if err != nil {
		return err
	}
	s.NewUser = user
	s.IsCAS = true
	return nil
}

// authenticate replaces the stored token pair with the one in the response.
func (s *UserStore) authenticate(ctx context.Context, path string, body any) (*models.User, error) {
	var raw json.RawMessage
	if err := s.api.Public.Post(ctx, path, body, &raw); err != nil {
		return nil, err
	}

	tokens := tokensFromPayload(raw)
	if tokens.Access == "" {
		return nil, fmt.Errorf("%w: no access token in login response", common.ErrInvalidToken)
	}
	if err := s.api.Tokens.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear tokens: %w", err)
	}
	if err := s.api.Tokens.Save(ctx, tokens); err != nil {
		return nil, fmt.Errorf("save tokens: %w", err)
	}

	var user models.User
	if u := gjson.GetBytes(raw, "user"); u.Exists() {
		if err := json.Unmarshal([]byte(u.Raw), &user); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
	}
	return &user, nil
}

// tokensFromPayload accepts the spellings the API has used for token keys.
func tokensFromPayload(raw []byte) client.Tokens {
	first := func(paths ...string) string {
		for _, p := range paths {
			if v := gjson.GetBytes(raw, p).String(); v != "" {
				return v
			}
		}
		return ""
	}
	return client.Tokens{
		Access:  first("access", "accessToken", "access_token"),
		Refresh: first("refresh", "refreshToken", "refresh_token"),
	}
}

// GetUser loads the signed-in user's profile.
func (s *UserStore) GetUser(ctx context.Context) error {
	var user models.User
	if err := s.api.Authenticated.Get(ctx, UserPath, &user); err != nil {
		return err
	}
	s.User = &user
	return nil
}

// CheckUserValidity unloads a user not yet validated by an administrator.
func (s *UserStore) CheckUserValidity() {
	if s.User != nil && !s.User.IsValidatedByAdmin {
		s.UnLoadUser()
	}
}

func (s *UserStore) UnLoadUser() {
	s.User = nil
}

// LogOut forgets the persisted tokens and the session state.
func (s *UserStore) LogOut(ctx context.Context) error {
	s.reset()
	if err := s.api.Tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}

func (s *UserStore) GetGroups(ctx context.Context) error {
	var groups []models.Group
	if err := s.api.Public.Get(ctx, GroupsPath, &groups); err != nil {
		return err
	}
	s.Groups = groups
	return nil
}

// GetUserAssociationsRoles loads the signed-in user's membership records.
func (s *UserStore) GetUserAssociationsRoles(ctx context.Context) error {
	var roles []models.AssociationUser
	if err := s.api.Authenticated.Get(ctx, "/users/associations/", &roles); err != nil {
		return err
	}
	s.AssociationRoles = roles
	return nil
}
