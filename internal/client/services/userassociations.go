package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/store"
	"github.com/dmitrijs2005/plana/internal/logging"
	"github.com/volatiletech/null/v8"
)

// AssociationRoleOptions are the selectable roles, highest first.
var AssociationRoleOptions = []models.RoleOption{
	{Label: "President", Value: models.RolePresident},
	{Label: "Secretary", Value: models.RoleSecretary},
	{Label: "Treasurer", Value: models.RoleTreasurer},
	{Label: "Vice-president", Value: models.RoleVicePresident},
	{Label: "Member", Value: models.RoleMember},
}

// GetAssociationUserRole picks the display role of a membership. Flags are
// independent on the wire; the first set flag in option order wins.
func GetAssociationUserRole(f models.RoleFlags) string {
	switch {
	case f.IsPresident:
		return models.RolePresident
	case f.IsSecretary:
		return models.RoleSecretary
	case f.IsTreasurer:
		return models.RoleTreasurer
	case f.IsVicePresident:
		return models.RoleVicePresident
	}
	return models.RoleMember
}

// RoleFlagsFor sets exactly the flag of role.
func RoleFlagsFor(role string) models.RoleFlags {
	return models.RoleFlags{
		IsPresident:     role == models.RolePresident,
		IsSecretary:     role == models.RoleSecretary,
		IsTreasurer:     role == models.RoleTreasurer,
		IsVicePresident: role == models.RoleVicePresident,
	}
}

func RoleLabel(role string) string {
	for _, o := range AssociationRoleOptions {
		if o.Value == role {
			return o.Label
		}
	}
	return role
}

// UserAssociationService edits memberships of the signed-in user or of a
// managed user, and lists association members.
type UserAssociationService struct {
	api    *client.API
	store  *store.Store
	logger logging.Logger

	// UserAssociations are the editable membership rows.
	UserAssociations []models.AssociationRole
	// NewAssociations are membership rows added during registration.
	NewAssociations    []models.AssociationRole
	AssociationMembers []models.AssociationMember
}

func NewUserAssociationService(api *client.API, st *store.Store, logger logging.Logger) *UserAssociationService {
	return &UserAssociationService{api: api, store: st, logger: logging.OrNop(logger)}
}

// editedUser returns the user whose memberships are edited and the matching
// stored records.
func (s *UserAssociationService) editedUser(editedByStaff bool) (*models.User, []models.AssociationUserDetail) {
	if editedByStaff {
		return s.store.UserManager.User, s.store.UserManager.UserAssociations
	}
	return s.store.User.User, s.store.User.UserAssociations
}

// InitUserAssociations builds editable rows from the stored memberships.
func (s *UserAssociationService) InitUserAssociations(editedByStaff bool) {
	_, stored := s.editedUser(editedByStaff)
	s.UserAssociations = make([]models.AssociationRole, 0, len(stored))
	for _, a := range stored {
		s.UserAssociations = append(s.UserAssociations, models.AssociationRole{
			ID:                 null.IntFrom(a.Association.ID),
			Name:               a.Association.Name,
			Role:               GetAssociationUserRole(a.RoleFlags),
			Options:            AssociationRoleOptions,
			IsValidatedByAdmin: a.IsValidatedByAdmin,
			CanBePresident:     a.CanBePresident,
		})
	}
}

// UpdateUserAssociations sends the edits of UserAssociations: rows marked
// for deletion are removed, rows whose role or president eligibility
// changed are patched with exclusive role flags.
func (s *UserAssociationService) UpdateUserAssociations(ctx context.Context, editedByStaff bool) error {
	user, stored := s.editedUser(editedByStaff)
	if user == nil {
		return fmt.Errorf("update memberships: %w", client.ErrUnauthorized)
	}

	kept := s.UserAssociations[:0:0]
	for _, row := range s.UserAssociations {
		if !row.ID.Valid {
			kept = append(kept, row)
			continue
		}
		aid := row.ID.Int

		if row.DeleteAssociation {
			if err := s.DeleteUserAssociation(ctx, user.ID, aid); err != nil {
				return err
			}
			if !editedByStaff {
				user.Associations = slices.DeleteFunc(user.Associations, func(a models.AssociationName) bool { return a.ID == aid })
			}
			continue
		}
		kept = append(kept, row)

		if !membershipChanged(stored, row) {
			continue
		}
		patch := models.AssociationUserPatch{CanBePresident: row.CanBePresident, RoleFlags: RoleFlagsFor(row.Role)}
		if err := s.PatchUserAssociations(ctx, user.ID, aid, patch); err != nil {
			return err
		}
	}
	s.UserAssociations = kept
	return nil
}

func membershipChanged(stored []models.AssociationUserDetail, row models.AssociationRole) bool {
	i := slices.IndexFunc(stored, func(a models.AssociationUserDetail) bool { return a.Association.ID == row.ID.Int })
	if i < 0 {
		return true
	}
	old := stored[i]
	return old.CanBePresident != row.CanBePresident || GetAssociationUserRole(old.RoleFlags) != row.Role
}

func (s *UserAssociationService) PatchUserAssociations(ctx context.Context, userID, associationID int, patch models.AssociationUserPatch) error {
	return s.api.Authenticated.Patch(ctx, fmt.Sprintf("/users/%d/associations/%d", userID, associationID), patch, nil)
}

func (s *UserAssociationService) DeleteUserAssociation(ctx context.Context, userID, associationID int) error {
	return s.api.Authenticated.Delete(ctx, fmt.Sprintf("/users/%d/associations/%d", userID, associationID))
}

func (s *UserAssociationService) AddAssociation() {
	s.NewAssociations = append(s.NewAssociations, models.AssociationRole{
		Role:    models.RoleMember,
		Options: AssociationRoleOptions,
	})
}

func (s *UserAssociationService) RemoveAssociation(i int) {
	if i < 0 || i >= len(s.NewAssociations) {
		return
	}
	s.NewAssociations = slices.Delete(s.NewAssociations, i, i+1)
}

// UpdateRegisterRoleInAssociation turns the registration rows into membership
// records. Rows without an association are skipped.
func (s *UserAssociationService) UpdateRegisterRoleInAssociation() []models.AssociationUser {
	out := make([]models.AssociationUser, 0, len(s.NewAssociations))
	for _, row := range s.NewAssociations {
		if !row.ID.Valid {
			continue
		}
		out = append(out, models.AssociationUser{
			Association: row.ID,
			RoleFlags:   RoleFlagsFor(row.Role),
		})
	}
	return out
}

// GetUserAssociations loads the memberships of the signed-in user, or of
// userID when managedUser is set, each enriched with its association.
func (s *UserAssociationService) GetUserAssociations(ctx context.Context, userID int, managedUser bool) error {
	path := "/users/associations/"
	if managedUser {
		path = fmt.Sprintf("/users/%d/associations/", userID)
	}

	var records []models.AssociationUser
	if err := s.api.Authenticated.Get(ctx, path, &records); err != nil {
		return err
	}

	details := make([]models.AssociationUserDetail, 0, len(records))
	for _, r := range records {
		if !r.Association.Valid {
			continue
		}
		var a models.Association
		if err := s.api.Authenticated.Get(ctx, fmt.Sprintf("/associations/%d", r.Association.Int), &a); err != nil {
			return err
		}
		details = append(details, models.AssociationUserDetail{
			Association:        summarize(a),
			CanBePresident:     r.CanBePresident,
			CanBePresidentFrom: r.CanBePresidentFrom,
			CanBePresidentTo:   r.CanBePresidentTo,
			IsValidatedByAdmin: r.IsValidatedByAdmin,
			RoleFlags:          r.RoleFlags,
		})
	}

	if managedUser {
		s.store.UserManager.UserAssociations = details
	} else {
		s.store.User.UserAssociations = details
	}
	return nil
}

func summarize(a models.Association) models.AssociationSummary {
	return models.AssociationSummary{
		ID:          a.ID,
		Name:        a.Name,
		IsSite:      a.IsSite,
		Institution: a.Institution.ID,
		IsEnabled:   a.IsEnabled,
		IsPublic:    a.IsPublic,
	}
}

func (s *UserAssociationService) GetAssociationUsersNames(ctx context.Context, associationID int) ([]models.User, error) {
	var users []models.User
	if err := s.api.Authenticated.Get(ctx, fmt.Sprintf("/users/?association_id=%d", associationID), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// InitAssociationMembers joins the member names of an association with
// their membership records.
func (s *UserAssociationService) InitAssociationMembers(ctx context.Context, associationID int) error {
	users, err := s.GetAssociationUsersNames(ctx, associationID)
	if err != nil {
		return err
	}
	if err := s.store.Association.GetAssociationUsers(ctx, associationID); err != nil {
		return err
	}

	s.AssociationMembers = s.AssociationMembers[:0]
	for _, u := range users {
		for _, m := range s.store.Association.AssociationUsers {
			if !m.User.Valid || m.User.Int != u.ID {
				continue
			}
			s.AssociationMembers = append(s.AssociationMembers, models.AssociationMember{
				ID:                 u.ID,
				AssociationID:      associationID,
				FirstName:          u.FirstName,
				LastName:           u.LastName,
				Role:               GetAssociationUserRole(m.RoleFlags),
				CanBePresident:     m.CanBePresident,
				CanBePresidentFrom: m.CanBePresidentFrom,
				CanBePresidentTo:   m.CanBePresidentTo,
				IsValidatedByAdmin: m.IsValidatedByAdmin,
			})
		}
	}
	return nil
}

// UnvalidatedAssociationUsersURL lists pending memberships in the signed-in
// manager's institutions.
func (s *UserAssociationService) UnvalidatedAssociationUsersURL() string {
	institutions := s.store.User.UserInstitutions()
	parts := make([]string, len(institutions))
	for i, id := range institutions {
		parts[i] = strconv.Itoa(id)
	}
	ids := strings.Join(parts, ",")
	if s.store.User.HasPerm(store.PermChangeUserMisc) {
		ids += ","
	}
	return "/users/associations/?institutions=" + ids + "&is_validated_by_admin=false"
}

// GetUnvalidatedAssociationUsers builds AssociationMembers from pending
// memberships of validated users. Rows whose user or association name is
// unknown are skipped.
func (s *UserAssociationService) GetUnvalidatedAssociationUsers(ctx context.Context) error {
	var records []models.AssociationUser
	if err := s.api.Authenticated.Get(ctx, s.UnvalidatedAssociationUsersURL(), &records); err != nil {
		return err
	}
	if err := s.store.Association.GetAssociationNames(ctx, false, false); err != nil {
		return err
	}
	if err := s.store.UserManager.GetUsers(ctx, store.StatusValidated); err != nil {
		return err
	}

	names := make(map[int]string, len(s.store.Association.AssociationNames))
	for _, a := range s.store.Association.AssociationNames {
		names[a.ID] = a.Name
	}

	s.AssociationMembers = s.AssociationMembers[:0]
	for _, r := range records {
		if !r.User.Valid || !r.Association.Valid {
			continue
		}
		i := slices.IndexFunc(s.store.UserManager.Users, func(u models.User) bool { return u.ID == r.User.Int })
		if i < 0 {
			continue
		}
		name, ok := names[r.Association.Int]
		if !ok || name == "" {
			continue
		}
		u := s.store.UserManager.Users[i]
		s.AssociationMembers = append(s.AssociationMembers, models.AssociationMember{
			ID:                 u.ID,
			AssociationID:      r.Association.Int,
			AssociationName:    name,
			FirstName:          u.FirstName,
			LastName:           u.LastName,
			Role:               GetAssociationUserRole(r.RoleFlags),
			CanBePresident:     r.CanBePresident,
			CanBePresidentFrom: r.CanBePresidentFrom,
			CanBePresidentTo:   r.CanBePresidentTo,
			IsValidatedByAdmin: r.IsValidatedByAdmin,
		})
	}
	return nil
}
