package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/store"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/dmitrijs2005/plana/internal/logging"
	"github.com/volatiletech/null/v8"
)

// AssociationService manages associations: creation, listing of the
// associations a user manages, and diff-based profile edits.
type AssociationService struct {
	api    *client.API
	store  *store.Store
	logger logging.Logger

	// NewAssociations is the "associations to add" editor of registration forms.
	NewAssociations     []models.NewAssociation
	ManagedAssociations []models.AssociationList

	Institutions []models.Institution
	Components   []models.InstitutionComponent
	Fields       []models.ActivityField
}

func NewAssociationService(api *client.API, st *store.Store, logger logging.Logger) *AssociationService {
	return &AssociationService{api: api, store: st, logger: logging.OrNop(logger)}
}

// CreateAssociation registers a new association with the given name.
func (s *AssociationService) CreateAssociation(ctx context.Context, name string) error {
	body := models.AssociationCreate{Name: name}
	if err := models.Validate(body); err != nil {
		return err
	}
	if err := s.api.Authenticated.Post(ctx, "/associations/", body, nil); err != nil {
		return err
	}
	s.logger.Info(ctx, "association created", "name", name)
	return nil
}

func (s *AssociationService) AddAssociation() {
	s.NewAssociations = append(s.NewAssociations, models.NewAssociation{})
}

func (s *AssociationService) RemoveAssociation(i int) {
	if i < 0 || i >= len(s.NewAssociations) {
		return
	}
	s.NewAssociations = slices.Delete(s.NewAssociations, i, i+1)
}

// GetManagedAssociations loads, once per session, the associations the
// signed-in user may manage. University managers see every association,
// other users see the associations they belong to.
func (s *AssociationService) GetManagedAssociations(ctx context.Context) error {
	user := s.store.User
	if !user.IsAuth() || len(s.ManagedAssociations) != 0 {
		return nil
	}

	if user.IsUniManager() {
		if err := s.store.Association.GetAssociations(ctx); err != nil {
			return err
		}
		s.ManagedAssociations = slices.Clone(s.store.Association.Associations)
		return nil
	}

	managed := make([]models.AssociationList, 0, len(user.User.Associations))
	for _, a := range user.User.Associations {
		var detail models.AssociationList
		if err := s.api.Authenticated.Get(ctx, fmt.Sprintf("/associations/%d", a.ID), &detail); err != nil {
			return err
		}
		managed = append(managed, detail)
	}
	s.ManagedAssociations = managed
	return user.GetUserAssociationsRoles(ctx)
}

// ManagedAssociationsDirectory flattens the managed associations for display.
func (s *AssociationService) ManagedAssociationsDirectory() []models.AssociationDirectoryDetail {
	out := make([]models.AssociationDirectoryDetail, 0, len(s.ManagedAssociations))
	for _, a := range s.ManagedAssociations {
		out = append(out, models.AssociationDirectoryDetail{
			ID:          a.ID,
			Name:        a.Name,
			Acronym:     a.Acronym,
			Institution: a.Institution.Name,
			Component:   a.InstitutionComponent.Name,
			Field:       a.ActivityField.Name,
		})
	}
	return out
}

func (s *AssociationService) GetAssociationInstitutions(ctx context.Context) error {
	var list []models.Institution
	if err := s.api.Public.Get(ctx, "/associations/institutions", &list); err != nil {
		return err
	}
	s.Institutions = list
	return nil
}

func (s *AssociationService) GetAssociationComponents(ctx context.Context) error {
	var list []models.InstitutionComponent
	if err := s.api.Public.Get(ctx, "/associations/institution_components", &list); err != nil {
		return err
	}
	s.Components = list
	return nil
}

func (s *AssociationService) GetAssociationFields(ctx context.Context) error {
	var list []models.ActivityField
	if err := s.api.Public.Get(ctx, "/associations/activity_fields", &list); err != nil {
		return err
	}
	s.Fields = list
	return nil
}

func (s *AssociationService) InstitutionsLabels() []models.SelectLabel {
	out := make([]models.SelectLabel, 0, len(s.Institutions))
	for _, i := range s.Institutions {
		out = append(out, models.SelectLabel{Value: i.ID, Label: i.Name})
	}
	return out
}

func (s *AssociationService) ComponentsLabels() []models.SelectLabel {
	out := make([]models.SelectLabel, 0, len(s.Components))
	for _, c := range s.Components {
		out = append(out, models.SelectLabel{Value: c.ID, Label: c.Name})
	}
	return out
}

func (s *AssociationService) FieldsLabels() []models.SelectLabel {
	out := make([]models.SelectLabel, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, models.SelectLabel{Value: f.ID, Label: f.Name})
	}
	return out
}

// CurrentInstitutionLabel is the label of the viewed association's institution.
func (s *AssociationService) CurrentInstitutionLabel() (models.SelectLabel, bool) {
	if s.store.Association.Association == nil {
		return models.SelectLabel{}, false
	}
	return findLabel(s.InstitutionsLabels(), s.store.Association.Association.Institution.ID)
}

func (s *AssociationService) CurrentComponentLabel() (models.SelectLabel, bool) {
	if s.store.Association.Association == nil {
		return models.SelectLabel{}, false
	}
	return findLabel(s.ComponentsLabels(), s.store.Association.Association.InstitutionComponent.ID)
}

func (s *AssociationService) CurrentFieldLabel() (models.SelectLabel, bool) {
	if s.store.Association.Association == nil {
		return models.SelectLabel{}, false
	}
	return findLabel(s.FieldsLabels(), s.store.Association.Association.ActivityField.ID)
}

func findLabel(labels []models.SelectLabel, id int) (models.SelectLabel, bool) {
	i := slices.IndexFunc(labels, func(l models.SelectLabel) bool { return l.Value == id })
	if i < 0 {
		return models.SelectLabel{}, false
	}
	return labels[i], true
}

// NewAssociationForm copies a into an editable form.
func NewAssociationForm(a *models.Association) models.AssociationForm {
	form := models.AssociationForm{
		ID:                   a.ID,
		Name:                 a.Name,
		Acronym:              a.Acronym,
		Description:          a.Description,
		Activities:           a.Activities,
		Address:              a.Address,
		Phone:                a.Phone,
		Email:                a.Email,
		Siret:                a.Siret,
		Website:              a.Website,
		StudentCount:         a.StudentCount,
		PresidentNames:       a.PresidentNames,
		LastGoaDate:          storedGoaDate(a),
		Institution:          a.Institution.ID,
		InstitutionComponent: a.InstitutionComponent.ID,
		ActivityField:        a.ActivityField.ID,
		SocialNetworks:       slices.Clone(a.SocialNetworks),
	}
	return form
}

func storedGoaDate(a *models.Association) null.String {
	if !a.LastGoaDate.Valid {
		return null.String{}
	}
	return null.StringFrom(common.FormatDate(a.LastGoaDate.String))
}

// CheckChanges returns the fields of form that differ from stored, keyed by
// their JSON names. An empty map means nothing to send.
func CheckChanges(stored *models.Association, form models.AssociationForm) map[string]any {
	changes := map[string]any{}

	if form.Name != stored.Name {
		changes["name"] = form.Name
	}

	strs := []struct {
		key      string
		new, old null.String
	}{
		{"acronym", form.Acronym, stored.Acronym},
		{"description", form.Description, stored.Description},
		{"activities", form.Activities, stored.Activities},
		{"address", form.Address, stored.Address},
		{"phone", form.Phone, stored.Phone},
		{"email", form.Email, stored.Email},
		{"website", form.Website, stored.Website},
		{"presidentNames", form.PresidentNames, stored.PresidentNames},
	}
	for _, f := range strs {
		if f.new != f.old {
			changes[f.key] = f.new
		}
	}

	if form.Siret != stored.Siret {
		changes["siret"] = form.Siret
	}
	if form.StudentCount != stored.StudentCount {
		changes["studentCount"] = form.StudentCount
	}

	if form.Institution != stored.Institution.ID {
		changes["institution"] = form.Institution
	}
	if form.InstitutionComponent != stored.InstitutionComponent.ID {
		changes["institutionComponent"] = form.InstitutionComponent
	}
	if form.ActivityField != stored.ActivityField.ID {
		changes["activityField"] = form.ActivityField
	}

	goa := form.LastGoaDate
	if goa.Valid && goa.String == "" {
		goa = null.String{}
	}
	if goa != storedGoaDate(stored) {
		if goa.Valid {
			changes["lastGoaDate"] = goa.String + common.DateTimeSuffix
		} else {
			changes["lastGoaDate"] = nil
		}
	}

	if socialNetworksChanged(stored.SocialNetworks, form.SocialNetworks) {
		networks := form.SocialNetworks
		if networks == nil {
			networks = []models.SocialNetwork{}
		}
		changes["socialNetworks"] = networks
	}

	return changes
}

// socialNetworksChanged compares the two lists as sets of {type, location}.
func socialNetworksChanged(a, b []models.SocialNetwork) bool {
	if len(a) != len(b) {
		return true
	}
	for _, n := range a {
		if !slices.Contains(b, n) {
			return true
		}
	}
	for _, n := range b {
		if !slices.Contains(a, n) {
			return true
		}
	}
	return false
}

// UpdateAssociation patches the viewed association with the fields that
// changed in form and reloads it. It returns the diff that was sent.
func (s *AssociationService) UpdateAssociation(ctx context.Context, form models.AssociationForm) (map[string]any, error) {
	stored := s.store.Association.Association
	if stored == nil || stored.ID != form.ID {
		return nil, fmt.Errorf("association %d: %w", form.ID, common.ErrorNotFound)
	}

	changes := CheckChanges(stored, form)
	if len(changes) == 0 {
		return changes, nil
	}

	if err := s.api.Authenticated.Patch(ctx, fmt.Sprintf("/associations/%d", stored.ID), changes, nil); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "association updated", "id", stored.ID, "fields", len(changes))

	return changes, s.store.Association.GetAssociationDetail(ctx, stored.ID)
}

func AddNetwork(form *models.AssociationForm, network models.SocialNetwork) {
	form.SocialNetworks = append(form.SocialNetworks, network)
}

func RemoveNetwork(form *models.AssociationForm, i int) {
	if i < 0 || i >= len(form.SocialNetworks) {
		return
	}
	form.SocialNetworks = slices.Delete(form.SocialNetworks, i, i+1)
}

func (s *AssociationService) DeleteAssociation(ctx context.Context, id int) error {
	if err := s.api.Authenticated.Delete(ctx, fmt.Sprintf("/associations/%d", id)); err != nil {
		return err
	}
	s.ManagedAssociations = slices.DeleteFunc(s.ManagedAssociations, func(a models.AssociationList) bool { return a.ID == id })
	if a := s.store.Association.Association; a != nil && a.ID == id {
		s.store.Association.Association = nil
	}
	return nil
}

func (s *AssociationService) SetAssociationEnabled(ctx context.Context, id int, enabled bool) error {
	return s.api.Authenticated.Patch(ctx, fmt.Sprintf("/associations/%d", id), map[string]bool{"isEnabled": enabled}, nil)
}
