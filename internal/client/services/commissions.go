package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/store"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/dmitrijs2005/plana/internal/logging"
)

const (
	CommissionsPath     = "/commissions/"
	CommissionFundsPath = "/commissions/funds"
	FundNamesPath       = "/commissions/funds/names"
)

// CommissionService manages commissions and the funds attached to them.
type CommissionService struct {
	api    *client.API
	store  *store.Store
	logger logging.Logger

	Funds       []models.Fund
	FundsLabels []models.SelectLabel
	// UserFunds are the funds the managed user is attached to.
	UserFunds []int

	Commission       *models.Commission
	Commissions      []models.Commission
	CommissionFunds  []models.CommissionFund
	CommissionLabels []models.SelectLabel
	// ChosenCommissionFundsLabels are the funds of one commission; values
	// are CommissionFund ids.
	ChosenCommissionFundsLabels []models.SelectLabel
}

func NewCommissionService(api *client.API, st *store.Store, logger logging.Logger) *CommissionService {
	return &CommissionService{api: api, store: st, logger: logging.OrNop(logger)}
}

// GetFunds loads fund names once per session.
func (s *CommissionService) GetFunds(ctx context.Context) error {
	if len(s.Funds) != 0 {
		return nil
	}
	var funds []models.Fund
	if err := s.api.Public.Get(ctx, FundNamesPath, &funds); err != nil {
		return err
	}
	s.Funds = funds
	return nil
}

func (s *CommissionService) InitFundsLabels() {
	s.FundsLabels = make([]models.SelectLabel, 0, len(s.Funds))
	for _, f := range s.Funds {
		s.FundsLabels = append(s.FundsLabels, models.SelectLabel{Value: f.ID, Label: f.Acronym})
	}
}

// InitChosenCommissionFundsLabels lists the funds of commissionID. Site
// funds are left out unless isSite is set.
func (s *CommissionService) InitChosenCommissionFundsLabels(commissionID int, isSite bool) {
	s.ChosenCommissionFundsLabels = nil
	for _, cf := range s.CommissionFunds {
		if cf.Commission != commissionID {
			continue
		}
		fund, ok := s.fund(cf.Fund)
		if !ok || (fund.IsSite && !isSite) {
			continue
		}
		s.ChosenCommissionFundsLabels = append(s.ChosenCommissionFundsLabels, models.SelectLabel{Value: cf.ID, Label: fund.Acronym})
	}
}

func (s *CommissionService) fund(id int) (models.Fund, bool) {
	for _, f := range s.Funds {
		if f.ID == id {
			return f, true
		}
	}
	return models.Fund{}, false
}

// InitUserFunds collects the fund ids of the managed user's groups.
func (s *CommissionService) InitUserFunds() {
	s.UserFunds = nil
	u := s.store.UserManager.User
	if u == nil {
		return
	}
	for _, g := range u.Groups {
		if g.FundID.Valid {
			s.UserFunds = append(s.UserFunds, g.FundID.Int)
		}
	}
}

type boolFilter struct {
	name  string
	value *bool
}

func commissionsURL(filters ...boolFilter) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		if f.value != nil {
			parts = append(parts, fmt.Sprintf("%s=%t", f.name, *f.value))
		}
	}
	if len(parts) == 0 {
		return CommissionsPath
	}
	return CommissionsPath + "?" + strings.Join(parts, "&")
}

// ManagersCommissionsURL builds the listing URL. Nil filters are omitted.
func ManagersCommissionsURL(activeProjects, isOpenToProjects, isSite, managedProjects *bool) string {
	return commissionsURL(
		boolFilter{"active_projects", activeProjects},
		boolFilter{"is_open_to_projects", isOpenToProjects},
		boolFilter{"is_site", isSite},
		boolFilter{"managed_projects", managedProjects},
	)
}

func (s *CommissionService) GetCommissionsForManagers(ctx context.Context, activeProjects, isOpenToProjects, isSite, managedProjects *bool) error {
	path := ManagersCommissionsURL(activeProjects, isOpenToProjects, isSite, managedProjects)
	return s.getCommissions(ctx, s.api.Authenticated, path)
}

func (s *CommissionService) GetCommissionsForStudents(ctx context.Context, isOpenToProjects, isSite *bool) error {
	path := commissionsURL(
		boolFilter{"is_open_to_projects", isOpenToProjects},
		boolFilter{"is_site", isSite},
	)
	return s.getCommissions(ctx, s.api.Public, path)
}

func (s *CommissionService) GetAllCommissions(ctx context.Context) error {
	return s.getCommissions(ctx, s.api.Public, CommissionsPath)
}

func (s *CommissionService) getCommissions(ctx context.Context, r client.Requester, path string) error {
	var list []models.Commission
	if err := r.Get(ctx, path, &list); err != nil {
		return err
	}
	s.Commissions = list
	return nil
}

func (s *CommissionService) GetCommission(ctx context.Context, id int) error {
	var c models.Commission
	if err := s.api.Public.Get(ctx, fmt.Sprintf("/commissions/%d", id), &c); err != nil {
		return err
	}
	s.Commission = &c
	return nil
}

// GetNextCommission loads the first commission open to projects. Commission
// is nil when none is open.
func (s *CommissionService) GetNextCommission(ctx context.Context) error {
	var list []models.Commission
	if err := s.api.Public.Get(ctx, CommissionsPath+"?is_open_to_projects=true", &list); err != nil {
		return err
	}
	s.Commission = nil
	if len(list) > 0 {
		s.Commission = &list[0]
	}
	return nil
}

func (s *CommissionService) GetCommissionFunds(ctx context.Context) error {
	var list []models.CommissionFund
	if err := s.api.Public.Get(ctx, CommissionFundsPath, &list); err != nil {
		return err
	}
	s.CommissionFunds = list
	return nil
}

// InitCommissionLabels labels commissions "name (dd/mm/yyyy)".
func (s *CommissionService) InitCommissionLabels() {
	s.CommissionLabels = make([]models.SelectLabel, 0, len(s.Commissions))
	for _, c := range s.Commissions {
		label := fmt.Sprintf("%s (%s)", c.Name, common.ReverseDate(common.FormatDate(c.CommissionDate)))
		s.CommissionLabels = append(s.CommissionLabels, models.SelectLabel{Value: c.ID, Label: label})
	}
}

// PostNewCommission creates the commission, then attaches its funds one by
// one. A failing fund link leaves the earlier ones in place.
func (s *CommissionService) PostNewCommission(ctx context.Context, nc models.NewCommission) error {
	if err := models.Validate(nc); err != nil {
		return err
	}

	body := map[string]any{
		"name":             nc.Name,
		"commissionDate":   nc.CommissionDate,
		"submissionDate":   nc.SubmissionDate,
		"isOpenToProjects": nc.IsOpenToProjects,
	}
	var created models.Commission
	if err := s.api.Authenticated.Post(ctx, CommissionsPath, body, &created); err != nil {
		return err
	}

	for _, fund := range nc.Funds {
		link := models.CommissionFundLink{Commission: created.ID, Fund: fund}
		if err := s.api.Authenticated.Post(ctx, CommissionFundsPath, link, nil); err != nil {
			return fmt.Errorf("link fund %d to commission %d: %w", fund, created.ID, err)
		}
	}
	s.logger.Info(ctx, "commission created", "id", created.ID, "funds", len(nc.Funds))
	return nil
}

// CommissionChanges computes the sparse PATCH body and the funds to attach
// and detach.
func CommissionChanges(u models.UpdateCommission) (patch map[string]any, add, remove []int) {
	patch = map[string]any{}
	if u.NewName != u.OldName {
		patch["name"] = u.NewName
	}
	if u.NewCommissionDate != u.OldCommissionDate {
		patch["commissionDate"] = u.NewCommissionDate
	}
	if u.NewSubmissionDate != u.OldSubmissionDate {
		patch["submissionDate"] = u.NewSubmissionDate
	}
	if u.NewIsOpenToProjects != u.OldIsOpenToProjects {
		patch["isOpenToProjects"] = u.NewIsOpenToProjects
	}

	if !common.ArraysAreEqual(u.OldFunds, u.NewFunds) {
		add = common.Difference(u.NewFunds, u.OldFunds)
		remove = common.Difference(u.OldFunds, u.NewFunds)
	}
	return patch, add, remove
}

func (s *CommissionService) UpdateCommission(ctx context.Context, u models.UpdateCommission) error {
	patch, add, remove := CommissionChanges(u)

	if len(patch) != 0 {
		if err := s.api.Authenticated.Patch(ctx, fmt.Sprintf("/commissions/%d", u.ID), patch, nil); err != nil {
			return err
		}
	}
	for _, fund := range add {
		link := models.CommissionFundLink{Commission: u.ID, Fund: fund}
		if err := s.api.Authenticated.Post(ctx, CommissionFundsPath, link, nil); err != nil {
			return err
		}
	}
	for _, fund := range remove {
		if err := s.api.Authenticated.Delete(ctx, fmt.Sprintf("/commissions/%d/funds/%d", u.ID, fund)); err != nil {
			return err
		}
	}
	return nil
}

func (s *CommissionService) DeleteCommission(ctx context.Context, id int) error {
	if err := s.api.Authenticated.Delete(ctx, fmt.Sprintf("/commissions/%d", id)); err != nil {
		return err
	}
	for i, c := range s.Commissions {
		if c.ID == id {
			s.Commissions = append(s.Commissions[:i], s.Commissions[i+1:]...)
			break
		}
	}
	return nil
}
