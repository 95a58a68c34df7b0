package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/common"
)

// optionalBool reads a yes/no filter; a missing key means no filter.
func optionalBool(kv map[string]string, key string) (*bool, error) {
	v, ok := kv[key]
	if !ok {
		return nil, nil
	}
	b, err := parseBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Commissions lists commissions. Staff get the managers listing with all
// filters, students only the open and site filters.
func (a *App) Commissions(ctx context.Context, args []string) error {
	kv, _ := parseKeyValues(args)
	filters := make(map[string]*bool, 4)
	for _, k := range []string{"active", "open", "site", "managed"} {
		b, err := optionalBool(kv, k)
		if err != nil {
			return err
		}
		filters[k] = b
	}

	var err error
	if a.store.User.User.IsStaff {
		err = a.commissions.GetCommissionsForManagers(ctx, filters["active"], filters["open"], filters["site"], filters["managed"])
	} else {
		err = a.commissions.GetCommissionsForStudents(ctx, filters["open"], filters["site"])
	}
	if err != nil {
		return err
	}
	if len(a.commissions.Commissions) == 0 {
		fmt.Fprintln(a.out, "No commission")
		return nil
	}

	rows := make([][]string, 0, len(a.commissions.Commissions))
	for _, c := range a.commissions.Commissions {
		rows = append(rows, []string{
			strconv.Itoa(c.ID), c.Name,
			common.ReverseDate(common.FormatDate(c.CommissionDate)),
			common.ReverseDate(common.FormatDate(c.SubmissionDate)),
			yesNo(c.IsOpenToProjects),
		})
	}
	return table(a.out, []string{"ID", "NAME", "DATE", "SUBMISSION", "OPEN"}, rows)
}

func (a *App) CreateCommission(ctx context.Context, _ []string) error {
	var nc models.NewCommission
	var err error
	if nc.Name, err = a.ask("Name"); err != nil {
		return err
	}
	if nc.CommissionDate, err = a.ask("Commission date (YYYY-MM-DD)"); err != nil {
		return err
	}
	if nc.SubmissionDate, err = a.ask("Submission deadline (YYYY-MM-DD)"); err != nil {
		return err
	}
	open, err := a.ask("Open to projects? (yes/no)")
	if err != nil {
		return err
	}
	if nc.IsOpenToProjects, err = parseBool(open); err != nil {
		return err
	}

	if err := a.commissions.GetFunds(ctx); err != nil {
		return err
	}
	a.commissions.InitFundsLabels()
	a.printLabels(a.commissions.FundsLabels)
	if nc.Funds, err = a.askIDs("Funds (ids, comma separated)"); err != nil {
		return err
	}

	if err := a.commissions.PostNewCommission(ctx, nc); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Commission %q created\n", nc.Name)
	return nil
}

// commissionFundIDs lists the fund ids attached to commission id.
func (a *App) commissionFundIDs(id int) []int {
	var out []int
	for _, cf := range a.commissions.CommissionFunds {
		if cf.Commission == id {
			out = append(out, cf.Fund)
		}
	}
	return out
}

func (a *App) UpdateCommission(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return a.usage("commission-update")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.commissions.GetCommission(ctx, id); err != nil {
		return err
	}
	if err := a.commissions.GetCommissionFunds(ctx); err != nil {
		return err
	}
	c := a.commissions.Commission
	oldFunds := a.commissionFundIDs(id)

	u := models.UpdateCommission{
		ID:                  id,
		OldName:             c.Name,
		NewName:             c.Name,
		OldCommissionDate:   common.FormatDate(c.CommissionDate),
		NewCommissionDate:   common.FormatDate(c.CommissionDate),
		OldSubmissionDate:   common.FormatDate(c.SubmissionDate),
		NewSubmissionDate:   common.FormatDate(c.SubmissionDate),
		OldIsOpenToProjects: c.IsOpenToProjects,
		NewIsOpenToProjects: c.IsOpenToProjects,
		OldFunds:            oldFunds,
		NewFunds:            oldFunds,
	}

	kv, _ := parseKeyValues(args[1:])
	for k, v := range kv {
		switch k {
		case "name":
			u.NewName = v
		case "date":
			u.NewCommissionDate = v
		case "submission":
			u.NewSubmissionDate = v
		case "open":
			u.NewIsOpenToProjects, err = parseBool(v)
		case "funds":
			u.NewFunds, err = parseIDs(v)
		default:
			return fmt.Errorf("%w: unknown field %q", common.ErrValidation, k)
		}
		if err != nil {
			return err
		}
	}

	if err := a.commissions.UpdateCommission(ctx, u); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Commission %d updated\n", id)
	return nil
}

func (a *App) DeleteCommission(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("commission-delete")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.commissions.DeleteCommission(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Commission %d deleted\n", id)
	return nil
}

// Funds lists every fund, or the funds of commission=<id>. Site funds of a
// commission are listed with site=yes.
func (a *App) Funds(ctx context.Context, args []string) error {
	kv, _ := parseKeyValues(args)
	if err := a.commissions.GetFunds(ctx); err != nil {
		return err
	}

	v, ok := kv["commission"]
	if !ok {
		a.commissions.InitFundsLabels()
		a.printLabels(a.commissions.FundsLabels)
		return nil
	}

	id, err := parseID(v)
	if err != nil {
		return err
	}
	site := false
	if s, ok := kv["site"]; ok {
		if site, err = parseBool(s); err != nil {
			return err
		}
	}
	if err := a.commissions.GetCommissionFunds(ctx); err != nil {
		return err
	}
	a.commissions.InitChosenCommissionFundsLabels(id, site)
	a.printLabels(a.commissions.ChosenCommissionFundsLabels)
	return nil
}
