package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/services"
	"github.com/dmitrijs2005/plana/internal/common"
)

func (a *App) Directory(ctx context.Context, args []string) error {
	list, err := a.directory.SimpleAssociationSearch(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	return a.printAssociations(list)
}

// AdvancedSearch filters the last directory listing, loading the full
// public directory when nothing was searched yet.
func (a *App) AdvancedSearch(ctx context.Context, args []string) error {
	kv, _ := parseKeyValues(args)
	if q, ok := kv["search"]; ok || len(a.store.Association.Associations) == 0 {
		if _, err := a.directory.SimpleAssociationSearch(ctx, q); err != nil {
			return err
		}
	}

	settings := models.AssociationSearch{Search: kv["search"], Name: kv["name"], Acronym: kv["acronym"]}
	var err error
	if settings.Institution, err = nullInt(kv["institution"]); err != nil {
		return err
	}
	if settings.InstitutionComponent, err = nullInt(kv["component"]); err != nil {
		return err
	}
	if settings.ActivityField, err = nullInt(kv["field"]); err != nil {
		return err
	}
	return a.printAssociations(a.directory.AdvancedSearch(settings))
}

func (a *App) printAssociations(list []models.AssociationList) error {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No association found")
		return nil
	}
	rows := make([][]string, 0, len(list))
	for _, as := range list {
		rows = append(rows, []string{
			strconv.Itoa(as.ID), as.Name, orDash(as.Acronym),
			orDash(as.Institution.Acronym), orDash(as.InstitutionComponent.Name), orDash(as.ActivityField.Name),
		})
	}
	return table(a.out, []string{"ID", "NAME", "ACRONYM", "INSTITUTION", "COMPONENT", "FIELD"}, rows)
}

func (a *App) Associations(ctx context.Context, _ []string) error {
	if err := a.associations.GetManagedAssociations(ctx); err != nil {
		return err
	}
	dir := a.associations.ManagedAssociationsDirectory()
	if len(dir) == 0 {
		fmt.Fprintln(a.out, "You manage no association")
		return nil
	}
	rows := make([][]string, 0, len(dir))
	for _, d := range dir {
		rows = append(rows, []string{strconv.Itoa(d.ID), d.Name, orDash(d.Acronym), orDash(d.Institution), orDash(d.Component), orDash(d.Field)})
	}
	return table(a.out, []string{"ID", "NAME", "ACRONYM", "INSTITUTION", "COMPONENT", "FIELD"}, rows)
}

func (a *App) loadAssociation(ctx context.Context, args []string, name string) (*models.Association, error) {
	if len(args) == 0 {
		return nil, a.usage(name)
	}
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	if err := a.store.Association.GetAssociationDetail(ctx, id); err != nil {
		return nil, err
	}
	return a.store.Association.Association, nil
}

func (a *App) Association(ctx context.Context, args []string) error {
	as, err := a.loadAssociation(ctx, args, "association")
	if err != nil {
		return err
	}

	line := func(label, value string) { fmt.Fprintf(a.out, "%-16s %s\n", label+":", orDash(plain(value))) }
	line("Name", as.Name)
	line("Acronym", as.Acronym.String)
	line("Institution", as.Institution.Name)
	line("Component", as.InstitutionComponent.Name)
	line("Field", as.ActivityField.Name)
	line("E-mail", as.Email.String)
	line("Phone", as.Phone.String)
	line("Address", as.Address.String)
	line("Website", as.Website.String)
	if as.Siret.Valid {
		line("SIRET", strconv.FormatInt(as.Siret.Int64, 10))
	}
	if as.StudentCount.Valid {
		line("Students", strconv.Itoa(as.StudentCount.Int))
	}
	line("Presidents", as.PresidentNames.String)
	line("Last GOA", common.FormatDate(as.LastGoaDate.String))
	line("Enabled", yesNo(as.IsEnabled.Valid && as.IsEnabled.Bool))
	line("Public", yesNo(as.IsPublic))
	for i, n := range as.SocialNetworks {
		line(fmt.Sprintf("Network %d", i), n.Type+" "+n.Location)
	}
	if as.Description.Valid {
		fmt.Fprintf(a.out, "\n%s\n", plain(as.Description.String))
	}
	if as.Activities.Valid {
		fmt.Fprintf(a.out, "\nActivities:\n%s\n", plain(as.Activities.String))
	}
	return nil
}

func (a *App) CreateAssociation(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage("association-create")
	}
	name := strings.Join(args, " ")
	if err := a.associations.CreateAssociation(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Association %q created\n", name)
	return nil
}

// EditAssociation applies key=value edits to the association form and
// sends what changed. A bare "description" or "activities" argument opens
// a multiline prompt for that text.
func (a *App) EditAssociation(ctx context.Context, args []string) error {
	as, err := a.loadAssociation(ctx, args, "association-edit")
	if err != nil {
		return err
	}
	form := services.NewAssociationForm(as)

	kv, bare := parseKeyValues(args[1:])
	if err := applyAssociationEdits(&form, kv); err != nil {
		return err
	}
	for _, b := range bare {
		field := strings.ToLower(b)
		if field != "description" && field != "activities" {
			return a.usage("association-edit")
		}
		text, err := GetMultiline(a.reader, "New "+field, a.out)
		if err != nil {
			return err
		}
		if field == "description" {
			form.Description = nullString(text)
		} else {
			form.Activities = nullString(text)
		}
	}

	return a.sendAssociationForm(ctx, form)
}

func applyAssociationEdits(form *models.AssociationForm, kv map[string]string) error {
	var err error
	for k, v := range kv {
		switch k {
		case "name":
			form.Name = v
		case "acronym":
			form.Acronym = nullString(v)
		case "address":
			form.Address = nullString(v)
		case "phone":
			form.Phone = nullString(v)
		case "email":
			form.Email = nullString(v)
		case "website":
			form.Website = nullString(v)
		case "presidents":
			form.PresidentNames = nullString(v)
		case "goa":
			form.LastGoaDate = nullString(v)
		case "siret":
			form.Siret, err = nullInt64(v)
		case "students":
			form.StudentCount, err = nullInt(v)
		case "institution":
			form.Institution, err = parseID(v)
		case "component":
			form.InstitutionComponent, err = parseID(v)
		case "field":
			form.ActivityField, err = parseID(v)
		default:
			return fmt.Errorf("%w: unknown field %q", common.ErrValidation, k)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) sendAssociationForm(ctx context.Context, form models.AssociationForm) error {
	changes, err := a.associations.UpdateAssociation(ctx, form)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Fprintln(a.out, "Nothing changed")
		return nil
	}
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fmt.Fprintf(a.out, "Updated: %s\n", strings.Join(keys, ", "))
	return nil
}

func (a *App) EditSocialNetworks(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return a.usage("association-social")
	}
	as, err := a.loadAssociation(ctx, args, "association-social")
	if err != nil {
		return err
	}
	form := services.NewAssociationForm(as)

	switch args[1] {
	case "add":
		if len(args) != 4 {
			return a.usage("association-social")
		}
		services.AddNetwork(&form, models.SocialNetwork{Type: args[2], Location: args[3]})
	case "remove":
		i, err := strconv.Atoi(args[2])
		if err != nil || i < 0 || i >= len(form.SocialNetworks) {
			return fmt.Errorf("%w: no social network %q", common.ErrValidation, args[2])
		}
		services.RemoveNetwork(&form, i)
	default:
		return a.usage("association-social")
	}
	return a.sendAssociationForm(ctx, form)
}

func (a *App) DeleteAssociation(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("association-delete")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.associations.DeleteAssociation(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Association %d deleted\n", id)
	return nil
}

func (a *App) EnableAssociation(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.usage("association-enable")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	enabled, err := parseBool(args[1])
	if err != nil {
		return err
	}
	if err := a.associations.SetAssociationEnabled(ctx, id, enabled); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Association %d enabled: %s\n", id, yesNo(enabled))
	return nil
}

func (a *App) Members(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("members")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.userAssociations.InitAssociationMembers(ctx, id); err != nil {
		return err
	}
	return a.printMembers(a.userAssociations.AssociationMembers, false)
}

func (a *App) printMembers(members []models.AssociationMember, withAssociation bool) error {
	if len(members) == 0 {
		fmt.Fprintln(a.out, "No member")
		return nil
	}
	header := []string{"ID", "NAME", "ROLE", "CAN PRESIDE", "VALIDATED"}
	if withAssociation {
		header = append(header, "ASSOCIATION")
	}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		r := []string{
			strconv.Itoa(m.ID), m.FirstName + " " + m.LastName, services.RoleLabel(m.Role),
			yesNo(m.CanBePresident), yesNo(m.IsValidatedByAdmin),
		}
		if withAssociation {
			r = append(r, m.AssociationName)
		}
		rows = append(rows, r)
	}
	return table(a.out, header, rows)
}
