package models

import (
	"github.com/volatiletech/null/v8"
)

type Institution struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Acronym string `json:"acronym"`
}

type InstitutionComponent struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ActivityField struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type SocialNetwork struct {
	Type     string `json:"type"`
	Location string `json:"location"`
}

// Association is the full record returned by GET /associations/:id.
type Association struct {
	ID                   int                  `json:"id"`
	Institution          Institution          `json:"institution"`
	InstitutionComponent InstitutionComponent `json:"institutionComponent"`
	ActivityField        ActivityField        `json:"activityField"`
	Name                 string               `json:"name"`
	Acronym              null.String          `json:"acronym"`
	PathLogo             null.String          `json:"pathLogo"`
	AltLogo              null.String          `json:"altLogo"`
	Description          null.String          `json:"description"`
	Activities           null.String          `json:"activities"`
	Address              null.String          `json:"address"`
	Phone                null.String          `json:"phone"`
	Email                null.String          `json:"email"`
	Siret                null.Int64           `json:"siret"`
	Website              null.String          `json:"website"`
	StudentCount         null.Int             `json:"studentCount"`
	PresidentNames       null.String          `json:"presidentNames"`
	IsEnabled            null.Bool            `json:"isEnabled"`
	IsPublic             bool                 `json:"isPublic"`
	IsSite               bool                 `json:"isSite"`
	CreatedDate          null.String          `json:"createdDate"`
	ApprovalDate         null.String          `json:"approvalDate"`
	LastGoaDate          null.String          `json:"lastGoaDate"`
	CgaDate              null.String          `json:"cgaDate"`
	SocialNetworks       []SocialNetwork      `json:"socialNetworks"`
}

// AssociationList is the row shape of association listings.
type AssociationList struct {
	ID                   int                  `json:"id"`
	Institution          Institution          `json:"institution"`
	InstitutionComponent InstitutionComponent `json:"institutionComponent"`
	ActivityField        ActivityField        `json:"activityField"`
	Name                 string               `json:"name"`
	Acronym              string               `json:"acronym"`
	IsEnabled            bool                 `json:"isEnabled"`
	IsSite               bool                 `json:"isSite"`
}

// AssociationName is the short form embedded in users and name listings.
type AssociationName struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	HasOfficeStatus bool   `json:"hasOfficeStatus,omitempty"`
}

// NewAssociation is a row of the "associations to add" editor.
type NewAssociation struct {
	ID              null.Int `json:"id"`
	HasOfficeStatus bool     `json:"hasOfficeStatus"`
}

// AssociationDirectoryDetail is a flattened row for directory listings.
type AssociationDirectoryDetail struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Acronym     string `json:"acronym"`
	Institution string `json:"institution"`
	Component   string `json:"component"`
	Field       string `json:"field"`
}

// AssociationSearch holds advanced search criteria. Empty strings and
// invalid ids mean "no filter".
type AssociationSearch struct {
	Search               string   `json:"search"`
	Name                 string   `json:"name"`
	Acronym              string   `json:"acronym"`
	Institution          null.Int `json:"institution"`
	InstitutionComponent null.Int `json:"institutionComponent"`
	ActivityField        null.Int `json:"activityField"`
}

// AssociationCreate is the body of POST /associations/.
type AssociationCreate struct {
	Name string `json:"name" validate:"required,notblank,max=250"`
}

// AssociationForm is the editable copy of an association. Foreign keys are
// plain ids; LastGoaDate is a "YYYY-MM-DD" date.
type AssociationForm struct {
	ID                   int             `json:"id"`
	Name                 string          `json:"name"`
	Acronym              null.String     `json:"acronym"`
	Description          null.String     `json:"description"`
	Activities           null.String     `json:"activities"`
	Address              null.String     `json:"address"`
	Phone                null.String     `json:"phone"`
	Email                null.String     `json:"email"`
	Siret                null.Int64      `json:"siret"`
	Website              null.String     `json:"website"`
	StudentCount         null.Int        `json:"studentCount"`
	PresidentNames       null.String     `json:"presidentNames"`
	LastGoaDate          null.String     `json:"lastGoaDate"`
	Institution          int             `json:"institution"`
	InstitutionComponent int             `json:"institutionComponent"`
	ActivityField        int             `json:"activityField"`
	SocialNetworks       []SocialNetwork `json:"socialNetworks"`
}

// Role identifiers of a membership, in precedence order.
const (
	RolePresident     = "isPresident"
	RoleSecretary     = "isSecretary"
	RoleTreasurer     = "isTreasurer"
	RoleVicePresident = "isVicePresident"
	RoleMember        = "isMember"
)

// RoleOption is a selectable membership role.
type RoleOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RoleFlags are the independent booleans the API uses to express a role.
type RoleFlags struct {
	IsPresident     bool `json:"isPresident"`
	IsSecretary     bool `json:"isSecretary"`
	IsTreasurer     bool `json:"isTreasurer"`
	IsVicePresident bool `json:"isVicePresident"`
}

// AssociationUser is a membership record linking a user to an association.
type AssociationUser struct {
	User               null.Int    `json:"user"`
	Association        null.Int    `json:"association"`
	CanBePresident     bool        `json:"canBePresident"`
	CanBePresidentFrom null.String `json:"canBePresidentFrom"`
	CanBePresidentTo   null.String `json:"canBePresidentTo"`
	IsValidatedByAdmin bool        `json:"isValidatedByAdmin"`
	RoleFlags
}

// AssociationUserPatch is the body of PATCH /users/:uid/associations/:aid.
type AssociationUserPatch struct {
	CanBePresident bool `json:"canBePresident"`
	RoleFlags
}

// AssociationSummary is the association part of an AssociationUserDetail.
type AssociationSummary struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	IsSite      bool      `json:"isSite"`
	Institution int       `json:"institution"`
	IsEnabled   null.Bool `json:"isEnabled"`
	IsPublic    bool      `json:"isPublic"`
}

// AssociationUserDetail is a membership enriched with association details.
type AssociationUserDetail struct {
	Association        AssociationSummary `json:"association"`
	CanBePresident     bool               `json:"canBePresident"`
	CanBePresidentFrom null.String        `json:"canBePresidentFrom"`
	CanBePresidentTo   null.String        `json:"canBePresidentTo"`
	IsValidatedByAdmin bool               `json:"isValidatedByAdmin"`
	RoleFlags
}

// AssociationRole is an editable membership row.
type AssociationRole struct {
	ID                 null.Int     `json:"id"`
	Name               string       `json:"name"`
	Role               string       `json:"role"`
	Options            []RoleOption `json:"options"`
	IsValidatedByAdmin bool         `json:"isValidatedByAdmin"`
	CanBePresident     bool         `json:"canBePresident"`
	DeleteAssociation  bool         `json:"deleteAssociation"`
}

// AssociationMember is a display row of an association's members.
type AssociationMember struct {
	ID                 int         `json:"id"`
	AssociationID      int         `json:"associationId,omitempty"`
	AssociationName    string      `json:"associationName,omitempty"`
	FirstName          string      `json:"firstName"`
	LastName           string      `json:"lastName"`
	Role               string      `json:"role"`
	CanBePresident     bool        `json:"canBePresident"`
	CanBePresidentFrom null.String `json:"canBePresidentFrom"`
	CanBePresidentTo   null.String `json:"canBePresidentTo"`
	IsValidatedByAdmin bool        `json:"isValidatedByAdmin"`
}
