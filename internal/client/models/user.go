package models

import (
	"github.com/volatiletech/null/v8"
)

// Group names the API uses for the two groups with special handling.
const (
	StudentGroupName    = "Étudiant"
	CommissionGroupName = "Commission"
)

type User struct {
	ID                 int               `json:"id"`
	Username           string            `json:"username"`
	FirstName          string            `json:"firstName"`
	LastName           string            `json:"lastName"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	IsCas              bool              `json:"isCas"`
	IsValidatedByAdmin bool              `json:"isValidatedByAdmin"`
	IsStaff            bool              `json:"isStaff"`
	Password           string            `json:"password,omitempty"`
	Permissions        []string          `json:"permissions"`
	Groups             []UserGroup       `json:"groups"`
	Associations       []AssociationName `json:"associations"`
}

// FullName is "First Last".
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserGroup links a user to a group, optionally scoped to an institution,
// a fund or a commission.
type UserGroup struct {
	UserID        int      `json:"userId"`
	GroupID       int      `json:"groupId"`
	InstitutionID null.Int `json:"institutionId"`
	FundID        null.Int `json:"fundId"`
	CommissionID  null.Int `json:"commissionId"`
}

type Group struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsPublic bool   `json:"isPublic"`
}

// UserRegister is the body of a registration request.
type UserRegister struct {
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"firstName" validate:"required,notblank"`
	LastName  string `json:"lastName" validate:"required,notblank"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	IsCas     bool   `json:"isCas"`
}

// Credentials is the body of a password login.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserGroupLink is the body posted to /users/groups/.
type UserGroupLink struct {
	Username    string   `json:"username"`
	Group       int      `json:"group"`
	Institution null.Int `json:"institution"`
	Commission  null.Int `json:"commission"`
}
