package models

import (
	"testing"

	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_UserRegister(t *testing.T) {
	ok := UserRegister{
		Username:  "john.lennon@bbc.com",
		FirstName: "John",
		LastName:  "Lennon",
		Email:     "john.lennon@bbc.com",
	}
	require.NoError(t, Validate(ok))

	bad := ok
	bad.Email = "not-an-email"
	bad.FirstName = "   "
	err := Validate(bad)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "email:")
	assert.Contains(t, err.Error(), "firstName: this field cannot be blank")
}

func TestValidate_NewCommission(t *testing.T) {
	c := NewCommission{
		Name:           "Commission FSDIE",
		CommissionDate: "2024-03-12",
		SubmissionDate: "2024-02-20",
		Funds:          []int{1, 2},
	}
	require.NoError(t, Validate(c))

	c.CommissionDate = "12/03/2024"
	c.Funds = []int{1, 0}
	err := Validate(c)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "commissionDate")
	assert.Contains(t, err.Error(), "funds[1]")
}

func TestValidate_AssociationCreate(t *testing.T) {
	require.NoError(t, Validate(AssociationCreate{Name: "Octant"}))
	require.ErrorIs(t, Validate(AssociationCreate{Name: ""}), common.ErrValidation)
}

func TestDocument_Accepts(t *testing.T) {
	d := Document{MimeTypes: []MimeType{MimePDF, MimePNG}}
	assert.True(t, d.Accepts("application/pdf"))
	assert.False(t, d.Accepts("application/zip"))
}
