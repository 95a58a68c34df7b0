package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestFilterizeSearch(t *testing.T) {
	assert.Equal(t, "associationdesetudiantsdusitealsace", FilterizeSearch("association des étudiants du site Alsace"))
	assert.Equal(t, "aero-clubcote", FilterizeSearch("  Aéro-club\tCÔTE "))
	assert.Equal(t, "", FilterizeSearch(""))
}

func TestDirectoryService_SimpleAssociationSearch(t *testing.T) {
	e := newEnv()
	e.fake.On("GET", "/associations/?is_public=true&search=club+a%C3%A9ro", associationList()[2:])
	s := NewDirectoryService(e.api, e.store, nil)

	got, err := s.SimpleAssociationSearch(context.Background(), "club aéro")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, got, e.store.Association.Associations)
}

func TestDirectoryService_AdvancedSearch(t *testing.T) {
	e := newEnv()
	e.store.Association.Associations = associationList()
	s := NewDirectoryService(e.api, e.store, nil)

	ids := func(list []models.AssociationList) []int {
		out := make([]int, 0, len(list))
		for _, a := range list {
			out = append(out, a.ID)
		}
		return out
	}

	byAcronym := s.AdvancedSearch(models.AssociationSearch{Acronym: "AEC"})
	assert.Equal(t, []int{2, 3}, ids(byAcronym))
	assert.Equal(t, ids(byAcronym), ids(s.AdvancedSearch(models.AssociationSearch{Acronym: "AEC", Name: ""})))
	assert.Equal(t, ids(byAcronym), ids(s.AdvancedSearch(models.AssociationSearch{Acronym: "AEC", Institution: null.Int{}})))

	assert.Equal(t, []int{1, 2}, ids(s.AdvancedSearch(models.AssociationSearch{Name: "des etudiants"})))
	assert.Equal(t, []int{2}, ids(s.AdvancedSearch(models.AssociationSearch{Acronym: "aec", Institution: null.IntFrom(1)})))
	assert.Equal(t, []int{3}, ids(s.AdvancedSearch(models.AssociationSearch{ActivityField: null.IntFrom(1), InstitutionComponent: null.IntFrom(3)})))
	assert.Empty(t, s.AdvancedSearch(models.AssociationSearch{Name: "nothing"}))
	assert.Len(t, s.AdvancedSearch(models.AssociationSearch{}), 3)

	// the stored listing is not narrowed in place
	assert.Len(t, e.store.Association.Associations, 3)
}
