package services

import (
	"context"
	"net/url"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/store"
	"github.com/dmitrijs2005/plana/internal/logging"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DirectoryService searches the public association directory.
type DirectoryService struct {
	api    *client.API
	store  *store.Store
	logger logging.Logger
}

func NewDirectoryService(api *client.API, st *store.Store, logger logging.Logger) *DirectoryService {
	return &DirectoryService{api: api, store: st, logger: logging.OrNop(logger)}
}

// SimpleAssociationSearch asks the API for public associations matching q.
// The result replaces the association listing of the store.
func (s *DirectoryService) SimpleAssociationSearch(ctx context.Context, q string) ([]models.AssociationList, error) {
	var list []models.AssociationList
	if err := s.api.Public.Get(ctx, "/associations/?is_public=true&search="+url.QueryEscape(q), &list); err != nil {
		return nil, err
	}
	s.store.Association.Associations = list
	return list, nil
}

// AdvancedSearch narrows the stored listing with every criterion that is set.
func (s *DirectoryService) AdvancedSearch(settings models.AssociationSearch) []models.AssociationList {
	matches := append([]models.AssociationList(nil), s.store.Association.Associations...)

	if settings.Name != "" {
		want := FilterizeSearch(settings.Name)
		matches = filter(matches, func(a models.AssociationList) bool {
			return strings.Contains(FilterizeSearch(a.Name), want)
		})
	}
	if settings.Acronym != "" {
		want := FilterizeSearch(settings.Acronym)
		matches = filter(matches, func(a models.AssociationList) bool {
			return strings.Contains(FilterizeSearch(a.Acronym), want)
		})
	}
	if settings.Institution.Valid {
		matches = filter(matches, func(a models.AssociationList) bool {
			return a.Institution.ID == settings.Institution.Int
		})
	}
	if settings.InstitutionComponent.Valid {
		matches = filter(matches, func(a models.AssociationList) bool {
			return a.InstitutionComponent.ID == settings.InstitutionComponent.Int
		})
	}
	if settings.ActivityField.Valid {
		matches = filter(matches, func(a models.AssociationList) bool {
			return a.ActivityField.ID == settings.ActivityField.Int
		})
	}
	return matches
}

func filter[T any](s []T, keep func(T) bool) []T {
	out := s[:0]
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// FilterizeSearch folds s for fuzzy comparison: lower case, no diacritics,
// no whitespace.
func FilterizeSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), "")
}
