// Package store holds the client's canonical state fetched from the API:
// the signed-in user, associations and the users managed by staff.
//
// A Store is created once per session and passed by reference; nothing here
// is global. Stores are not safe for concurrent use: the CLI drives them
// from a single goroutine.
package store

import (
	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/logging"
)

// Store is the application context shared by services.
type Store struct {
	User        *UserStore
	Association *AssociationStore
	UserManager *UserManagerStore
}

// New wires the three stores on api. casServiceURL is sent with CAS tickets.
func New(api *client.API, casServiceURL string, logger logging.Logger) *Store {
	logger = logging.OrNop(logger)
	user := NewUserStore(api, casServiceURL, logger.With("store", "user"))
	return &Store{
		User:        user,
		Association: NewAssociationStore(api, logger.With("store", "association")),
		UserManager: NewUserManagerStore(api, user, logger.With("store", "usermanager")),
	}
}

// Reset drops all session state, as on logout.
func (s *Store) Reset() {
	s.User.reset()
	s.Association.reset()
	s.UserManager.reset()
}
