package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/config"
	"github.com/dmitrijs2005/plana/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/plana/internal/client/router"
	"github.com/dmitrijs2005/plana/internal/client/services"
	"github.com/dmitrijs2005/plana/internal/client/storage"
	"github.com/dmitrijs2005/plana/internal/client/store"
	"github.com/dmitrijs2005/plana/internal/logging"
)

// App is the interactive client. It owns the session state and the
// services working on it.
type App struct {
	config *config.Config
	logger logging.Logger

	store            *store.Store
	guard            *router.Guard
	authService      services.AuthService
	associations     *services.AssociationService
	commissions      *services.CommissionService
	userAssociations *services.UserAssociationService
	users            *services.UserService
	userGroups       *services.UserGroupService
	directory        *services.DirectoryService
	documents        *services.DocumentService

	commands map[string]command
	reader   *bufio.Reader
	out      io.Writer
	closer   io.Closer
}

// Bootstrap opens the local database holding the session tokens, then
// builds the API client, the template fetcher and the App.
func Bootstrap(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	logger = logging.OrNop(logger)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	tokens := client.NewMetadataTokenStore(metadata.NewSQLiteRepository(db))
	api := client.New(c, tokens, logger)

	fetcher, err := storage.New(ctx, c, logger.With("component", "storage"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := NewApp(c, api, fetcher, logger)
	a.closer = db
	return a, nil
}

// NewApp wires services on api. fetcher serves document templates.
func NewApp(c *config.Config, api *client.API, fetcher storage.TemplateFetcher, logger logging.Logger) *App {
	logger = logging.OrNop(logger)
	st := store.New(api, c.CASServiceURL(), logger)

	associations := services.NewAssociationService(api, st, logger.With("service", "associations"))
	commissions := services.NewCommissionService(api, st, logger.With("service", "commissions"))
	userAssociations := services.NewUserAssociationService(api, st, logger.With("service", "userassociations"))
	userGroups := services.NewUserGroupService(st)
	documents := services.NewDocumentService(api, fetcher, c.TemplatesDir, logger.With("service", "documents"))
	auth := services.NewAuthService(api, st, logger.With("service", "auth"),
		associations, commissions, userAssociations, userGroups, documents)

	a := &App{
		config:           c,
		logger:           logger,
		store:            st,
		guard:            router.NewGuard(auth, logger.With("component", "router")),
		authService:      auth,
		associations:     associations,
		commissions:      commissions,
		userAssociations: userAssociations,
		users:            services.NewUserService(st, logger.With("service", "users")),
		userGroups:       userGroups,
		directory:        services.NewDirectoryService(api, st, logger.With("service", "directory")),
		documents:        documents,
		reader:           bufio.NewReader(os.Stdin),
		out:              os.Stdout,
	}
	a.commands = a.commandTable()
	return a
}

// Run restores a previous session if tokens are stored, then blocks in the
// REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	if a.closer != nil {
		defer a.closer.Close()
	}
	if err := a.authService.LoadUser(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
	}
	printlnFn("Welcome to PlanA CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.store.User.IsAuth()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(anonymous)"
	}
	return "(" + a.store.User.User.Username + ")"
}
