package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/plana/internal/client/config"
	"github.com/dmitrijs2005/plana/internal/logging"
	"golang.org/x/time/rate"
)

// Requester is the contract services use to reach the PlanA API. Paths are
// relative to the API base URL and may carry a query string. A nil out skips
// response decoding.
type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
	PostMultipart(ctx context.Context, path string, form Multipart, out any) error
}

// API bundles the two requesters. Public never sends credentials.
type API struct {
	Public        Requester
	Authenticated Requester
	Tokens        TokenStore
}

// New builds both requesters on a shared http.Client and rate limiter.
func New(cfg *config.Config, tokens TokenStore, logger logging.Logger) *API {
	hc := &http.Client{Timeout: cfg.RequestTimeout}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	logger = logging.OrNop(logger).With("component", "api")

	return &API{
		Public:        newHTTPClient(cfg.APIBaseURL, hc, limiter, nil, logger.With("client", "public")),
		Authenticated: newHTTPClient(cfg.APIBaseURL, hc, limiter, tokens, logger.With("client", "authenticated")),
		Tokens:        tokens,
	}
}
