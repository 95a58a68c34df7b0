package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/plana/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so -c/-config handled by parseJson do not fail parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-d", "-t", "-r", "-l"}, "-v")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the PlanA API")
	fs.StringVar(&cfg.FrontURL, "f", cfg.FrontURL, "front-end URL (CAS service base)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.Float64Var(&cfg.RateLimit, "r", cfg.RateLimit, "outbound requests per second, 0 disables")
	fs.StringVar(&cfg.LogBackend, "l", cfg.LogBackend, "log backend: slog or zap")
	fs.BoolVar(&cfg.Debug, "v", cfg.Debug, "debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
