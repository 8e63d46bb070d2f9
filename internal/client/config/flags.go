package config

import (
	"flag"
	"os"

	"github.com/nishant0207/online-filesharing/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     base URL of the backend server
//	-t duration   inactivity timeout, e.g. 3h or 45m
//	-r duration   revocation check interval
//	-s string     credential store path
//
// os.Args is filtered through flagx.FilterArgs so the JSON-config flags
// handled elsewhere do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-r", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the backend server")
	fs.DurationVar(&cfg.InactivityTimeout, "t", cfg.InactivityTimeout, "inactivity timeout")
	fs.DurationVar(&cfg.RevocationCheckInterval, "r", cfg.RevocationCheckInterval, "revocation check interval")
	fs.StringVar(&cfg.CredentialStorePath, "s", cfg.CredentialStorePath, "credential store path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
