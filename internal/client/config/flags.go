package config

import (
	"flag"
	"os"

	"github.com/wintakam/wintakam/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend gateway
//	-k string   project API key
//	-d string   data directory
//	-m          serve the built-in demo catalog instead of backend rows
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-d", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "base URL of the backend gateway")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "project API key")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.BoolVar(&cfg.UseMockData, "m", cfg.UseMockData, "use the built-in demo catalog")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
