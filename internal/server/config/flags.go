package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/daylog/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port for the HTTP API
//	-d string   SQLite DSN for the local store
//	-r string   top folder of the remote namespace
//	-l string   rotated log file path
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to serve the API on")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite DSN for the local store")
	fs.StringVar(&cfg.RemoteRoot, "r", cfg.RemoteRoot, "top folder of the remote namespace")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "rotated log file path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
