package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/talentledger/internal/flagx"
)

// parseFlags overlays the flags this package owns:
//
//	-a string   server address (host:port)
//	-f string   local database file
//	-u string   username to pre-fill at login
//	-p int      list page size
//	-l string   log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-f", "-u", "-p", "-l"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "local database file")
	fs.StringVar(&cfg.UserName, "u", cfg.UserName, "username")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "page size")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
