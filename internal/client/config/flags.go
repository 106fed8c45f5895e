package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/pagekeeper/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. Unknown arguments are
// filtered out first so the JSON loader's -c/-config do not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-l", "-w", "-u", "-v", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.LocalDatabaseDSN, "l", cfg.LocalDatabaseDSN, "local database file")
	retryDelay := fs.Int("w", int(cfg.RetryDelay.Milliseconds()), "page lookup retry delay (in milliseconds)")
	uploadTimeout := fs.Int("u", int(cfg.UploadTimeout.Seconds()), "background upload timeout (in seconds)")
	fs.StringVar(&cfg.ViewerAddr, "v", cfg.ViewerAddr, "public page viewer address")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RetryDelay = time.Duration(*retryDelay) * time.Millisecond
	cfg.UploadTimeout = time.Duration(*uploadTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
