// Package config loads runtime configuration for the PageKeeper CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Flags
//
//	-a string   address:port of the remote gateway
//	-l string   local database file, relative to the data directory
//	-w int      resolver retry delay (milliseconds)
//	-u int      background upload timeout (seconds)
//	-v string   address the public-page viewer listens on
//	-i int      online status check interval (seconds)
//
// JSON durations are timex.Duration values ("2s" or integer nanoseconds):
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "local_database_dsn": "pages.db",
//	  "retry_delay": "2s",
//	  "upload_timeout": "10s",
//	  "viewer_addr": "127.0.0.1:8080",
//	  "online_check_interval": "3s"
//	}
package config
