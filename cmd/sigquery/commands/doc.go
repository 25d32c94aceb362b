// Package commands defines the sigquery CLI and wires dependencies for subcommands.
//
// Commands
//
//   - run          Run a signed exchange over a request document
//   - request      Write an unsigned request document
//   - seed         Load a SQL script (the demo data by default) into the database
//   - keygen       Create or rotate a sealed party key
//   - fingerprint  Print the fingerprint of a sealed party key
//   - verify       Check the signature of a signed document
//
// # Implementation
//
// The root command resolves the configuration with viper (flags bound over
// SIGQUERY_* environment, config file and defaults), initialises the logger
// and builds the app before any subcommand runs. The database is opened on
// first use, and metrics are flushed after the command finishes.
package commands
