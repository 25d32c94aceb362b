// Package app wires application dependencies for the CLI.
//
// LoadConfig resolves Config with viper (defaults, config file, SIGQUERY_*
// environment, bound flags). NewWire builds the concrete stores and services
// from it, and App ties them to an exchange run.
package app
