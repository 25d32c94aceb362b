package main

import (
	"os"

	"sigquery/cmd/sigquery/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
