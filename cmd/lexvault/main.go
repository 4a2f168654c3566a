package main

import (
	"os"

	"lexvault/cmd/lexvault/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
