package main

import (
	"os"

	"searchbyimage/cmd/searchbyimage/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
