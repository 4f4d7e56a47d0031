package main

import (
	"os"

	"github.com/salmoriadev/bancodio3.0/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
