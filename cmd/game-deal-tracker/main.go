// Package main is the entry point for the game-deal-tracker server.
package main

import (
	"os"

	"github.com/rmarques/game-deal-tracker/cmd/game-deal-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
