// Package main is the entry point for the gdt CLI.
package main

import "github.com/rmarques/game-deal-tracker/cmd/gdt/cmd"

func main() {
	cmd.Execute()
}
