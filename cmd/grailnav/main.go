// grailnav: a graph canvas with a minimap navigator, in the terminal.
//
// Run: GOWORK=off go run ./cmd/grailnav/ [graph.json]
package main

import (
	"os"

	"github.com/fatih/color"
)

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	warn   = color.New(color.FgYellow)
	bad    = color.New(color.FgRed)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		bad.Fprintf(os.Stderr, "grailnav: %v\n", err)
		os.Exit(1)
	}
}
