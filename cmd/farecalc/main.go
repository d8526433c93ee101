// Package main is farecalc, an offline companion to the fare quotation
// service. It prices net fares with the agency rules and normalizes upstream
// payloads saved to disk, without calling the GDS.
package main

import (
	"fmt"
	"os"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
