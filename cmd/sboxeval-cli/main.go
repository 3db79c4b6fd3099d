// Package main provides the sboxeval-cli command line interface for S-box evaluation.
package main

import (
	"os"
)

const (
	version = "1.2.0"
	appName = "sboxeval-cli"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
