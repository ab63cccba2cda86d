// Package main provides the sqlinc CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlinc/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
