// Package main provides the CLI entrypoint for accounts-generator.
//
// accounts-generator reads account schemas and emits, for each one:
//   - the slot-count impl derived from its fields
//   - construction, metadata, flattening and exit impls
//   - client and CPI mirror modules behind feature guards
package main

import (
	"os"

	"accounts-generator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
