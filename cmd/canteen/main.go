// Package main is the entry point for the canteen CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/canteen-ledger/cmd/canteen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
