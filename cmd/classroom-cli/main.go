// Package main provides the entry point for the classroom gateway CLI.
package main

import (
	"os"

	"github.com/accademia-digitale/classroom-gateway/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
