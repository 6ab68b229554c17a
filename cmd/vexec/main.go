// Package main is the entry point for the vexec CLI.
package main

import (
	"os"

	"github.com/runger/vexec/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
