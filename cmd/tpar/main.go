// Command tpar is the CLI entrypoint for the T-gate optimiser.
package main

import (
	"os"

	"github.com/consensys/tpar/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
