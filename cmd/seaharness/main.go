// Command seaharness runs dry-run fuzz campaigns for restricted orders.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/seaharness/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
