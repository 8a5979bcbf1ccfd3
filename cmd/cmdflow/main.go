// Command cmdflow is a small shell over a demo set of cmdflow modules. It executes inputs
// given on the command line or read interactively.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
