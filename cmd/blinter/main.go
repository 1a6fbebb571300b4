// Command blinter is a static analyzer for Windows batch and cmd scripts.
package main

import (
	"fmt"
	"os"

	"github.com/tboy1337/blinter/cmd/blinter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
