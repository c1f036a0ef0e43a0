// Command phpstyle checks PHP source files against a coding standard.
package main

import (
	"os"

	"github.com/leapstack-labs/phpstyle/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
