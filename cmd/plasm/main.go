// Command plasm is the compiler's CLI driver.
package main

import (
	"fmt"
	"os"

	"github.com/lehlud/plasm/cmd/plasm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
