// Command airdispatch runs the disruption dispatcher over a scenario file:
// the cobra-based generalization of the teacher's flag-parsed main.go.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
