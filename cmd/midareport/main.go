// main is the entry point for the midareport CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Mida-Energy/report-generator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
