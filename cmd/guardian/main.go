// Package main provides the guardian CLI commands.
package main

import (
	"fmt"
	"os"
)

func main() {
	err := rootCmd.Execute()
	closeVault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
