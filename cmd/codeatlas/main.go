package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}
