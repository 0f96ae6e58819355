package main

import (
	"os"

	"alcyxob/fitness-coach/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
