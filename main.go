package main

import (
	"os"

	"pjuskeby-rumors/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
