package main

import (
	"os"

	"github.com/abhisek/cyberhygiene/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
