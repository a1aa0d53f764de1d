package main

import (
	"os"

	"github.com/shellmarks/catalog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
