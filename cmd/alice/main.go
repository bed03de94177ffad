package main

import (
	"os"

	"github.com/alicelang/go-alice/cmd/alice/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
