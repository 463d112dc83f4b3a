package main

import (
	"os"

	"github.com/conneroisu/webpulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
