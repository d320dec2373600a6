package main

import (
	"os"

	"github.com/serenby/mindwell/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
